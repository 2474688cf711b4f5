package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/config"
	apperrors "github.com/tdalbo/wowvault/internal/errors"
	"github.com/tdalbo/wowvault/internal/paths"
	"github.com/tdalbo/wowvault/pkg/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write a configuration file with default values to the XDG config
directory. The defaults scan the usual installation locations and back
up to ~/AddonBackups with integrity validation enabled.`,
	Example: `  # Create the config file
  wowvault init

  # Replace an existing config file
  wowvault init --force`,
	RunE: runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	path := config.DefaultPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		err := fmt.Errorf("config file already exists at %s", path)
		return apperrors.NewUserError(err, "Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return apperrors.NewSystemError(err, "Check permissions on the config directory")
	}

	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return apperrors.NewSystemError(err, "Check permissions on the config directory")
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
