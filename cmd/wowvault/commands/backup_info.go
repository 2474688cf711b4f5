package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/backup"
	apperrors "github.com/tdalbo/wowvault/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupInfoCmd)
}

var backupInfoCmd = &cobra.Command{
	Use:   "info <backup>",
	Short: "Show the manifest of one backup",
	Long: `Show the manifest of a backup: which profile, account, and
installation it was taken from, and which addon files it holds.

The argument is a backup directory name from 'wowvault backup list',
or a full path to a backup directory.`,
	Example: `  # Inspect a backup by name
  wowvault backup info raid_20260824_153000

  # Inspect a backup by path
  wowvault backup info /mnt/backups/Backup/raid`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupInfo,
}

func runBackupInfo(_ *cobra.Command, args []string) error {
	return runBackupInfoWithWriter(os.Stdout, args[0])
}

func runBackupInfoWithWriter(w io.Writer, arg string) error {
	dir := arg
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.Backup.Destination, backup.BackupDirName, arg)
	}

	manifest, err := backup.BackupInfo(dir)
	if err != nil {
		if errors.Is(err, backup.ErrManifestNotFound) {
			return apperrors.NewUserError(err, "Run 'wowvault backup list' to see available backups")
		}
		return err
	}

	fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, dir, colorReset)
	fmt.Fprintf(w, "  profile:  %s\n", manifest.ProfileName)
	if manifest.AccountName != nil {
		fmt.Fprintf(w, "  account:  %s\n", *manifest.AccountName)
	}
	if manifest.WowInstallation != nil {
		fmt.Fprintf(w, "  source:   %s\n", *manifest.WowInstallation)
	}
	if manifest.WowVersion != nil {
		fmt.Fprintf(w, "  version:  %s\n", *manifest.WowVersion)
	}
	fmt.Fprintf(w, "  created:  %s\n", manifest.CreatedAt)
	fmt.Fprintf(w, "  files:    %d (%s)\n", manifest.TotalFiles, formatSize(manifest.TotalSize))

	if len(manifest.Addons) == 0 {
		return nil
	}

	names := make([]string, 0, len(manifest.Addons))
	for name := range manifest.Addons {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	for _, name := range names {
		addon := manifest.Addons[name]
		fmt.Fprintf(w, "  %s%s%s (%d)\n", colorGreen, name, colorReset, addon.Count)
		for _, file := range addon.Files {
			fmt.Fprintf(w, "    %s\n", file)
		}
	}
	return nil
}
