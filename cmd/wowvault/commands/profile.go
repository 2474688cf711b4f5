package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	apperrors "github.com/tdalbo/wowvault/internal/errors"
	"github.com/tdalbo/wowvault/internal/paths"
	"github.com/tdalbo/wowvault/internal/wow"
)

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved backup profiles",
	Long: `Manage saved backup profiles.

A profile records an addon selection together with the installation and
account it was taken from. 'wowvault backup create <name>' reuses a
saved profile's selection automatically.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runProfileList(os.Stdout)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runProfileShow(os.Stdout, args[0])
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store := wow.NewProfileStore(paths.ProfilesDir())
		if err := store.Delete(args[0]); err != nil {
			if errors.Is(err, wow.ErrProfileNotFound) {
				return apperrors.NewUserError(err, "Run 'wowvault profile list' to see saved profiles")
			}
			return err
		}
		fmt.Printf("Deleted profile %q\n", args[0])
		return nil
	},
}

func runProfileList(w io.Writer) error {
	store := wow.NewProfileStore(paths.ProfilesDir())
	names, err := store.List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(w, "No saved profiles")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Save one with: wowvault backup create <name> --save-profile")
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func runProfileShow(w io.Writer, name string) error {
	store := wow.NewProfileStore(paths.ProfilesDir())
	profile, err := store.Load(name)
	if err != nil {
		if errors.Is(err, wow.ErrProfileNotFound) {
			return apperrors.NewUserError(err, "Run 'wowvault profile list' to see saved profiles")
		}
		return err
	}

	fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, profile.Name, colorReset)
	if profile.Description != "" {
		fmt.Fprintf(w, "  %s\n", profile.Description)
	}
	if profile.Installation != nil {
		fmt.Fprintf(w, "  source:  %s (%s)\n", profile.Installation.Path, profile.Installation.Version)
	}
	if profile.AccountName != "" {
		fmt.Fprintf(w, "  account: %s\n", profile.AccountName)
	}
	if profile.CreatedAt != "" {
		fmt.Fprintf(w, "  saved:   %s\n", profile.CreatedAt)
	}
	for _, addon := range profile.Addons {
		fmt.Fprintf(w, "  addon:   %s\n", addon)
	}
	return nil
}
