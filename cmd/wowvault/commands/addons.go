package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/cli"
)

var (
	addonsPathFlag    string
	addonsAccountFlag string
)

func init() {
	addonsCmd.Flags().StringVar(&addonsPathFlag, "path", "", "Installation path (default: scan)")
	addonsCmd.Flags().StringVar(&addonsAccountFlag, "account", "", "Account name (default: the only account)")
	rootCmd.AddCommand(addonsCmd)
}

var addonsCmd = &cobra.Command{
	Use:   "addons",
	Short: "List addon files eligible for backup",
	Long: `List the addon SavedVariables files of an account, grouped by addon.

A .lua file and its .lua.bak sibling are listed under the same addon.
Files the client writes for itself (bindings, macros, caches) are
excluded.`,
	Example: `  # List addons of the only installation and account
  wowvault addons

  # Pick installation and account explicitly
  wowvault addons --path "/games/wow/_retail_" --account MYACCOUNT`,
	RunE: runAddons,
}

func runAddons(c *cobra.Command, _ []string) error {
	return runAddonsWithWriter(c, os.Stdout)
}

func runAddonsWithWriter(c *cobra.Command, w io.Writer) error {
	sc := newScanner(c)

	inst, err := cli.ResolveInstallation(sc, addonsPathFlag)
	if err != nil {
		return err
	}
	account, err := cli.ResolveAccount(sc, inst, addonsAccountFlag)
	if err != nil {
		return err
	}

	files, err := sc.AddonFiles(inst, account)
	if err != nil {
		return err
	}

	if files.Len() == 0 {
		fmt.Fprintf(w, "No addon files found for account %s.\n", account)
		return nil
	}

	fmt.Fprintf(w, "%sAccount: %s%s\n\n", colorCyan+colorBold, account, colorReset)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sADDON%s\t%sFILES%s\n", colorBold, colorReset, colorBold, colorReset)
	for _, name := range files.Names() {
		paths := files.Files(name)
		fmt.Fprintf(tw, "%s%s%s\t%s\n", colorGreen, name, colorReset, filepath.Base(paths[0]))
		for _, p := range paths[1:] {
			fmt.Fprintf(tw, "\t%s\n", filepath.Base(p))
		}
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d addons, %d files\n", files.Len(), files.TotalFiles())
	return nil
}
