package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/logging"
	"github.com/tdalbo/wowvault/internal/scanner"
	"github.com/tdalbo/wowvault/internal/wow"
)

var (
	scanAccounts bool
	scanPathFlag string
)

func init() {
	scanCmd.Flags().BoolVar(&scanAccounts, "accounts", false, "List accounts for each installation")
	scanCmd.Flags().StringVar(&scanPathFlag, "path", "", "Register an installation path instead of scanning")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find World of Warcraft installations",
	Long: `Scan the configured paths for World of Warcraft installations.

An installation is recognized by its WTF/Account/SavedVariables folder
structure, or by a client executable next to a WTF directory. Use
--path to register an installation the scan would not find; the path
may also point inside a SavedVariables directory.`,
	Example: `  # Scan configured paths
  wowvault scan

  # Include account folders in the output
  wowvault scan --accounts

  # Register an installation manually
  wowvault scan --path "/games/World of Warcraft/_retail_"`,
	RunE: runScan,
}

func runScan(c *cobra.Command, _ []string) error {
	return runScanWithWriter(c, os.Stdout)
}

func runScanWithWriter(c *cobra.Command, w io.Writer) error {
	sc := newScanner(c)

	var found []wow.Installation
	if scanPathFlag != "" {
		inst, err := sc.Register(scanPathFlag)
		if err != nil {
			return err
		}
		found = []wow.Installation{*inst}
	} else {
		found = sc.Scan()
		found = filterVersions(found)
	}

	if len(found) == 0 {
		fmt.Fprintln(w, "No World of Warcraft installations found.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Add scan paths to the config, or register one with: wowvault scan --path <dir>")
		return nil
	}

	for i, inst := range found {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, inst.Path, colorReset)
		fmt.Fprintf(w, "  version: %s%s%s\n", colorGreen, inst.Version, colorReset)
		if inst.ClientBuild != "" {
			fmt.Fprintf(w, "  build:   %s\n", inst.ClientBuild)
		}

		if scanAccounts {
			accounts, err := sc.Accounts(&inst)
			if err != nil {
				fmt.Fprintf(w, "  %s(no accounts)%s\n", colorGray, colorReset)
				continue
			}
			for _, account := range accounts {
				fmt.Fprintf(w, "  account: %s\n", account)
			}
		}
	}
	return nil
}

// newScanner builds a scanner from the loaded configuration.
func newScanner(c *cobra.Command) *scanner.Scanner {
	return scanner.New(cfg.Scan.Paths,
		scanner.WithMaxDepth(cfg.Scan.MaxDepth),
		scanner.WithLogger(logging.FromContext(c.Context())))
}

// filterVersions drops PTR and beta installations unless the config
// includes them.
func filterVersions(found []wow.Installation) []wow.Installation {
	kept := found[:0]
	for _, inst := range found {
		switch inst.Version {
		case wow.VersionPTR:
			if !cfg.Scan.IncludePTR {
				continue
			}
		case wow.VersionBeta:
			if !cfg.Scan.IncludeBeta {
				continue
			}
		}
		kept = append(kept, inst)
	}
	return kept
}
