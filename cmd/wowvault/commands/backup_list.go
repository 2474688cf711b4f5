package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/backup"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List the backups at the configured destination, most recent first.

Only directories carrying a backup manifest are listed; anything else
under the backup root is ignored.`,
	Example: `  # List all backups
  wowvault backup list

  # Output as JSON
  wowvault backup list --json`,
	RunE: runBackupList,
}

// backupListEntry represents a single backup in JSON output.
type backupListEntry struct {
	Dir        string `json:"dir"`
	Profile    string `json:"profile"`
	CreatedAt  string `json:"created_at"`
	TotalFiles int    `json:"total_files"`
	TotalSize  int64  `json:"total_size"`
}

func runBackupList(_ *cobra.Command, _ []string) error {
	return runBackupListWithWriter(os.Stdout)
}

func runBackupListWithWriter(w io.Writer) error {
	root := filepath.Join(cfg.Backup.Destination, backup.BackupDirName)
	entries, err := backup.ListBackups(root)
	if err != nil {
		return err
	}

	if backupListJSON {
		output := make([]backupListEntry, len(entries))
		for i, e := range entries {
			output[i] = backupListEntry{
				Dir:        e.Dir,
				Profile:    e.Manifest.ProfileName,
				CreatedAt:  e.Manifest.CreatedAt,
				TotalFiles: e.Manifest.TotalFiles,
				TotalSize:  e.Manifest.TotalSize,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: wowvault backup create")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sPROFILE%s\t%sCREATED%s\t%sFILES%s\t%sSIZE%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, e := range entries {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\t%d\t%s\n",
			colorGreen, filepath.Base(e.Dir), colorReset,
			e.Manifest.ProfileName,
			e.Manifest.CreatedAt,
			e.Manifest.TotalFiles,
			formatSize(e.Manifest.TotalSize))
	}
	return tw.Flush()
}
