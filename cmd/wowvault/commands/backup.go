package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and inspect addon backups",
	Long: `Create verified backups of addon SavedVariables files and inspect
existing ones.

Backups are written under <destination>/Backup/<profile>, one directory
per addon, with a manifest describing what was backed up. Every copied
file is verified against its source hashes.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
