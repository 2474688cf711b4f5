// Package backup implements verified backups of WoW addon configuration
// files.
//
// A backup run copies the files of an addon-to-files mapping into a
// per-profile directory tree, optionally re-verifies every selected
// file against its source with size and hash fingerprints, and
// optionally writes a
// JSON manifest describing the backup.
//
// # Directory Layout
//
// Backups are stored under the configured destination root:
//
//	<destination>/Backup/
//	└── {profile name}[_{timestamp}]/
//	    ├── backup_metadata.json
//	    └── {addon name}/
//	        └── {copied files...}
//
// # Failure Model
//
// A failure on one file never aborts the run; it is recorded in the
// result and processing continues with the next file. Only precondition
// failures (insufficient destination space, destination not creatable)
// and a duplicate session for the same profile abort before anything is
// copied. The result's Success flag is computed once, after all phases,
// and is true only when no file failed and no validation error was
// recorded.
//
// # Creating Backups
//
//	mgr := backup.NewManager("/backups",
//		backup.WithTimestampFolder(true),
//		backup.WithConflictPolicy(backup.PolicySkip),
//	)
//	result, err := mgr.CreateBackup(ctx, profile, addonFiles)
package backup
