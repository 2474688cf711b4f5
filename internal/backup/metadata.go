package backup

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/tdalbo/wowvault/pkg/fileutil"
)

// MetadataFileName is the manifest written into each backup directory.
const MetadataFileName = "backup_metadata.json"

// AddonManifest describes one addon's files inside a backup.
type AddonManifest struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// Manifest is the machine-readable description of a completed backup,
// written alongside the copied files. Pointer fields serialize as JSON
// null when the information was unavailable at backup time.
type Manifest struct {
	ProfileName     string                   `json:"profile_name"`
	AccountName     *string                  `json:"account_name"`
	WowInstallation *string                  `json:"wow_installation"`
	WowVersion      *string                  `json:"wow_version"`
	CreatedAt       string                   `json:"created_at"`
	Addons          map[string]AddonManifest `json:"addons"`
	TotalFiles      int                      `json:"total_files"`
	TotalSize       int64                    `json:"total_size"`
}

// writeManifest writes the manifest atomically into dir. Permission
// failures are surfaced as a *PermissionError so they fold into the
// run result the same way copy failures do.
func writeManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, MetadataFileName)
	if err := fileutil.AtomicWriteJSON(path, m); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &PermissionError{Path: path, Op: "write metadata", Err: err}
		}
		return errors.Wrap(err, "writing backup metadata")
	}
	return nil
}

// BackupInfo reads the manifest of a single backup directory. It
// returns ErrManifestNotFound when the directory has no manifest.
func BackupInfo(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrManifestNotFound, "%s", dir)
		}
		return nil, errors.Wrap(err, "reading backup metadata")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing backup metadata in %s", dir)
	}
	return &m, nil
}

// BackupEntry pairs a backup directory with its parsed manifest.
type BackupEntry struct {
	Dir      string
	Manifest *Manifest
}

// ListBackups scans root for backup directories carrying a manifest and
// returns them newest first, ordered by the manifest's created_at
// stamp. Directories without a readable manifest are skipped.
func ListBackups(root string) ([]BackupEntry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading backup root")
	}

	var entries []BackupEntry
	for _, de := range dirents {
		if !de.IsDir() {
			continue
		}
		dir := filepath.Join(root, de.Name())
		m, err := BackupInfo(dir)
		if err != nil {
			continue
		}
		entries = append(entries, BackupEntry{Dir: dir, Manifest: m})
	}

	// created_at is RFC 3339, so lexical order is chronological.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.CreatedAt > entries[j].Manifest.CreatedAt
	})
	return entries, nil
}

// nowRFC3339 stamps manifests; a variable so tests can pin time.
var nowRFC3339 = func() string {
	return time.Now().Format(time.RFC3339)
}
