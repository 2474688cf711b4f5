package backup

import (
	"os"
	"path/filepath"

	"github.com/tdalbo/wowvault/internal/wow"
)

// Validation reasons.
const (
	reasonDestMissing     = "destination file not found"
	reasonIntegrityFailed = "integrity check failed"
)

// validateBackup verifies every file of the selection, not just the
// ones the copy phase wrote: each (addon, source) pair must have a
// destination whose content matches the source. The check is
// exhaustive: all files are examined even after a mismatch, so the
// result names every missing, stale, or corrupted destination.
func validateBackup(root string, addonFiles *wow.AddonFileMap, chunkSize int) []ValidationError {
	var errs []ValidationError
	for _, addon := range addonFiles.Names() {
		for _, src := range addonFiles.Files(addon) {
			dest := destPath(root, addon, src)

			if _, err := os.Stat(dest); err != nil {
				errs = append(errs, ValidationError{
					Source: src,
					Dest:   dest,
					Reason: reasonDestMissing,
				})
				continue
			}

			want := TakeFingerprint(src, chunkSize)
			got := TakeFingerprint(dest, chunkSize)
			if !want.Matches(got) {
				errs = append(errs, ValidationError{
					Source: src,
					Dest:   dest,
					Reason: reasonIntegrityFailed,
				})
			}
		}
	}
	return errs
}

// destPath maps a source file into the backup tree: one directory per
// addon, flat files inside.
func destPath(root, addon, source string) string {
	return filepath.Join(root, addon, filepath.Base(source))
}
