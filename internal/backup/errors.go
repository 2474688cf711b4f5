package backup

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for backup operations.
var (
	// ErrSessionActive indicates a backup for the same profile is already
	// running. Raised before any I/O happens.
	ErrSessionActive = errors.New("backup session already active")

	// ErrManifestNotFound indicates a backup directory has no metadata
	// manifest.
	ErrManifestNotFound = errors.New("backup metadata not found")
)

// InsufficientSpaceError indicates the destination file system does not
// have room for the backup. It aborts the run before any file is copied.
type InsufficientSpaceError struct {
	// Required is the total size of all existing source files in bytes.
	Required uint64

	// Available is the free space at the destination in bytes.
	Available uint64

	// Path is the destination path that was checked.
	Path string
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: required %.1fMB, available %.1fMB (path: %s)",
		float64(e.Required)/(1024*1024), float64(e.Available)/(1024*1024), e.Path)
}

// PermissionError indicates a file system operation was rejected due to
// permissions. Op names the attempted operation ("write file",
// "create directory", "create backup", "write metadata").
type PermissionError struct {
	Path string
	Op   string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s on %s", e.Op, e.Path)
}

// Unwrap returns the underlying error.
func (e *PermissionError) Unwrap() error {
	return e.Err
}
