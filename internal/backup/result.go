package backup

import (
	"fmt"
	"time"
)

// FileError records a source file that could not be backed up and why.
type FileError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ValidationError records a copied file whose destination content does
// not verify against its source fingerprint.
type ValidationError struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Dest, e.Reason)
}

// Result is the outcome of one backup run. Every source file submitted
// to the run lands in exactly one of Copied, Skipped, or Failed.
type Result struct {
	// Success is true only when nothing failed and every copied file
	// validated.
	Success bool `json:"success"`

	// Copied lists source paths whose content reached the destination.
	Copied []string `json:"copied"`

	// Skipped lists source paths left out by conflict resolution or
	// cancellation.
	Skipped []string `json:"skipped"`

	// Failed lists source paths that could not be copied, with reasons.
	Failed []FileError `json:"failed"`

	// TotalSize is the byte count of all copied files.
	TotalSize int64 `json:"total_size"`

	// ValidationErrors lists copied files whose destination content did
	// not verify.
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`

	// BackupDir is the directory the backup was written to.
	BackupDir string `json:"backup_dir"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func newResult() *Result {
	return &Result{
		Copied:    []string{},
		Skipped:   []string{},
		Failed:    []FileError{},
		StartTime: time.Now(),
	}
}

// Duration returns the wall-clock time of the run.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

func (r *Result) addCopied(path string, size int64) {
	r.Copied = append(r.Copied, path)
	r.TotalSize += size
}

func (r *Result) addSkipped(path string) {
	r.Skipped = append(r.Skipped, path)
}

func (r *Result) addFailed(path, reason string) {
	r.Failed = append(r.Failed, FileError{Path: path, Reason: reason})
}

func (r *Result) addValidationError(v ValidationError) {
	r.ValidationErrors = append(r.ValidationErrors, v)
}

// finalize stamps the end time and derives Success: no failures and no
// validation errors.
func (r *Result) finalize() {
	r.EndTime = time.Now()
	r.Success = len(r.Failed) == 0 && len(r.ValidationErrors) == 0
}
