package backup

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// Policy selects how destination-file collisions are handled.
type Policy string

// Conflict policies.
const (
	// PolicyOverwrite replaces the existing destination file.
	PolicyOverwrite Policy = "overwrite"

	// PolicySkip leaves the existing destination file untouched and
	// records the source as skipped.
	PolicySkip Policy = "skip"

	// PolicyBackup copies the existing destination file aside before
	// overwriting it.
	PolicyBackup Policy = "backup"

	// PolicyPrompt delegates each collision to a DecisionFunc. Without
	// one configured, collisions are skipped.
	PolicyPrompt Policy = "prompt"
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOverwrite, PolicySkip, PolicyBackup, PolicyPrompt:
		return Policy(s), nil
	default:
		return "", errors.Newf("unknown conflict policy %q", s)
	}
}

// Decision is the outcome of resolving one destination-file collision.
type Decision int

// Conflict decisions.
const (
	DecisionOverwrite Decision = iota
	DecisionSkip
	DecisionBackup
	DecisionCancel
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionOverwrite:
		return "overwrite"
	case DecisionSkip:
		return "skip"
	case DecisionBackup:
		return "backup"
	case DecisionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// DecisionFunc supplies interactive decisions for PolicyPrompt. It is
// called once per collision with the source and destination paths.
type DecisionFunc func(source, dest string) (Decision, error)

// ConflictResolver decides, per destination-file collision, whether to
// overwrite, skip, back up the existing file, or cancel the remaining
// files of the current addon.
type ConflictResolver struct {
	policy Policy
	suffix string
	decide DecisionFunc
}

// DefaultBackupSuffix is appended to an existing destination file when
// it is copied aside under PolicyBackup.
const DefaultBackupSuffix = ".backup"

// NewConflictResolver creates a resolver for the given policy. The
// decide function is consulted only under PolicyPrompt and may be nil.
func NewConflictResolver(policy Policy, suffix string, decide DecisionFunc) *ConflictResolver {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return &ConflictResolver{policy: policy, suffix: suffix, decide: decide}
}

// Resolve returns the decision for a collision on dest.
func (r *ConflictResolver) Resolve(source, dest string) (Decision, error) {
	switch r.policy {
	case PolicyOverwrite:
		return DecisionOverwrite, nil
	case PolicySkip:
		return DecisionSkip, nil
	case PolicyBackup:
		return DecisionBackup, nil
	case PolicyPrompt:
		if r.decide == nil {
			// No decision source wired up; skipping is the documented
			// default.
			return DecisionSkip, nil
		}
		return r.decide(source, dest)
	default:
		return DecisionSkip, nil
	}
}

// backupAside copies an existing destination file to a sibling carrying
// the resolver's suffix, so the subsequent copy can overwrite the
// original. A numeric counter de-duplicates repeated backups of the
// same file.
func (r *ConflictResolver) backupAside(path string, chunkSize int) error {
	target := path + r.suffix
	for n := 1; fileExists(target); n++ {
		target = fmt.Sprintf("%s%s.%d", path, r.suffix, n)
	}

	if _, err := copyFile(path, target, chunkSize); err != nil {
		var perr *PermissionError
		if errors.As(err, &perr) {
			return &PermissionError{Path: target, Op: "create backup", Err: perr.Err}
		}
		return err
	}
	return nil
}

// fileExists reports whether path exists and is a regular file or
// directory visible to the process.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
