package backup

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// nearestExisting walks up from path to the closest directory that
// exists on disk. The backup directory itself may not exist yet; the
// nearest existing ancestor is on the file system the backup will land
// on, so that is where free space is measured.
func nearestExisting(path string) (string, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolving path")
	}
	for {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p, nil
		}
		p = parent
	}
}
