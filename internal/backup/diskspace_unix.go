//go:build !windows

package backup

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// freeSpaceAt returns the free bytes available to the process at path,
// measured at the nearest existing ancestor.
func freeSpaceAt(path string) (uint64, error) {
	dir, err := nearestExisting(path)
	if err != nil {
		return 0, err
	}

	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, errors.Wrapf(err, "statfs %s", dir)
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
