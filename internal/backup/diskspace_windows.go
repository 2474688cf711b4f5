//go:build windows

package backup

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// freeSpaceAt returns the free bytes available to the process at path,
// measured at the nearest existing ancestor.
func freeSpaceAt(path string) (uint64, error) {
	dir, err := nearestExisting(path)
	if err != nil {
		return 0, err
	}

	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "encoding path %s", dir)
	}

	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &available, &total, &free); err != nil {
		return 0, errors.Wrapf(err, "querying free space at %s", dir)
	}
	return available, nil
}
