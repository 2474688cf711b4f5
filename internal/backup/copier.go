package backup

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultCopyChunkSize is the buffer size used when streaming file
// copies (1 MiB).
const DefaultCopyChunkSize = 1 << 20

// copyFile streams src to dst in chunkSize reads, creating dst's parent
// directory if absent and truncating any existing destination content.
// It returns the number of bytes copied.
//
// Permission failures on the destination are surfaced as a
// *PermissionError; other I/O failures are returned as generic errors.
// A partially written destination is never reported as success.
func copyFile(src, dst string, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultCopyChunkSize
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return 0, &PermissionError{Path: filepath.Dir(dst), Op: "create directory", Err: err}
		}
		return 0, errors.Wrap(err, "creating destination directory")
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return 0, &PermissionError{Path: dst, Op: "write file", Err: err}
		}
		return 0, errors.Wrap(err, "creating destination file")
	}

	buf := make([]byte, chunkSize)
	n, err := io.CopyBuffer(out, in, buf)
	if err != nil {
		out.Close()
		if errors.Is(err, fs.ErrPermission) {
			return 0, &PermissionError{Path: dst, Op: "write file", Err: err}
		}
		return 0, errors.Wrap(err, "copying file")
	}

	if err := out.Close(); err != nil {
		return 0, errors.Wrap(err, "closing destination file")
	}

	return n, nil
}
