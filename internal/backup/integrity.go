package backup

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"time"
)

// DefaultHashChunkSize is the read buffer size used when fingerprinting
// files. Streaming in chunks bounds memory use on large SavedVariables
// files.
const DefaultHashChunkSize = 4096

// Fingerprint is the integrity record for one file: its size, content
// hashes, and modification time. The modification time is informational
// and excluded from Matches.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
	MD5     string
	SHA256  string
}

// TakeFingerprint computes the integrity record for path, streaming the
// file in chunkSize reads (DefaultHashChunkSize when chunkSize <= 0).
//
// Stat or read failures do not propagate: the returned record has empty
// digests and a zero size, and reports false from Valid.
func TakeFingerprint(path string, chunkSize int) Fingerprint {
	fp := Fingerprint{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return fp
	}
	fp.Size = info.Size()
	fp.ModTime = info.ModTime()

	fp.MD5 = digestFile(path, md5.New, chunkSize)
	fp.SHA256 = digestFile(path, sha256.New, chunkSize)
	return fp
}

// Valid reports whether the record was computed from a readable file.
func (f Fingerprint) Valid() bool {
	return f.MD5 != "" && f.SHA256 != ""
}

// Matches reports whether two records describe byte-identical content:
// equal size, MD5, and SHA-256. A record taken from a missing or
// unreadable file never matches, not even another failed record.
func (f Fingerprint) Matches(other Fingerprint) bool {
	if !f.Valid() || !other.Valid() {
		return false
	}
	return f.Size == other.Size &&
		f.MD5 == other.MD5 &&
		f.SHA256 == other.SHA256
}

// digestFile streams the file through the given hash algorithm and
// returns the hex digest, or "" on any open or read failure.
func digestFile(path string, algo func() hash.Hash, chunkSize int) string {
	if chunkSize <= 0 {
		chunkSize = DefaultHashChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := algo()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
