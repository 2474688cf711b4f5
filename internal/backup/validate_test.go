package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdalbo/wowvault/internal/wow"
)

// copyToBackup lays one source file into the backup tree the way the
// copy phase would.
func copyToBackup(t *testing.T, root, addon, src string) string {
	t.Helper()
	dst := destPath(root, addon, src)
	_, err := copyFile(src, dst, 0)
	require.NoError(t, err)
	return dst
}

func TestValidateBackup(t *testing.T) {
	t.Run("intact destinations produce no errors", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "out")
		src := writeTestFile(t, dir, "sv/Details.lua", "content")
		copyToBackup(t, root, "Details", src)

		files := wow.NewAddonFileMap()
		files.Add("Details", src)

		assert.Empty(t, validateBackup(root, files, 0))
	})

	t.Run("tampered destination is reported", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "out")
		src := writeTestFile(t, dir, "sv/Details.lua", "original")
		dst := copyToBackup(t, root, "Details", src)

		require.NoError(t, os.WriteFile(dst, []byte("tampered"), 0o644))

		files := wow.NewAddonFileMap()
		files.Add("Details", src)
		errs := validateBackup(root, files, 0)

		require.Len(t, errs, 1)
		assert.Equal(t, "integrity check failed", errs[0].Reason)
		assert.Equal(t, dst, errs[0].Dest)
	})

	t.Run("missing destination is reported", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "out")
		src := writeTestFile(t, dir, "sv/a.lua", "x")

		files := wow.NewAddonFileMap()
		files.Add("Details", src)
		errs := validateBackup(root, files, 0)

		require.Len(t, errs, 1)
		assert.Equal(t, "destination file not found", errs[0].Reason)
	})

	t.Run("covers files the copy phase never touched", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "out")
		src := writeTestFile(t, dir, "sv/Details.lua", "current source")

		// A stale destination from an earlier run; nothing copied now.
		dst := destPath(root, "Details", src)
		writeTestFile(t, filepath.Dir(dst), filepath.Base(dst), "older content")

		files := wow.NewAddonFileMap()
		files.Add("Details", src)
		errs := validateBackup(root, files, 0)

		require.Len(t, errs, 1)
		assert.Equal(t, "integrity check failed", errs[0].Reason)
	})

	t.Run("validation is exhaustive", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "out")
		files := wow.NewAddonFileMap()
		var dsts []string
		for _, name := range []string{"a.lua", "b.lua", "c.lua"} {
			src := writeTestFile(t, dir, "sv/"+name, "content of "+name)
			files.Add("Details", src)
			dsts = append(dsts, copyToBackup(t, root, "Details", src))
		}

		// Corrupt the first and remove the last; the middle stays intact.
		require.NoError(t, os.WriteFile(dsts[0], []byte("garbage"), 0o644))
		require.NoError(t, os.Remove(dsts[2]))

		errs := validateBackup(root, files, 0)

		require.Len(t, errs, 2)
		assert.Equal(t, "integrity check failed", errs[0].Reason)
		assert.Equal(t, "destination file not found", errs[1].Reason)
	})
}

func TestDestPath(t *testing.T) {
	got := destPath(filepath.Join("dest", "Backup", "raid"), "Details", filepath.Join("wow", "SavedVariables", "Details.lua"))
	assert.Equal(t, filepath.Join("dest", "Backup", "raid", "Details", "Details.lua"), got)
}
