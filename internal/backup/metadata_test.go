package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifestDir(t *testing.T, root, name, createdAt string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, writeManifest(dir, &Manifest{
		ProfileName: name,
		CreatedAt:   createdAt,
		Addons:      map[string]AddonManifest{},
	}))
	return dir
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	account := "MYACCOUNT"
	install := "/games/wow/_retail_"
	version := "retail"

	m := &Manifest{
		ProfileName:     "raid",
		AccountName:     &account,
		WowInstallation: &install,
		WowVersion:      &version,
		CreatedAt:       "2026-08-24T10:00:00Z",
		Addons: map[string]AddonManifest{
			"Details": {Files: []string{"Details.lua"}, Count: 1},
		},
		TotalFiles: 1,
		TotalSize:  128,
	}

	require.NoError(t, writeManifest(dir, m))

	got, err := BackupInfo(dir)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestManifestJSONKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeManifest(dir, &Manifest{
		ProfileName: "raid",
		CreatedAt:   "2026-08-24T10:00:00Z",
		Addons:      map[string]AddonManifest{"ElvUI": {Files: []string{"ElvUI.lua"}, Count: 1}},
		TotalFiles:  1,
	}))

	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"profile_name", "account_name", "wow_installation", "wow_version",
		"created_at", "addons", "total_files", "total_size",
	} {
		assert.Contains(t, raw, key)
	}

	// Unknown fields serialize as explicit null, not as absent keys.
	assert.Equal(t, "null", string(raw["account_name"]))
}

func TestBackupInfoMissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := BackupInfo(dir)

	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestListBackups(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		root := t.TempDir()
		writeManifestDir(t, root, "raid_20260101_120000", "2026-01-01T12:00:00Z")
		writeManifestDir(t, root, "raid_20260301_120000", "2026-03-01T12:00:00Z")
		writeManifestDir(t, root, "raid_20260201_120000", "2026-02-01T12:00:00Z")

		entries, err := ListBackups(root)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "2026-03-01T12:00:00Z", entries[0].Manifest.CreatedAt)
		assert.Equal(t, "2026-02-01T12:00:00Z", entries[1].Manifest.CreatedAt)
		assert.Equal(t, "2026-01-01T12:00:00Z", entries[2].Manifest.CreatedAt)
	})

	t.Run("directories without manifest are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeManifestDir(t, root, "raid", "2026-01-01T12:00:00Z")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "stray"), 0o755))
		writeTestFile(t, root, "notes.txt", "not a backup")

		entries, err := ListBackups(root)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "raid", entries[0].Manifest.ProfileName)
	})

	t.Run("missing root yields empty list", func(t *testing.T) {
		entries, err := ListBackups(filepath.Join(t.TempDir(), "absent"))

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
