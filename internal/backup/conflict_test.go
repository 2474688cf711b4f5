package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "overwrite", want: PolicyOverwrite},
		{input: "skip", want: PolicySkip},
		{input: "backup", want: PolicyBackup},
		{input: "prompt", want: PolicyPrompt},
		{input: "ask", wantErr: true},
		{input: "", wantErr: true},
		{input: "Overwrite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflictResolverResolve(t *testing.T) {
	t.Run("fixed policies map directly", func(t *testing.T) {
		tests := []struct {
			policy Policy
			want   Decision
		}{
			{PolicyOverwrite, DecisionOverwrite},
			{PolicySkip, DecisionSkip},
			{PolicyBackup, DecisionBackup},
		}
		for _, tt := range tests {
			r := NewConflictResolver(tt.policy, "", nil)
			got, err := r.Resolve("src.lua", "dst.lua")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "policy %s", tt.policy)
		}
	})

	t.Run("prompt without decision source skips", func(t *testing.T) {
		r := NewConflictResolver(PolicyPrompt, "", nil)

		got, err := r.Resolve("src.lua", "dst.lua")

		require.NoError(t, err)
		assert.Equal(t, DecisionSkip, got)
	})

	t.Run("prompt delegates to decision source", func(t *testing.T) {
		var gotSrc, gotDst string
		r := NewConflictResolver(PolicyPrompt, "", func(source, dest string) (Decision, error) {
			gotSrc, gotDst = source, dest
			return DecisionCancel, nil
		})

		got, err := r.Resolve("src.lua", "dst.lua")

		require.NoError(t, err)
		assert.Equal(t, DecisionCancel, got)
		assert.Equal(t, "src.lua", gotSrc)
		assert.Equal(t, "dst.lua", gotDst)
	})
}

func TestBackupAside(t *testing.T) {
	t.Run("copies existing file to suffixed sibling", func(t *testing.T) {
		dir := t.TempDir()
		path := writeTestFile(t, dir, "Details.lua", "old content")
		r := NewConflictResolver(PolicyBackup, ".backup", nil)

		require.NoError(t, r.backupAside(path, 0))

		saved, err := os.ReadFile(path + ".backup")
		require.NoError(t, err)
		assert.Equal(t, "old content", string(saved))

		// Original stays in place for the overwrite that follows.
		orig, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old content", string(orig))
	})

	t.Run("numbers repeated backups", func(t *testing.T) {
		dir := t.TempDir()
		path := writeTestFile(t, dir, "Details.lua", "v3")
		writeTestFile(t, dir, "Details.lua.backup", "v1")
		writeTestFile(t, dir, "Details.lua.backup.1", "v2")
		r := NewConflictResolver(PolicyBackup, ".backup", nil)

		require.NoError(t, r.backupAside(path, 0))

		saved, err := os.ReadFile(filepath.Join(dir, "Details.lua.backup.2"))
		require.NoError(t, err)
		assert.Equal(t, "v3", string(saved))
	})

	t.Run("custom suffix", func(t *testing.T) {
		dir := t.TempDir()
		path := writeTestFile(t, dir, "ElvUI.lua", "data")
		r := NewConflictResolver(PolicyBackup, ".old", nil)

		require.NoError(t, r.backupAside(path, 0))

		assert.FileExists(t, path+".old")
	})
}
