package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir should create a directory")
	}
	if perm := info.Mode().Perm(); perm != DefaultDirPerm {
		t.Errorf("perm = %o, want %o", perm, DefaultDirPerm)
	}

	// Idempotent
	if err := EnsureDir(target, 0); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestConfigDir_UnderConfigHome(t *testing.T) {
	got := ConfigDir()
	if got == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if filepath.Base(got) != AppName {
		t.Errorf("ConfigDir = %q, want trailing %q", got, AppName)
	}
}

func TestProfilesDir_UnderDataDir(t *testing.T) {
	got := ProfilesDir()
	if filepath.Dir(got) != DataDir() {
		t.Errorf("ProfilesDir = %q, want child of %q", got, DataDir())
	}
}
