package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "wowvault"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns the wowvault configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir returns the wowvault data directory (profile store, state).
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ProfilesDir returns the directory holding saved backup profiles.
func ProfilesDir() string {
	return filepath.Join(DataDir(), "profiles")
}

// DefaultBackupDir returns the default backup destination root.
func DefaultBackupDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "AddonBackups")
}

// DefaultScanPaths returns the directories commonly holding WoW installations
// on the current platform. Only existing directories are returned.
func DefaultScanPaths() []string {
	var candidates []string

	switch runtime.GOOS {
	case "windows":
		candidates = []string{
			`C:\Program Files\World of Warcraft`,
			`C:\Program Files (x86)\World of Warcraft`,
		}
	case "darwin":
		candidates = []string{
			"/Applications/World of Warcraft",
		}
	default:
		// Linux installs run under Wine or Proton
		home := Home()
		if home != "" {
			candidates = []string{
				filepath.Join(home, ".steam/steam/steamapps/common/World of Warcraft"),
				filepath.Join(home, ".local/share/Steam/steamapps/common/World of Warcraft"),
			}
		}
	}

	var existing []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			existing = append(existing, c)
		}
	}
	return existing
}
