package wow

import (
	"path/filepath"
	"strings"
)

// Version identifies a World of Warcraft client flavor.
type Version string

// Known client flavors. The folder markers Blizzard uses (_retail_,
// _classic_era_, ...) map onto these values.
const (
	VersionRetail       Version = "retail"
	VersionClassic      Version = "classic"
	VersionClassicEra   Version = "classic_era"
	VersionClassicWrath Version = "classic_wrath"
	VersionPTR          Version = "ptr"
	VersionBeta         Version = "beta"
)

// Installation represents a World of Warcraft installation on disk.
type Installation struct {
	// Path is the installation root (the directory containing WTF/).
	Path string

	// Version is the detected client flavor.
	Version Version

	// ClientBuild is the client build identifier read from .build.info,
	// empty when unknown.
	ClientBuild string
}

// WTFPath returns the WTF directory of the installation.
func (i *Installation) WTFPath() string {
	return filepath.Join(i.Path, "WTF")
}

// AccountPath returns the WTF/Account directory of the installation.
func (i *Installation) AccountPath() string {
	return filepath.Join(i.WTFPath(), "Account")
}

// SavedVariablesPath returns the SavedVariables directory for an account.
func (i *Installation) SavedVariablesPath(account string) string {
	return filepath.Join(i.AccountPath(), account, "SavedVariables")
}

// DetectVersion determines the client flavor from an installation path.
// Version folders (_retail_, _classic_era_, ...) take precedence over
// keywords in the directory name.
func DetectVersion(path string) Version {
	lower := strings.ToLower(path)
	parts := strings.Split(filepath.ToSlash(lower), "/")

	for _, part := range parts {
		switch part {
		case "_retail_":
			return VersionRetail
		case "_classic_era_", "_classic_":
			switch {
			case strings.Contains(lower, "era") || strings.Contains(lower, "vanilla"):
				return VersionClassicEra
			case strings.Contains(lower, "wrath") || strings.Contains(lower, "wotlk"):
				return VersionClassicWrath
			default:
				return VersionClassic
			}
		case "_ptr_":
			return VersionPTR
		case "_beta_":
			return VersionBeta
		}
	}

	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "classic"):
		switch {
		case strings.Contains(name, "era") || strings.Contains(name, "vanilla"):
			return VersionClassicEra
		case strings.Contains(name, "wrath") || strings.Contains(name, "wotlk"):
			return VersionClassicWrath
		default:
			return VersionClassic
		}
	case strings.Contains(name, "ptr"):
		return VersionPTR
	case strings.Contains(name, "beta") || strings.Contains(name, "alpha"):
		return VersionBeta
	default:
		return VersionRetail
	}
}

// Profile is the identity and parameter set for one backup run.
// It is treated as immutable once a backup starts.
type Profile struct {
	// Name uniquely identifies the profile and derives the backup
	// directory name.
	Name string `toml:"name"`

	// Addons is the ordered set of addon names selected for backup.
	Addons []string `toml:"addons"`

	// Installation is the source installation, nil when the profile
	// is not bound to one.
	Installation *Installation `toml:"installation,omitempty"`

	// AccountName is the WoW account folder name, empty when unknown.
	AccountName string `toml:"account_name,omitempty"`

	// CreatedAt is when the profile was saved, RFC 3339.
	CreatedAt string `toml:"created_at,omitempty"`

	// Description is free-form user text.
	Description string `toml:"description,omitempty"`
}

// AddonFileMap maps addon names to their source files, preserving
// insertion order. The backup engine's ordering guarantees (copied,
// skipped and failed entries appear in input order) depend on
// deterministic iteration, which Go's built-in maps do not provide.
type AddonFileMap struct {
	names []string
	files map[string][]string
}

// NewAddonFileMap returns an empty map.
func NewAddonFileMap() *AddonFileMap {
	return &AddonFileMap{files: make(map[string][]string)}
}

// Add appends files to the named addon's list, registering the addon
// on first use. Files keep their append order.
func (m *AddonFileMap) Add(addon string, paths ...string) {
	if _, ok := m.files[addon]; !ok {
		m.names = append(m.names, addon)
	}
	m.files[addon] = append(m.files[addon], paths...)
}

// Names returns the addon names in insertion order.
// The returned slice must not be modified.
func (m *AddonFileMap) Names() []string {
	return m.names
}

// Files returns the file list for an addon, nil if the addon is unknown.
// The returned slice must not be modified.
func (m *AddonFileMap) Files(addon string) []string {
	return m.files[addon]
}

// Len returns the number of addons.
func (m *AddonFileMap) Len() int {
	return len(m.names)
}

// TotalFiles returns the number of files across all addons.
func (m *AddonFileMap) TotalFiles() int {
	n := 0
	for _, files := range m.files {
		n += len(files)
	}
	return n
}
