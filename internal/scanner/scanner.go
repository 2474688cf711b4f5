// Package scanner discovers World of Warcraft installations on disk and
// enumerates the addon SavedVariables files eligible for backup.
package scanner

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	apperrors "github.com/tdalbo/wowvault/internal/errors"
	"github.com/tdalbo/wowvault/internal/logging"
	"github.com/tdalbo/wowvault/internal/wow"
)

// DefaultMaxDepth bounds how deep Scan descends below each scan path.
const DefaultMaxDepth = 3

// clientExecutables are the launcher binaries checked when the folder
// structure alone is inconclusive.
var clientExecutables = []string{"Wow.exe", "WowClassic.exe", "WowT.exe", "Wow-64.exe"}

// nonAddonFiles are SavedVariables files the client writes for itself;
// they carry no addon configuration and are never backed up.
var nonAddonFiles = map[string]struct{}{
	"bindings.lua":       {},
	"chatcache.lua":      {},
	"glyphcache.lua":     {},
	"macros.lua":         {},
	"panel.lua":          {},
	"preferences.lua":    {},
	"savedvariables.lua": {},
}

// Scanner locates WoW installations under a set of scan paths.
type Scanner struct {
	paths    []string
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxDepth bounds the scan depth below each scan path.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner over the given scan paths.
func New(paths []string, opts ...Option) *Scanner {
	s := &Scanner{
		paths:    paths,
		maxDepth: DefaultMaxDepth,
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks every configured scan path and returns the installations
// found. Missing or unreadable paths are logged and skipped; a scan
// never fails outright.
func (s *Scanner) Scan() []wow.Installation {
	var found []wow.Installation
	seen := make(map[string]struct{})

	for _, root := range s.paths {
		if _, err := os.Stat(root); err != nil {
			s.logger.Debug("scan path unavailable", "path", root)
			continue
		}
		s.walk(root, 1, seen, &found)
	}
	return found
}

func (s *Scanner) walk(dir string, depth int, seen map[string]struct{}, found *[]wow.Installation) {
	if depth > s.maxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("skipping unreadable directory", "path", dir, logging.ErrAttr(err))
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if IsInstallation(path) {
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				inst := s.describe(path)
				s.logger.Debug("found installation", "path", path, "version", inst.Version)
				*found = append(*found, inst)
			}
		}
		s.walk(path, depth+1, seen, found)
	}
}

// describe builds the Installation record for a validated path.
func (s *Scanner) describe(path string) wow.Installation {
	return wow.Installation{
		Path:        path,
		Version:     wow.DetectVersion(path),
		ClientBuild: clientBuild(path),
	}
}

// Resolve validates a specific path as a WoW installation without a
// full scan. It returns apperrors.ErrNoInstallation when the path does
// not hold one.
func (s *Scanner) Resolve(path string) (*wow.Installation, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving path")
	}
	if !IsInstallation(abs) {
		return nil, errors.Wrapf(apperrors.ErrNoInstallation, "%s", abs)
	}
	inst := s.describe(abs)
	return &inst, nil
}

// Register resolves a manually supplied path into an installation. The
// path may be the installation root, a version folder, or anything at
// or below the SavedVariables directory; in the latter case the tree is
// walked upward to find the root.
func (s *Scanner) Register(path string) (*wow.Installation, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving path")
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Wrapf(apperrors.ErrNoInstallation, "%s", abs)
	}

	if strings.Contains(abs, "SavedVariables") {
		if root := rootFromSavedVariables(abs); root != "" {
			abs = root
		}
	}
	return s.Resolve(abs)
}

// rootFromSavedVariables walks up from a SavedVariables path to the
// closest directory with a valid installation structure, at most five
// levels.
func rootFromSavedVariables(path string) string {
	current := path
	for i := 0; i < 5; i++ {
		if validStructure(current) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

// IsInstallation reports whether path holds a WoW installation: either
// a valid WTF/Account/SavedVariables structure, or a client executable
// next to a WTF directory.
func IsInstallation(path string) bool {
	if validStructure(path) {
		return true
	}

	if !isDir(filepath.Join(path, "WTF")) {
		return false
	}
	for _, exe := range clientExecutables {
		if _, err := os.Stat(filepath.Join(path, exe)); err == nil {
			return true
		}
	}
	return false
}

// validStructure checks for WTF/Account with at least one account
// folder carrying a SavedVariables directory.
func validStructure(path string) bool {
	accountDir := filepath.Join(path, "WTF", "Account")
	entries, err := os.ReadDir(accountDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isDir(filepath.Join(accountDir, entry.Name(), "SavedVariables")) {
			return true
		}
	}
	return false
}

// Accounts lists the account folders of an installation that carry a
// SavedVariables directory, sorted by name.
func (s *Scanner) Accounts(inst *wow.Installation) ([]string, error) {
	entries, err := os.ReadDir(inst.AccountPath())
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrNoAccounts, "%s", inst.AccountPath())
	}

	var accounts []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isDir(filepath.Join(inst.AccountPath(), entry.Name(), "SavedVariables")) {
			accounts = append(accounts, entry.Name())
		}
	}
	if len(accounts) == 0 {
		return nil, errors.Wrapf(apperrors.ErrNoAccounts, "%s", inst.AccountPath())
	}

	sort.Strings(accounts)
	return accounts, nil
}

// AddonFiles groups the account's SavedVariables files by addon name.
// A .lua file and its .lua.bak sibling land under the same addon;
// client-internal files are excluded. Families of per-module files
// collapse into one addon (DBM-*, ElvUI*, Details*).
func (s *Scanner) AddonFiles(inst *wow.Installation, account string) (*wow.AddonFileMap, error) {
	dir := inst.SavedVariablesPath(account)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading SavedVariables at %s", dir)
	}

	files := wow.NewAddonFileMap()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".lua") && !strings.HasSuffix(name, ".lua.bak") {
			continue
		}
		if _, skip := nonAddonFiles[strings.ToLower(name)]; skip {
			continue
		}
		files.Add(AddonName(name), filepath.Join(dir, name))
	}

	s.logger.Debug("scanned addon files", "account", account, "addons", files.Len(), "files", files.TotalFiles())
	return files, nil
}

// AddonName derives the addon a SavedVariables file belongs to from
// its file name.
func AddonName(filename string) string {
	name := strings.TrimSuffix(filename, ".bak")
	name = strings.TrimSuffix(name, ".lua")

	switch {
	case strings.HasPrefix(name, "DBM-"):
		return "DeadlyBossMods"
	case strings.HasPrefix(name, "ElvUI"):
		return "ElvUI"
	case strings.HasPrefix(name, "Details"):
		return "Details"
	default:
		return name
	}
}

// clientBuild reads the client build from the installation's
// .build.info file: a pipe-delimited table whose header names a
// Version column. Returns "" when the file is absent or unparseable.
func clientBuild(installPath string) string {
	f, err := os.Open(filepath.Join(installPath, ".build.info"))
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	col := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")

		if col < 0 {
			for i, h := range fields {
				// Header cells look like "Version!STRING:0".
				if strings.HasPrefix(h, "Version") {
					col = i
					break
				}
			}
			if col < 0 {
				return ""
			}
			continue
		}

		if col < len(fields) {
			return fields[col]
		}
		return ""
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
