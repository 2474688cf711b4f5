package wow

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// ErrProfileNotFound indicates the named profile does not exist in the store.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists backup profiles as TOML documents, one file per
// profile, under a root directory.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a store rooted at dir.
func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: dir}
}

// Save writes the profile to disk, stamping CreatedAt if unset.
func (s *ProfileStore) Save(p *Profile) error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "creating profile directory")
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshaling profile")
	}

	if err := os.WriteFile(s.path(p.Name), data, 0o600); err != nil {
		return errors.Wrapf(err, "writing profile %s", p.Name)
	}
	return nil
}

// Load reads a profile by name.
func (s *ProfileStore) Load(name string) (*Profile, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrProfileNotFound, "profile %s", name)
		}
		return nil, errors.Wrapf(err, "reading profile %s", name)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing profile %s", name)
	}
	return &p, nil
}

// List returns the names of all saved profiles, sorted.
func (s *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading profile directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a profile by name.
func (s *ProfileStore) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrProfileNotFound, "profile %s", name)
		}
		return errors.Wrapf(err, "deleting profile %s", name)
	}
	return nil
}

func (s *ProfileStore) path(name string) string {
	return filepath.Join(s.dir, name+".toml")
}
