package backup

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/tdalbo/wowvault/internal/logging"
	"github.com/tdalbo/wowvault/internal/wow"
)

// BackupDirName is the subdirectory of the destination that holds all
// backups.
const BackupDirName = "Backup"

// timestampLayout formats the optional per-backup folder suffix.
const timestampLayout = "20060102_150405"

// freeSpaceFunc reports the free bytes available at a path.
type freeSpaceFunc func(path string) (uint64, error)

// Manager orchestrates backup runs: session tracking, precondition
// checks, the copy loop, post-copy validation, and manifest writing.
type Manager struct {
	destination     string
	timestampFolder bool
	validate        bool
	writeMeta       bool

	resolver      *ConflictResolver
	policy        Policy
	suffix        string
	decide        DecisionFunc
	sessions      *SessionRegistry
	copyChunkSize int
	hashChunkSize int
	freeSpace     freeSpaceFunc
	logger        *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithConflictPolicy sets the destination-collision policy. The
// default is PolicyOverwrite.
func WithConflictPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithBackupSuffix sets the suffix used when existing destination
// files are copied aside under PolicyBackup.
func WithBackupSuffix(suffix string) Option {
	return func(m *Manager) { m.suffix = suffix }
}

// WithDecisionFunc wires an interactive decision source for
// PolicyPrompt.
func WithDecisionFunc(f DecisionFunc) Option {
	return func(m *Manager) { m.decide = f }
}

// WithSessionRegistry shares a registry across managers so concurrent
// runs for the same profile are rejected process-wide.
func WithSessionRegistry(r *SessionRegistry) Option {
	return func(m *Manager) { m.sessions = r }
}

// WithTimestampFolder appends a timestamp to each backup directory
// name so repeated runs never collide.
func WithTimestampFolder(enabled bool) Option {
	return func(m *Manager) { m.timestampFolder = enabled }
}

// WithValidation toggles post-copy integrity validation.
func WithValidation(enabled bool) Option {
	return func(m *Manager) { m.validate = enabled }
}

// WithMetadata toggles writing the backup manifest.
func WithMetadata(enabled bool) Option {
	return func(m *Manager) { m.writeMeta = enabled }
}

// WithCopyChunkSize overrides the copy buffer size.
func WithCopyChunkSize(n int) Option {
	return func(m *Manager) { m.copyChunkSize = n }
}

// WithHashChunkSize overrides the fingerprinting buffer size.
func WithHashChunkSize(n int) Option {
	return func(m *Manager) { m.hashChunkSize = n }
}

// WithFreeSpace overrides how available destination space is measured.
func WithFreeSpace(f freeSpaceFunc) Option {
	return func(m *Manager) { m.freeSpace = f }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager writing backups under destination.
func NewManager(destination string, opts ...Option) *Manager {
	m := &Manager{
		destination:   destination,
		validate:      true,
		writeMeta:     true,
		policy:        PolicyOverwrite,
		suffix:        DefaultBackupSuffix,
		sessions:      NewSessionRegistry(),
		copyChunkSize: DefaultCopyChunkSize,
		hashChunkSize: DefaultHashChunkSize,
		freeSpace:     freeSpaceAt,
		logger:        logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resolver = NewConflictResolver(m.policy, m.suffix, m.decide)
	return m
}

// BackupRoot returns the directory that holds all backups at the
// manager's destination.
func (m *Manager) BackupRoot() string {
	return filepath.Join(m.destination, BackupDirName)
}

// backupDir derives the directory for one run from the profile name,
// with an optional timestamp suffix.
func (m *Manager) backupDir(profile string, now time.Time) string {
	name := profile
	if m.timestampFolder {
		name = profile + "_" + now.Format(timestampLayout)
	}
	return filepath.Join(m.BackupRoot(), name)
}

// CreateBackup runs one backup for the profile, copying the files in
// addonFiles into a fresh backup directory. It returns a Result that
// accounts for every submitted file, plus a non-nil error only when
// the run could not start at all (active session, insufficient space,
// or an unwritable destination).
//
// Cancelling ctx stops the copy loop; files not yet reached are
// recorded as skipped and the run still finishes its post-copy phases
// over what was copied.
func (m *Manager) CreateBackup(ctx context.Context, profile *wow.Profile, addonFiles *wow.AddonFileMap) (*Result, error) {
	if err := m.sessions.Acquire(profile.Name); err != nil {
		return nil, err
	}
	defer m.sessions.Release(profile.Name)

	res := newResult()
	dir := m.backupDir(profile.Name, res.StartTime)
	res.BackupDir = dir

	log := m.logger.With("profile", profile.Name, "dir", dir)
	log.Info("starting backup", "addons", addonFiles.Len(), "files", addonFiles.TotalFiles())

	if err := m.checkRequirements(dir, addonFiles); err != nil {
		return nil, err
	}

	m.copyAll(ctx, log, res, dir, addonFiles)

	for _, phase := range m.phases(profile, dir, addonFiles) {
		if err := phase.run(res); err != nil {
			log.Error("backup phase failed", "phase", phase.name, logging.ErrAttr(err))
			res.addFailed("backup_operation", err.Error())
		}
	}

	res.finalize()
	log.Info("backup finished",
		"success", res.Success,
		"copied", len(res.Copied),
		"skipped", len(res.Skipped),
		"failed", len(res.Failed),
		"size", res.TotalSize,
		"duration", res.Duration())
	return res, nil
}

// checkRequirements verifies the destination is creatable and has room
// for every existing source file before anything is copied.
func (m *Manager) checkRequirements(dir string, addonFiles *wow.AddonFileMap) error {
	var required uint64
	for _, addon := range addonFiles.Names() {
		for _, src := range addonFiles.Files(addon) {
			if info, err := os.Stat(src); err == nil {
				required += uint64(info.Size())
			}
		}
	}

	available, err := m.freeSpace(dir)
	if err != nil {
		return errors.Wrap(err, "checking destination free space")
	}
	if required > available {
		return &InsufficientSpaceError{Required: required, Available: available, Path: dir}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &PermissionError{Path: dir, Op: "create directory", Err: err}
		}
		return errors.Wrap(err, "creating backup directory")
	}
	return nil
}

// copyAll runs the copy loop over every addon and file in input order,
// recording each outcome in res.
func (m *Manager) copyAll(ctx context.Context, log *slog.Logger, res *Result, dir string, addonFiles *wow.AddonFileMap) {
	for _, addon := range addonFiles.Names() {
		files := addonFiles.Files(addon)
	fileLoop:
		for i, src := range files {
			if ctx.Err() != nil {
				res.addSkipped(src)
				continue
			}

			if _, err := os.Stat(src); err != nil {
				res.addFailed(src, "source file not found")
				continue
			}

			dst := destPath(dir, addon, src)

			if fileExists(dst) {
				decision, err := m.resolver.Resolve(src, dst)
				if err != nil {
					res.addFailed(src, err.Error())
					continue
				}
				switch decision {
				case DecisionSkip:
					log.Debug("skipping existing file", "dest", dst)
					res.addSkipped(src)
					continue
				case DecisionCancel:
					log.Debug("cancelling remaining files", "addon", addon)
					for _, rest := range files[i:] {
						res.addSkipped(rest)
					}
					break fileLoop
				case DecisionBackup:
					if err := m.resolver.backupAside(dst, m.copyChunkSize); err != nil {
						res.addFailed(src, err.Error())
						continue
					}
				}
			}

			n, err := copyFile(src, dst, m.copyChunkSize)
			if err != nil {
				log.Debug("copy failed", "source", src, logging.ErrAttr(err))
				res.addFailed(src, err.Error())
				continue
			}

			res.addCopied(src, n)
		}
	}
}

// phase is one post-copy step. Phases run in order regardless of
// earlier phase failures; each failure folds into the result.
type phase struct {
	name string
	run  func(*Result) error
}

func (m *Manager) phases(profile *wow.Profile, dir string, addonFiles *wow.AddonFileMap) []phase {
	var phases []phase

	if m.validate {
		phases = append(phases, phase{name: "validate", run: func(res *Result) error {
			for _, v := range validateBackup(dir, addonFiles, m.hashChunkSize) {
				res.addValidationError(v)
			}
			return nil
		}})
	}

	if m.writeMeta {
		phases = append(phases, phase{name: "metadata", run: func(res *Result) error {
			return writeManifest(dir, buildManifest(profile, addonFiles, res))
		}})
	}

	return phases
}

// buildManifest assembles the backup manifest from the profile and the
// full selection. The manifest describes what the backup is supposed
// to hold, so every addon and file of the selection is listed, whether
// the copy phase wrote it this run or an earlier one did. TotalSize
// stays the byte count this run actually copied.
func buildManifest(profile *wow.Profile, addonFiles *wow.AddonFileMap, res *Result) *Manifest {
	m := &Manifest{
		ProfileName: profile.Name,
		CreatedAt:   nowRFC3339(),
		Addons:      make(map[string]AddonManifest, addonFiles.Len()),
		TotalFiles:  addonFiles.TotalFiles(),
		TotalSize:   res.TotalSize,
	}
	if profile.AccountName != "" {
		m.AccountName = &profile.AccountName
	}
	if profile.Installation != nil {
		m.WowInstallation = &profile.Installation.Path
		version := string(profile.Installation.Version)
		m.WowVersion = &version
	}
	for _, addon := range addonFiles.Names() {
		files := addonFiles.Files(addon)
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = filepath.Base(f)
		}
		m.Addons[addon] = AddonManifest{Files: names, Count: len(names)}
	}
	return m
}
