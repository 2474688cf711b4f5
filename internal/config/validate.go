package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/tdalbo/wowvault/internal/backup"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidStrategy indicates an unrecognized conflict strategy.
	ErrInvalidStrategy = errors.New("invalid conflict strategy")

	// ErrInvalidDepth indicates scan.max_depth is not positive.
	ErrInvalidDepth = errors.New("scan max_depth must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if _, err := backup.ParsePolicy(cfg.Conflict.Strategy); err != nil {
		errs = append(errs, &FieldError{
			Field: "conflict.strategy",
			Value: cfg.Conflict.Strategy,
			Err:   ErrInvalidStrategy,
		})
	}

	if cfg.Scan.MaxDepth < 1 {
		errs = append(errs, ErrInvalidDepth)
	}

	if err := validatePath(cfg.Backup.Destination); err != nil {
		errs = append(errs, &FieldError{
			Field: "backup.destination",
			Value: cfg.Backup.Destination,
			Err:   err,
		})
	}

	for _, p := range cfg.Scan.Paths {
		if err := validatePath(p); err != nil {
			errs = append(errs, &FieldError{
				Field: "scan.paths",
				Value: p,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents a validation error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
