package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Default()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "version zero",
			mutate:  func(c *Config) { c.Version = 0 },
			wantErr: ErrVersionTooLow,
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Conflict.Strategy = "merge" },
			wantErr: ErrInvalidStrategy,
		},
		{
			name:    "zero depth",
			mutate:  func(c *Config) { c.Scan.MaxDepth = 0 },
			wantErr: ErrInvalidDepth,
		},
		{
			name:    "destination with null byte",
			mutate:  func(c *Config) { c.Backup.Destination = "bad\x00path" },
			wantErr: ErrInvalidPath,
		},
		{
			name:    "scan path of dot",
			mutate:  func(c *Config) { c.Scan.Paths = []string{"."} },
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)

			errs := Validate(&cfg)
			if tt.wantErr == nil {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}

			found := false
			for _, err := range errs {
				if errors.Is(err, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error %v in %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("expected one error for nil config, got %v", errs)
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "conflict.strategy", Value: "merge", Err: ErrInvalidStrategy}

	want := "conflict.strategy: invalid conflict strategy: merge"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Error("expected FieldError to unwrap to ErrInvalidStrategy")
	}
}
