// Package config loads and validates wowvault's configuration.
//
// Configuration is read from config.yaml in the current directory or
// the XDG config home, with WOWVAULT_* environment variables taking
// precedence. Missing files fall back to built-in defaults.
package config
