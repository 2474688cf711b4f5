// Package cli holds resolution helpers shared by the wowvault commands:
// turning flags and configuration into a concrete installation, account,
// and addon selection.
package cli

import (
	"strings"

	"github.com/cockroachdb/errors"

	apperrors "github.com/tdalbo/wowvault/internal/errors"
	"github.com/tdalbo/wowvault/internal/scanner"
	"github.com/tdalbo/wowvault/internal/wow"
)

// ResolveInstallation turns an optional --path flag into an
// installation. With a path it is registered directly; without one the
// scan paths are searched and a single result is required.
func ResolveInstallation(sc *scanner.Scanner, pathFlag string) (*wow.Installation, error) {
	if pathFlag != "" {
		inst, err := sc.Register(pathFlag)
		if err != nil {
			return nil, apperrors.NewUserError(err,
				"Point --path at a WoW installation directory (the one containing WTF/)")
		}
		return inst, nil
	}

	found := sc.Scan()
	switch len(found) {
	case 0:
		return nil, apperrors.NewUserError(apperrors.ErrNoInstallation,
			"Use --path to register an installation manually, or add scan paths to the config")
	case 1:
		return &found[0], nil
	default:
		names := make([]string, len(found))
		for i, inst := range found {
			names[i] = inst.Path
		}
		err := errors.Newf("multiple installations found: %s", strings.Join(names, ", "))
		return nil, apperrors.NewUserError(err, "Use --path to pick one")
	}
}

// ResolveAccount turns an optional --account flag into an account name.
// Without a flag, a single account is required.
func ResolveAccount(sc *scanner.Scanner, inst *wow.Installation, accountFlag string) (string, error) {
	accounts, err := sc.Accounts(inst)
	if err != nil {
		return "", apperrors.NewUserError(err,
			"The installation has no account folders with SavedVariables")
	}

	if accountFlag != "" {
		for _, a := range accounts {
			if a == accountFlag {
				return a, nil
			}
		}
		err := errors.Newf("account %q not found (have: %s)", accountFlag, strings.Join(accounts, ", "))
		return "", apperrors.NewUserError(err, "Use --account with one of the listed names")
	}

	if len(accounts) == 1 {
		return accounts[0], nil
	}
	err = errors.Newf("multiple accounts found: %s", strings.Join(accounts, ", "))
	return "", apperrors.NewUserError(err, "Use --account to pick one")
}

// FilterAddons narrows a scanned file map to the named addons,
// preserving scan order. Unknown names fail rather than silently
// backing up nothing.
func FilterAddons(files *wow.AddonFileMap, selected []string) (*wow.AddonFileMap, error) {
	if len(selected) == 0 {
		return files, nil
	}

	want := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		want[name] = struct{}{}
	}

	filtered := wow.NewAddonFileMap()
	for _, name := range files.Names() {
		if _, ok := want[name]; ok {
			filtered.Add(name, files.Files(name)...)
			delete(want, name)
		}
	}

	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for name := range want {
			missing = append(missing, name)
		}
		err := errors.Newf("unknown addon(s): %s", strings.Join(missing, ", "))
		return nil, apperrors.NewUserError(err, "Run 'wowvault addons' to list scanned addons")
	}
	return filtered, nil
}
