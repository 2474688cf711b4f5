package wow

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		path string
		want Version
	}{
		{"/games/World of Warcraft/_retail_", VersionRetail},
		{"/games/World of Warcraft/_classic_", VersionClassic},
		{"/games/wow-era/_classic_era_", VersionClassicEra},
		{"/games/wow-wrath/_classic_", VersionClassicWrath},
		{"/games/World of Warcraft/_ptr_", VersionPTR},
		{"/games/World of Warcraft/_beta_", VersionBeta},
		{"/games/WoW Classic", VersionClassic},
		{"/games/wow classic vanilla", VersionClassicEra},
		{"/games/wow classic wotlk", VersionClassicWrath},
		{"/games/wow-ptr", VersionPTR},
		{"/games/wow alpha", VersionBeta},
		{"/games/World of Warcraft", VersionRetail},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectVersion(tt.path); got != tt.want {
				t.Errorf("DetectVersion(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestInstallation_Paths(t *testing.T) {
	inst := &Installation{Path: "/games/wow/_retail_"}

	wantSV := filepath.Join("/games/wow/_retail_", "WTF", "Account", "MYACCOUNT", "SavedVariables")
	if got := inst.SavedVariablesPath("MYACCOUNT"); got != wantSV {
		t.Errorf("SavedVariablesPath() = %q, want %q", got, wantSV)
	}
}

func TestAddonFileMap_PreservesOrder(t *testing.T) {
	m := NewAddonFileMap()
	m.Add("Bartender4", "/sv/Bartender4.lua")
	m.Add("WeakAuras", "/sv/WeakAuras.lua", "/sv/WeakAuras.lua.bak")
	m.Add("Bartender4", "/sv/Bartender4.lua.bak")

	wantNames := []string{"Bartender4", "WeakAuras"}
	if !reflect.DeepEqual(m.Names(), wantNames) {
		t.Errorf("Names() = %v, want %v", m.Names(), wantNames)
	}

	wantFiles := []string{"/sv/Bartender4.lua", "/sv/Bartender4.lua.bak"}
	if !reflect.DeepEqual(m.Files("Bartender4"), wantFiles) {
		t.Errorf("Files(Bartender4) = %v, want %v", m.Files("Bartender4"), wantFiles)
	}

	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if m.TotalFiles() != 4 {
		t.Errorf("TotalFiles() = %d, want 4", m.TotalFiles())
	}

	if m.Files("Unknown") != nil {
		t.Error("Files() for unknown addon should be nil")
	}
}
