package scenario

import (
	"path/filepath"
	"testing"
)

func TestDefaultScene(t *testing.T) {
	sc := DefaultScene()
	if len(sc.Bodies) == 0 {
		t.Fatal("expected at least one body")
	}
	if sc.Dt <= 0 {
		t.Error("dt should be positive")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	sc := DefaultScene()
	sc.Bodies = append(sc.Bodies, BodyConfig{Name: "B", Mass: 2, Width: 1, Height: 1, X: 5})
	sc.Equations = []string{"a_A = -9.8*hatj"}

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Save(path, sc); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(loaded.Bodies))
	}
	if loaded.Bodies[1].Name != "B" || loaded.Bodies[1].X != 5 {
		t.Errorf("unexpected second body: %+v", loaded.Bodies[1])
	}
	if len(loaded.Equations) != 1 {
		t.Errorf("expected 1 equation, got %d", len(loaded.Equations))
	}
}

func TestBuildConstructsRunnableEngine(t *testing.T) {
	sc := GetPreset("freefall", "default")
	if sc == nil {
		t.Fatal("expected freefall/default preset")
	}
	e, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Tick(); err != nil {
		t.Fatal(err)
	}
}

func TestGetPresetUnknownReturnsNil(t *testing.T) {
	if GetPreset("freefall", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("elastic_bump")
	if len(names) != 2 {
		t.Errorf("expected 2 elastic_bump presets, got %d", len(names))
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for family, variants := range Presets {
		for name, sc := range variants {
			if _, err := sc.Build(); err != nil {
				t.Errorf("preset %s/%s failed to build: %v", family, name, err)
			}
		}
	}
}
