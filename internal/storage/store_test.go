package storage

import (
	"path/filepath"
	"testing"

	"github.com/rbody2d/engine/internal/engine"
	"github.com/rbody2d/engine/internal/rigidbody"
)

func recordFreeFall(t *testing.T, ticks int) []Frame {
	t.Helper()
	body, err := rigidbody.NewRectangleBody("A", 1, 1, 1, 0, 100, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.New([]rigidbody.Body{body}, []string{"a_A = -9.8*hatj"}, 1.0/60)
	if err != nil {
		t.Fatal(err)
	}
	frames := make([]Frame, 0, ticks)
	for i := 0; i < ticks; i++ {
		if _, err := e.Tick(); err != nil {
			t.Fatal(err)
		}
		frames = append(frames, Frame{Time: float64(i) / 60, States: e.State()})
	}
	return frames
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "runs"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	frames := recordFreeFall(t, 30)
	runID, err := store.Save("freefall", 1.0/60, frames)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Ticks != 30 || len(meta.Bodies) != 1 || meta.Bodies[0] != "A" {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	times, rows, err := store.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 30 || len(rows) != 30 {
		t.Fatalf("expected 30 rows, got %d times / %d rows", len(times), len(rows))
	}
	if len(rows[0]) != 3 {
		t.Errorf("expected 3 columns per body, got %d", len(rows[0]))
	}
}

func TestListReturnsSavedRuns(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "runs"))
	store.Init()

	frames := recordFreeFall(t, 5)
	if _, err := store.Save("freefall", 1.0/60, frames); err != nil {
		t.Fatal(err)
	}
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListEmptyDirReturnsEmptySlice(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nonexistent"))
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
