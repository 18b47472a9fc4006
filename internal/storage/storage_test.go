package storage_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	if err := s.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(s.AllTasks()) != 0 {
		t.Errorf("tasks = %d, want 0", len(s.AllTasks()))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := storage.NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load on empty file: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := storage.NewStore(path)
	if err := s.Load(); err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := storage.NewStore(path)

	task := model.NewTask("Round trip")
	task.Description = "desc"
	task.AddTag("api")
	task.AddNote("a note")
	if err := task.SetEstimate("1w"); err != nil {
		t.Fatal(err)
	}
	task.Start()
	task.Pause()

	child := model.NewTask("Child")
	parentID := task.ID
	child.ParentID = &parentID

	if err := s.AddTask(task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := s.AddTask(child); err != nil {
		t.Fatalf("AddTask child: %v", err)
	}

	loaded := storage.NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.AllTasks()) != 2 {
		t.Fatalf("tasks = %d, want 2", len(loaded.AllTasks()))
	}

	// Field-for-field comparison via the serialized form.
	want, err := json.Marshal(s.AllTasks())
	if err != nil {
		t.Fatal(err)
	}
	got, err := json.Marshal(loaded.AllTasks())
	if err != nil {
		t.Fatal(err)
	}
	if string(want) != string(got) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestNotesDefaultsToEmpty(t *testing.T) {
	// Older files have no notes field; it must read as "".
	path := filepath.Join(t.TempDir(), "tasks.json")
	legacy := `[{
	  "id": "3f2b8c1d-9a4e-4f6b-8c2d-1e5f7a9b0c3d",
	  "title": "legacy",
	  "description": "",
	  "status": "not_started",
	  "parent_id": null,
	  "tags": [],
	  "created_at": "2026-01-02T10:00:00Z",
	  "started_at": null,
	  "completed_at": null,
	  "cancelled_at": null,
	  "estimated_effort_hours": null,
	  "eta": null,
	  "time_entries": [],
	  "total_time_seconds": 0
	}]`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	s := storage.NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if got := s.AllTasks()[0].Notes; got != "" {
		t.Errorf("Notes = %q, want empty", got)
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task := model.NewTask("before")
	if err := s.AddTask(task); err != nil {
		t.Fatal(err)
	}

	task.Title = "after"
	if err := s.UpdateTask(task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if got := s.GetTask(task.ID).Title; got != "after" {
		t.Errorf("title = %q, want %q", got, "after")
	}

	missing := model.NewTask("ghost")
	if err := s.UpdateTask(missing); !errors.Is(err, storage.ErrTaskNotFound) {
		t.Errorf("UpdateTask on missing task = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteOrphansChildren(t *testing.T) {
	s := newTestStore(t)
	parent := model.NewTask("parent")
	child := model.NewTask("child")
	parentID := parent.ID
	child.ParentID = &parentID

	if err := s.AddTask(parent); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTask(child); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteTask(parent.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	got := s.GetTask(child.ID)
	if got == nil {
		t.Fatal("child no longer retrievable")
	}
	if got.ParentID == nil || *got.ParentID != parentID {
		t.Error("child parent_id changed on parent deletion")
	}
	for _, root := range s.RootTasks() {
		if root.ID == child.ID {
			t.Error("orphaned child listed as root task")
		}
	}
}

func TestRootsAndChildrenOrder(t *testing.T) {
	s := newTestStore(t)
	a := model.NewTask("A")
	b := model.NewTask("B")
	c := model.NewTask("C")
	aID := a.ID
	b.ParentID = &aID
	c.ParentID = &aID

	for _, task := range []*model.Task{a, b, c} {
		if err := s.AddTask(task); err != nil {
			t.Fatal(err)
		}
	}

	roots := s.RootTasks()
	if len(roots) != 1 || roots[0].ID != a.ID {
		t.Fatalf("roots = %v, want just A", roots)
	}

	children := s.Children(a.ID)
	if len(children) != 2 || children[0].ID != b.ID || children[1].ID != c.ID {
		t.Fatalf("children not in insertion order")
	}
}

func TestTaskHierarchy(t *testing.T) {
	s := newTestStore(t)
	root := model.NewTask("root")
	mid := model.NewTask("mid")
	leaf := model.NewTask("leaf")
	rootID, midID := root.ID, mid.ID
	mid.ParentID = &rootID
	leaf.ParentID = &midID

	for _, task := range []*model.Task{root, mid, leaf} {
		if err := s.AddTask(task); err != nil {
			t.Fatal(err)
		}
	}

	chain := s.TaskHierarchy(leaf)
	want := []uuid.UUID{root.ID, mid.ID, leaf.ID}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d", len(chain), len(want))
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("chain[%d] = %v, want %v", i, chain[i], want[i])
		}
	}

	if got := s.Depth(leaf); got != 2 {
		t.Errorf("Depth(leaf) = %d, want 2", got)
	}
}

func TestTaskHierarchyDanglingParent(t *testing.T) {
	s := newTestStore(t)
	orphan := model.NewTask("orphan")
	ghost := uuid.New()
	orphan.ParentID = &ghost
	if err := s.AddTask(orphan); err != nil {
		t.Fatal(err)
	}

	// Walk stops at the dangling reference; partial chain, no error.
	chain := s.TaskHierarchy(orphan)
	if len(chain) != 2 || chain[0] != ghost || chain[1] != orphan.ID {
		t.Errorf("chain = %v, want [ghost, orphan]", chain)
	}
}

func TestResolveTask(t *testing.T) {
	s := newTestStore(t)
	task := model.NewTask("resolve me")
	if err := s.AddTask(task); err != nil {
		t.Fatal(err)
	}

	byShort, err := s.ResolveTask(task.ShortID())
	if err != nil {
		t.Fatalf("resolve by short ID: %v", err)
	}
	if byShort.ID != task.ID {
		t.Error("short ID resolved to wrong task")
	}

	byFull, err := s.ResolveTask(task.ID.String())
	if err != nil {
		t.Fatalf("resolve by full ID: %v", err)
	}
	if byFull.ID != task.ID {
		t.Error("full ID resolved to wrong task")
	}

	if _, err := s.ResolveTask("deadbeef"); !errors.Is(err, storage.ErrTaskNotFound) {
		t.Errorf("unknown short ID = %v, want ErrTaskNotFound", err)
	}
	if _, err := s.ResolveTask("not-a-uuid-at-all"); err == nil {
		t.Error("malformed full ID accepted")
	}
}

func TestSetParentCycleRejected(t *testing.T) {
	s := newTestStore(t)
	a := model.NewTask("A")
	b := model.NewTask("B")
	aID := a.ID
	b.ParentID = &aID
	for _, task := range []*model.Task{a, b} {
		if err := s.AddTask(task); err != nil {
			t.Fatal(err)
		}
	}

	bID := b.ID
	if err := s.SetParent(a, &bID); !errors.Is(err, storage.ErrCycle) {
		t.Errorf("SetParent(A, B) = %v, want ErrCycle", err)
	}
	if err := s.SetParent(a, &aID); !errors.Is(err, storage.ErrCycle) {
		t.Errorf("SetParent(A, A) = %v, want ErrCycle", err)
	}

	ghost := uuid.New()
	if err := s.SetParent(a, &ghost); !errors.Is(err, storage.ErrTaskNotFound) {
		t.Errorf("SetParent to missing parent = %v, want ErrTaskNotFound", err)
	}

	if err := s.SetParent(b, nil); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if b.ParentID != nil {
		t.Error("detach left parent_id set")
	}
}
