package tree_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
	"github.com/twig-tracker/twig/internal/tree"
)

func buildStore(t *testing.T, tasks ...*model.Task) *storage.Store {
	t.Helper()
	s := storage.NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	for _, task := range tasks {
		if err := s.AddTask(task); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestBuildForest(t *testing.T) {
	a := model.NewTask("A")
	b := model.NewTask("B")
	c := model.NewTask("C")
	aID := a.ID
	b.ParentID = &aID
	c.ParentID = &aID

	f := tree.Build(buildStore(t, a, b, c))

	if len(f.Roots) != 1 || f.Roots[0] != a.ID {
		t.Fatalf("roots = %v, want [A]", f.Roots)
	}
	children := f.Children(a.ID)
	if len(children) != 2 || children[0] != b.ID || children[1] != c.ID {
		t.Fatalf("children = %v, want [B C] in insertion order", children)
	}
	if f.Task(b.ID) != b {
		t.Error("arena index does not resolve to the stored task")
	}
}

func TestRenderConnectors(t *testing.T) {
	a := model.NewTask("A")
	b := model.NewTask("B")
	c := model.NewTask("C")
	aID := a.ID
	b.ParentID = &aID
	c.ParentID = &aID

	lines := tree.Build(buildStore(t, a, b, c)).Render()
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}

	if !strings.HasPrefix(lines[0], "└─ ") || !strings.Contains(lines[0], "A") {
		t.Errorf("root line = %q, want last-sibling connector for A", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ├─ ") || !strings.Contains(lines[1], "B") {
		t.Errorf("line = %q, want ├─ connector for B", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  └─ ") || !strings.Contains(lines[2], "C") {
		t.Errorf("line = %q, want └─ connector for C", lines[2])
	}
}

func TestRenderContinuingAncestorBar(t *testing.T) {
	// Two roots; the first root's child must be prefixed with the
	// continuing-ancestor bar.
	a := model.NewTask("A")
	z := model.NewTask("Z")
	b := model.NewTask("B")
	aID := a.ID
	b.ParentID = &aID

	lines := tree.Build(buildStore(t, a, z, b)).Render()
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "├─ ") {
		t.Errorf("first root line = %q, want ├─", lines[0])
	}
	if !strings.HasPrefix(lines[1], "│ └─ ") {
		t.Errorf("child line = %q, want │ prefix", lines[1])
	}
	if !strings.HasPrefix(lines[2], "└─ ") {
		t.Errorf("last root line = %q, want └─", lines[2])
	}
}

func TestRenderRootsFiltersByPredicate(t *testing.T) {
	mine := model.NewTask("mine")
	theirs := model.NewTask("theirs")
	theirs.AssignedTo = "alice"
	child := model.NewTask("child")
	theirsID := theirs.ID
	child.ParentID = &theirsID

	f := tree.Build(buildStore(t, mine, theirs, child))

	lines := f.RenderRoots(func(task *model.Task) bool {
		return task.AssignedTo == "alice"
	})
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want alice's root and its child", lines)
	}
	// The surviving root renders as a last sibling, children included.
	if !strings.HasPrefix(lines[0], "└─ ") || !strings.Contains(lines[0], "theirs") {
		t.Errorf("root line = %q, want └─ connector for theirs", lines[0])
	}
	if !strings.Contains(lines[1], "child") {
		t.Errorf("child line = %q, want the subtree kept", lines[1])
	}

	if got := f.RenderRoots(nil); len(got) != 3 {
		t.Errorf("nil predicate rendered %d lines, want all 3", len(got))
	}
}

func TestRenderDecorations(t *testing.T) {
	a := model.NewTask("Build thing")
	a.TotalTimeSeconds = 3600
	a.AddTag("api")
	if err := a.SetEstimate("2d"); err != nil {
		t.Fatal(err)
	}

	lines := tree.Build(buildStore(t, a)).Render()
	line := lines[0]
	for _, want := range []string{a.ShortID(), "[1h 0m]", "(~2.0d)", "#api"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}
