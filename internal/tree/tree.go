// Package tree projects the flat task store into a renderable forest.
//
// The forest is an arena: a flat task index plus a child-index map built
// once per render. Nodes are identifiers, not task copies, so rebuilding
// after a mutation is cheap.
package tree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

// Forest is the arena built from one store snapshot.
type Forest struct {
	Roots    []uuid.UUID
	children map[uuid.UUID][]uuid.UUID
	index    map[uuid.UUID]*model.Task
}

// Build constructs the arena from the store. Roots and child lists keep
// store insertion order.
func Build(s *storage.Store) *Forest {
	f := &Forest{
		children: make(map[uuid.UUID][]uuid.UUID),
		index:    make(map[uuid.UUID]*model.Task),
	}
	for _, t := range s.AllTasks() {
		f.index[t.ID] = t
		if t.ParentID == nil {
			f.Roots = append(f.Roots, t.ID)
		} else {
			f.children[*t.ParentID] = append(f.children[*t.ParentID], t.ID)
		}
	}
	return f
}

// Task returns the task for an arena node, or nil.
func (f *Forest) Task(id uuid.UUID) *model.Task {
	return f.index[id]
}

// Children returns the child IDs of a node in insertion order.
func (f *Forest) Children(id uuid.UUID) []uuid.UUID {
	return f.children[id]
}

// Render walks the forest depth-first and returns one line per task with
// box-drawing connectors: └─ for a last sibling, ├─ otherwise. Continuing
// ancestors contribute "│ " to the prefix, exhausted ones "  ".
func (f *Forest) Render() []string {
	return f.RenderRoots(nil)
}

// RenderRoots renders only the root trees accepted by keep; a nil keep
// renders all of them. Children of a kept root always render.
func (f *Forest) RenderRoots(keep func(*model.Task) bool) []string {
	roots := f.Roots
	if keep != nil {
		roots = nil
		for _, id := range f.Roots {
			if task := f.index[id]; task != nil && keep(task) {
				roots = append(roots, id)
			}
		}
	}

	var lines []string
	for i, root := range roots {
		f.renderNode(root, "", i == len(roots)-1, &lines)
	}
	return lines
}

func (f *Forest) renderNode(id uuid.UUID, prefix string, isLast bool, lines *[]string) {
	task := f.index[id]
	if task == nil {
		return
	}

	connector := "├─"
	if isLast {
		connector = "└─"
	}
	*lines = append(*lines, prefix+connector+" "+formatLine(task))

	childPrefix := prefix + "│ "
	if isLast {
		childPrefix = prefix + "  "
	}
	children := f.children[id]
	for i, child := range children {
		f.renderNode(child, childPrefix, i == len(children)-1, lines)
	}
}

// formatLine renders one task: icon, title, short ID, then tracked time,
// estimate and tags when present.
func formatLine(task *model.Task) string {
	var b strings.Builder
	b.WriteString(model.StyleFor(task.Status).Icon)
	b.WriteString(" ")
	b.WriteString(task.Title)
	fmt.Fprintf(&b, " [%s]", task.ShortID())

	if task.TotalTimeSeconds > 0 {
		fmt.Fprintf(&b, " [%s]", task.FormattedTotalTime())
	}
	if est := task.FormattedEstimate(); est != "" {
		fmt.Fprintf(&b, " (~%s)", est)
	}
	for _, tag := range task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}
