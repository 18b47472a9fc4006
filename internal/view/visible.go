// Package view computes the flat, ordered projection of visible tasks
// that the interactive browser renders. The projection is rebuilt from the
// store on every trigger (filter change, expand/collapse, reload,
// mutation); nothing is updated incrementally.
package view

import (
	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

// Filters controls which tasks the projection includes.
type Filters struct {
	ShowCompleted bool
	ShowCancelled bool
	Tag           string
	Assignee      string
}

// Visible returns the ordered list of visible task IDs. Root tasks come
// first in store order; a task's children follow it, recursively, only
// when its ID is in the expanded set. Tasks completed or cancelled on the
// current local day are always shown regardless of the toggles, so the
// day's activity stays on screen.
func Visible(s *storage.Store, f Filters, expanded map[uuid.UUID]bool) []uuid.UUID {
	var visible []uuid.UUID
	for _, root := range s.RootTasks() {
		if !shouldShow(root, f) {
			continue
		}
		appendVisible(s, root, f, expanded, &visible)
	}
	return visible
}

func appendVisible(s *storage.Store, task *model.Task, f Filters, expanded map[uuid.UUID]bool, out *[]uuid.UUID) {
	*out = append(*out, task.ID)
	if !expanded[task.ID] {
		return
	}
	for _, child := range s.Children(task.ID) {
		if !shouldShow(child, f) {
			continue
		}
		appendVisible(s, child, f, expanded, out)
	}
}

func shouldShow(task *model.Task, f Filters) bool {
	switch task.Status {
	case model.StatusCompleted:
		if !f.ShowCompleted && !closedToday(task) {
			return false
		}
	case model.StatusCancelled:
		if !f.ShowCancelled && !closedToday(task) {
			return false
		}
	}
	if f.Tag != "" && !task.HasTag(f.Tag) {
		return false
	}
	if f.Assignee != "" && task.AssignedTo != f.Assignee {
		return false
	}
	return true
}

func closedToday(task *model.Task) bool {
	closed := task.ClosedAt()
	return closed != nil && dateutil.IsToday(*closed)
}

// Depth returns the indentation depth of a visible entry, computed by
// walking the ancestor chain in the store.
func Depth(s *storage.Store, task *model.Task) int {
	return s.Depth(task)
}
