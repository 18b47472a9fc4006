package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/model"
)

// Sentinel errors surfaced by store operations. Callers match with
// errors.Is.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrCycle        = errors.New("parent assignment would create a cycle")
)

// Store holds one owner's full task collection plus the file it persists
// to. Every mutating operation writes through to disk immediately.
type Store struct {
	tasks []*model.Task
	path  string
}

// NewStore creates an empty store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load replaces the in-memory collection with the persisted one. A missing
// or empty file loads as an empty collection.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.tasks = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		s.tasks = nil
		return nil
	}

	var tasks []*model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("corrupt JSON in %s: %w", s.path, err)
	}
	s.tasks = tasks
	return nil
}

// Save serializes the whole collection and replaces the file atomically
// (temp file + rename).
func (s *Store) Save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []*model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling tasks: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// AddTask appends a task and persists.
func (s *Store) AddTask(task *model.Task) error {
	s.tasks = append(s.tasks, task)
	return s.Save()
}

// UpdateTask replaces the stored task with the same ID and persists.
func (s *Store) UpdateTask(task *model.Task) error {
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return s.Save()
		}
	}
	return ErrTaskNotFound
}

// DeleteTask removes the task with the given ID and persists. Children are
// not cascaded; they keep their parent_id and become orphans.
func (s *Store) DeleteTask(id uuid.UUID) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.Save()
		}
	}
	return ErrTaskNotFound
}

// GetTask returns the task with the given ID, or nil.
func (s *Store) GetTask(id uuid.UUID) *model.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindByShortID returns the first task whose short ID matches, or nil.
// Short IDs are not guaranteed unique; first match wins.
func (s *Store) FindByShortID(short string) *model.Task {
	for _, t := range s.tasks {
		if t.ShortID() == short {
			return t
		}
	}
	return nil
}

// AllTasks returns the collection in insertion order.
func (s *Store) AllTasks() []*model.Task {
	return s.tasks
}

// RootTasks returns tasks with no parent, in insertion order.
func (s *Store) RootTasks() []*model.Task {
	var roots []*model.Task
	for _, t := range s.tasks {
		if t.ParentID == nil {
			roots = append(roots, t)
		}
	}
	return roots
}

// Children returns tasks whose parent is id, in insertion order.
func (s *Store) Children(id uuid.UUID) []*model.Task {
	var children []*model.Task
	for _, t := range s.tasks {
		if t.ParentID != nil && *t.ParentID == id {
			children = append(children, t)
		}
	}
	return children
}

// TaskHierarchy walks parent links upward from task and returns the chain
// of IDs root-first, ending with the task itself. A dangling parent
// reference stops the walk; the partial chain is returned without error.
func (s *Store) TaskHierarchy(task *model.Task) []uuid.UUID {
	chain := []uuid.UUID{task.ID}
	current := task.ParentID
	for current != nil {
		chain = append([]uuid.UUID{*current}, chain...)
		parent := s.GetTask(*current)
		if parent == nil {
			break
		}
		current = parent.ParentID
	}
	return chain
}

// Depth returns the number of ancestors of task, tolerating dangling
// references the same way TaskHierarchy does.
func (s *Store) Depth(task *model.Task) int {
	depth := 0
	current := task.ParentID
	for current != nil {
		depth++
		parent := s.GetTask(*current)
		if parent == nil {
			break
		}
		current = parent.ParentID
	}
	return depth
}

// SetParent points task at the given parent and persists. It fails with
// ErrTaskNotFound when the parent does not exist and with ErrCycle when
// task is already an ancestor of the parent. A nil parent detaches the
// task to the root level.
func (s *Store) SetParent(task *model.Task, parentID *uuid.UUID) error {
	if parentID != nil {
		parent := s.GetTask(*parentID)
		if parent == nil {
			return ErrTaskNotFound
		}
		for _, id := range s.TaskHierarchy(parent) {
			if id == task.ID {
				return ErrCycle
			}
		}
	}
	task.ParentID = parentID
	return s.Save()
}
