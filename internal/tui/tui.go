// Package tui is the interactive task browser. It is a strict
// request/response event loop: one input event, one state mutation, one
// redraw. Elapsed time for a running timer is derived from the entry's
// start at render time; there is no clock tick.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
	"github.com/twig-tracker/twig/internal/view"
)

type mode int

const (
	modeNormal mode = iota
	modeHelp
	modeAddTask
	modeEditTask
)

// Form field indices for the add/edit modal.
const (
	fieldTitle = iota
	fieldDescription
	fieldTags
	fieldEstimate
	fieldAssignee
	fieldNote
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Description", "Tags", "Estimate", "Assignee", "Note",
}

// Owner is one tab of the interactive view: a named task store. The first
// tab is always the primary user; the rest are reportees.
type Owner struct {
	Name  string
	Store *storage.Store
}

// Model is the bubbletea model for the interactive view.
type Model struct {
	owners []Owner
	tab    int

	filters  view.Filters
	expanded map[uuid.UUID]bool
	visible  []uuid.UUID
	selected int

	mode      mode
	inputs    [fieldCount]textinput.Model
	field     int
	editingID *uuid.UUID

	width  int
	height int
	status string
}

// New builds a single-owner model over an already loaded store.
func New(store *storage.Store) Model {
	return NewTabs([]Owner{{Name: "My Tasks", Store: store}})
}

// NewTabs builds the model over one tab per owner. The owner list must be
// non-empty; the first tab starts active.
func NewTabs(owners []Owner) Model {
	m := Model{
		owners:   owners,
		filters:  view.Filters{ShowCompleted: true, ShowCancelled: false},
		expanded: make(map[uuid.UUID]bool),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		m.inputs[i] = in
	}
	m.rebuild()
	return m
}

// Owners assembles the tab list: the primary store first, then one tab
// per configured reportee. Reportee stores load best-effort: a missing or
// broken file shows as an empty tab rather than failing the whole view.
func Owners(primary *storage.Store, paths *storage.Paths, cfg model.Config) []Owner {
	owners := []Owner{{Name: "My Tasks", Store: primary}}
	for _, name := range cfg.Reportees {
		store := storage.NewStore(paths.ReporteeTasksFile(name))
		if err := store.Load(); err != nil {
			store = storage.NewStore(paths.ReporteeTasksFile(name))
		}
		owners = append(owners, Owner{Name: name, Store: store})
	}
	return owners
}

// Run loads the primary store plus reportee stores and drives the
// interactive view until quit.
func Run() error {
	paths, err := storage.NewPaths()
	if err != nil {
		return err
	}
	store := storage.NewStore(paths.TasksFile())
	if err := store.Load(); err != nil {
		return err
	}
	cfg, err := storage.LoadConfig(paths.ConfigFile())
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(NewTabs(Owners(store, paths, cfg)), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// activeStore returns the store behind the current tab.
func (m Model) activeStore() *storage.Store {
	return m.owners[m.tab].Store
}

// switchTab moves delta tabs (wrapping) and reprojects that owner's tasks.
func (m *Model) switchTab(delta int) {
	if len(m.owners) < 2 {
		return
	}
	m.tab = (m.tab + delta + len(m.owners)) % len(m.owners)
	m.selected = 0
	m.rebuild()
}

// rebuild recomputes the visibility projection and clamps the selection.
func (m *Model) rebuild() {
	m.visible = view.Visible(m.activeStore(), m.filters, m.expanded)
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) selectedTask() *model.Task {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return m.activeStore().GetTask(m.visible[m.selected])
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}
