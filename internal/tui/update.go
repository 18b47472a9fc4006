package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twig-tracker/twig/internal/model"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			return m.updateNormal(msg)
		case modeHelp:
			switch msg.String() {
			case "esc", "q", "?":
				m.mode = modeNormal
			}
			return m, nil
		case modeAddTask, modeEditTask:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "enter", " ", "tab":
		m.toggleExpand()
	case "left":
		m.switchTab(-1)
	case "right":
		m.switchTab(1)
	case "s":
		m.mutateSelected(func(t *model.Task) { t.Start() }, "Started %s")
	case "c":
		m.mutateSelected(func(t *model.Task) { t.Complete() }, "Completed %s")
	case "x":
		m.mutateSelected(func(t *model.Task) { t.Cancel() }, "Cancelled %s")
	case "p":
		if task := m.selectedTask(); task != nil && task.HasActiveTimeEntry() {
			m.mutateSelected(func(t *model.Task) { t.Pause() }, "Paused %s")
		}
	case "h":
		m.filters.ShowCompleted = !m.filters.ShowCompleted
		m.rebuild()
	case "H":
		m.filters.ShowCancelled = !m.filters.ShowCancelled
		m.rebuild()
	case "r":
		if err := m.activeStore().Load(); err != nil {
			m.setStatus("reload failed: %v", err)
		} else {
			m.setStatus("reloaded")
		}
		m.rebuild()
	case "a":
		m.openForm(modeAddTask, nil)
	case "e":
		if task := m.selectedTask(); task != nil {
			m.openForm(modeEditTask, task)
		}
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

// mutateSelected applies fn to the selected task, persists, and rebuilds
// the projection.
func (m *Model) mutateSelected(fn func(*model.Task), statusFormat string) {
	task := m.selectedTask()
	if task == nil {
		return
	}
	fn(task)
	if err := m.activeStore().Save(); err != nil {
		m.setStatus("save failed: %v", err)
		return
	}
	m.setStatus(statusFormat, task.Title)
	m.rebuild()
}

func (m *Model) toggleExpand() {
	task := m.selectedTask()
	if task == nil || len(m.activeStore().Children(task.ID)) == 0 {
		return
	}
	if m.expanded[task.ID] {
		delete(m.expanded, task.ID)
	} else {
		m.expanded[task.ID] = true
	}
	m.rebuild()
}

func (m *Model) openForm(formMode mode, task *model.Task) {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.editingID = nil

	if formMode == modeEditTask && task != nil {
		id := task.ID
		m.editingID = &id
		m.inputs[fieldTitle].SetValue(task.Title)
		m.inputs[fieldDescription].SetValue(task.Description)
		m.inputs[fieldTags].SetValue(strings.Join(task.Tags, ", "))
		m.inputs[fieldEstimate].SetValue(task.FormattedEstimate())
		m.inputs[fieldAssignee].SetValue(task.AssignedTo)
	}

	m.field = fieldTitle
	m.inputs[m.field].Focus()
	m.mode = formMode
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.editingID = nil
		return m, nil
	case "ctrl+s":
		if m.mode == modeAddTask {
			m.saveNewTask()
		} else {
			m.saveEditedTask()
		}
		m.mode = modeNormal
		m.rebuild()
		return m, nil
	case "tab", "down":
		m.focusField(m.field + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusField(m.field - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func (m *Model) focusField(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= fieldCount {
		idx = fieldCount - 1
	}
	m.inputs[m.field].Blur()
	m.field = idx
	m.inputs[m.field].Focus()
}

func (m *Model) saveNewTask() {
	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	if title == "" {
		m.setStatus("title is required")
		return
	}

	task := model.NewTask(title)
	m.applyForm(task)

	// New tasks attach under the current selection.
	if parent := m.selectedTask(); parent != nil {
		id := parent.ID
		task.ParentID = &id
	}

	if err := m.activeStore().AddTask(task); err != nil {
		m.setStatus("save failed: %v", err)
		return
	}
	m.setStatus("Added %s", task.Title)
}

func (m *Model) saveEditedTask() {
	if m.editingID == nil {
		return
	}
	task := m.activeStore().GetTask(*m.editingID)
	m.editingID = nil
	if task == nil {
		return
	}

	task.Title = strings.TrimSpace(m.inputs[fieldTitle].Value())
	m.applyForm(task)

	if err := m.activeStore().Save(); err != nil {
		m.setStatus("save failed: %v", err)
		return
	}
	m.setStatus("Updated %s", task.Title)
}

// applyForm copies the non-title form fields onto the task.
func (m *Model) applyForm(task *model.Task) {
	task.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())

	tags := strings.TrimSpace(m.inputs[fieldTags].Value())
	task.Tags = []string{}
	if tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				task.AddTag(tag)
			}
		}
	}

	if est := strings.TrimSpace(m.inputs[fieldEstimate].Value()); est != "" {
		if err := task.SetEstimate(est); err != nil {
			m.setStatus("%v", err)
		}
	} else {
		task.EstimatedEffortHours = nil
	}

	task.AssignedTo = strings.TrimSpace(m.inputs[fieldAssignee].Value())

	if note := strings.TrimSpace(m.inputs[fieldNote].Value()); note != "" {
		task.AddNote(note)
	}
}
