package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twig-tracker/twig/internal/model"
)

// pickerModel is a one-shot task selector used by lifecycle commands when
// no identifier is given on the command line.
type pickerModel struct {
	prompt   string
	tasks    []*model.Task
	cursor   int
	choice   *model.Task
	aborted  bool
	quitting bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.aborted = true
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.choice = m.tasks[m.cursor]
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt))
	b.WriteString("\n")
	for i, task := range m.tasks {
		style := model.StyleFor(task.Status)
		line := fmt.Sprintf("%s %s [%s]",
			lipgloss.NewStyle().Foreground(style.Color).Render(style.Icon),
			task.Title, task.ShortID())
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter select · esc abort"))
	return b.String()
}

// SelectTask prompts for one task out of tasks. It returns nil when the
// user aborts or the list is empty; no mutation happens in that case.
func SelectTask(tasks []*model.Task, prompt string) (*model.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(pickerModel{prompt: prompt, tasks: tasks}).Run()
	if err != nil {
		return nil, err
	}
	m := final.(pickerModel)
	if m.aborted {
		return nil, nil
	}
	return m.choice, nil
}
