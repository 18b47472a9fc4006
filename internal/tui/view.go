package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	labelStyle    = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("4"))
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeAddTask, modeEditTask:
		return m.viewForm()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("twig"))
	b.WriteString(m.renderTabs())
	b.WriteString(dimStyle.Render(fmt.Sprintf("  completed:%s cancelled:%s  (? for help)",
		onOff(m.filters.ShowCompleted), onOff(m.filters.ShowCancelled))))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("No tasks. Press 'a' to add one.\n"))
	}

	for i, id := range m.visible {
		task := m.activeStore().GetTask(id)
		if task == nil {
			continue
		}
		line := m.renderTaskLine(task)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

// renderTabs shows the owner tab bar; single-owner models render no bar.
func (m Model) renderTabs() string {
	if len(m.owners) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("  ")
	for i, owner := range m.owners {
		label := " " + owner.Name + " "
		if i == m.tab {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
	}
	return b.String()
}

func (m Model) renderTaskLine(task *model.Task) string {
	style := model.StyleFor(task.Status)
	icon := lipgloss.NewStyle().Foreground(style.Color).Render(style.Icon)
	indent := strings.Repeat("  ", view.Depth(m.activeStore(), task))

	marker := "  "
	if len(m.activeStore().Children(task.ID)) > 0 {
		if m.expanded[task.ID] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	var extra strings.Builder
	if entry := task.ActiveTimeEntry(); entry != nil {
		// Live elapsed time, derived fresh on each redraw.
		elapsed := int64(time.Since(entry.Start).Seconds())
		fmt.Fprintf(&extra, " ⏱ %s", dateutil.FormatElapsedHHMMSS(elapsed))
	} else if task.TotalTimeSeconds > 0 {
		fmt.Fprintf(&extra, " [%s]", task.FormattedTotalTime())
	}
	for _, tag := range task.Tags {
		extra.WriteString(" #" + tag)
	}
	if task.AssignedTo != "" {
		extra.WriteString(" @" + task.AssignedTo)
	}

	return fmt.Sprintf("%s%s%s %s %s%s", indent, marker, icon, task.Title,
		dimStyle.Render("["+task.ShortID()+"]"), dimStyle.Render(extra.String()))
}

func (m Model) viewForm() string {
	var b strings.Builder
	if m.mode == modeAddTask {
		b.WriteString(titleStyle.Render("Add task"))
	} else {
		b.WriteString(titleStyle.Render("Edit task"))
	}
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab/↓ next field · shift+tab/↑ previous · ctrl+s save · esc cancel"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

func (m Model) viewHelp() string {
	help := `twig — interactive task view

  j/k, ↓/↑      move selection
  enter/space   expand or collapse subtasks
  ←/→           switch owner tab (My Tasks / reportees)
  s             start selected task
  c             complete selected task
  x             cancel selected task
  p             pause time tracking
  a             add task (under selection)
  e             edit selected task
  h             toggle completed tasks
  H             toggle cancelled tasks
  r             reload from disk
  q             quit

Press esc to close this help.`
	return titleStyle.Render("Help") + "\n\n" + help
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
