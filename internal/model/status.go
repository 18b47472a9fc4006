package model

import "github.com/charmbracelet/lipgloss"

// StatusStyle is the single source of presentation for a status: every
// renderer (list, tree, show, interactive) consumes this mapping instead
// of switching on Status itself.
type StatusStyle struct {
	Icon  string
	Label string
	Color lipgloss.Color
}

var statusStyles = map[Status]StatusStyle{
	StatusNotStarted: {Icon: "○", Label: "Not Started", Color: lipgloss.Color("8")},
	StatusInProgress: {Icon: "◐", Label: "In Progress", Color: lipgloss.Color("3")},
	StatusCompleted:  {Icon: "●", Label: "Completed", Color: lipgloss.Color("2")},
	StatusCancelled:  {Icon: "✗", Label: "Cancelled", Color: lipgloss.Color("1")},
}

// StyleFor returns the presentation for a status. Unknown statuses render
// like NotStarted.
func StyleFor(s Status) StatusStyle {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return statusStyles[StatusNotStarted]
}

// ParseStatus maps a user-supplied filter token to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}
