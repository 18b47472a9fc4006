package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// TimeEntry is one tracked interval. End and DurationSeconds stay nil
// while the entry is still running.
type TimeEntry struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end"`
	DurationSeconds *int64     `json:"duration_seconds"`
}

// Active reports whether the entry is still open.
func (e *TimeEntry) Active() bool {
	return e.End == nil
}

// close ends the entry at t and returns the whole-second duration.
func (e *TimeEntry) close(t time.Time) int64 {
	dur := int64(t.Sub(e.Start).Seconds())
	e.End = &t
	e.DurationSeconds = &dur
	return dur
}

// Task is a single tracked task. TotalTimeSeconds is the authoritative
// accumulator of closed time entries; it is never recomputed on read.
type Task struct {
	ID                   uuid.UUID   `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Status               Status      `json:"status"`
	ParentID             *uuid.UUID  `json:"parent_id"`
	Tags                 []string    `json:"tags"`
	AssignedTo           string      `json:"assigned_to,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	StartedAt            *time.Time  `json:"started_at"`
	CompletedAt          *time.Time  `json:"completed_at"`
	CancelledAt          *time.Time  `json:"cancelled_at"`
	EstimatedEffortHours *float64    `json:"estimated_effort_hours"`
	ETA                  *time.Time  `json:"eta"`
	TimeEntries          []TimeEntry `json:"time_entries"`
	TotalTimeSeconds     int64       `json:"total_time_seconds"`
	Notes                string      `json:"notes"`
}

// NewTask creates a NotStarted task with a fresh ID.
func NewTask(title string) *Task {
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Status:      StatusNotStarted,
		Tags:        []string{},
		CreatedAt:   time.Now().UTC(),
		TimeEntries: []TimeEntry{},
	}
}

// ShortID returns the first 8 hex characters of the task ID.
func (t *Task) ShortID() string {
	return t.ID.String()[:8]
}

// Start moves the task to InProgress and opens a time entry. StartedAt is
// recorded only on the first start. If an entry is already open, no second
// one is opened; at most one entry may be open at a time.
func (t *Task) Start() {
	now := time.Now().UTC()
	if t.Status == StatusNotStarted {
		t.StartedAt = &now
	}
	t.Status = StatusInProgress
	if !t.HasActiveTimeEntry() {
		t.TimeEntries = append(t.TimeEntries, TimeEntry{Start: now})
	}
}

// Complete marks the task Completed and closes any open time entry.
func (t *Task) Complete() {
	now := time.Now().UTC()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.endActiveTimeEntry(now)
}

// Cancel marks the task Cancelled and closes any open time entry.
func (t *Task) Cancel() {
	now := time.Now().UTC()
	t.Status = StatusCancelled
	t.CancelledAt = &now
	t.endActiveTimeEntry(now)
}

// Pause closes the open time entry without changing status. No-op when
// nothing is running.
func (t *Task) Pause() {
	t.endActiveTimeEntry(time.Now().UTC())
}

func (t *Task) endActiveTimeEntry(now time.Time) {
	for i := range t.TimeEntries {
		if t.TimeEntries[i].Active() {
			t.TotalTimeSeconds += t.TimeEntries[i].close(now)
			return
		}
	}
}

// HasActiveTimeEntry reports whether a time entry is currently open.
func (t *Task) HasActiveTimeEntry() bool {
	for i := range t.TimeEntries {
		if t.TimeEntries[i].Active() {
			return true
		}
	}
	return false
}

// ActiveTimeEntry returns the open entry, or nil.
func (t *Task) ActiveTimeEntry() *TimeEntry {
	for i := range t.TimeEntries {
		if t.TimeEntries[i].Active() {
			return &t.TimeEntries[i]
		}
	}
	return nil
}

// SetEstimate parses an effort string like "2d" and stores it as hours.
func (t *Task) SetEstimate(spec string) error {
	effort, err := ParseEffort(spec)
	if err != nil {
		return err
	}
	hours := effort.Hours()
	t.EstimatedEffortHours = &hours
	return nil
}

// FormattedEstimate renders the stored estimate back to a unit string,
// or "" when no estimate is set.
func (t *Task) FormattedEstimate() string {
	if t.EstimatedEffortHours == nil {
		return ""
	}
	return FormatHours(*t.EstimatedEffortHours)
}

// FormattedTotalTime renders the accumulated time as a workday breakdown.
func (t *Task) FormattedTotalTime() string {
	return FormatWorkSeconds(t.TotalTimeSeconds)
}

// AddTag appends tag unless already present. Reports whether it was added.
func (t *Task) AddTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return false
		}
	}
	t.Tags = append(t.Tags, tag)
	return true
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// AddNote appends text to the task notes, newline-separated.
func (t *Task) AddNote(text string) {
	if t.Notes == "" {
		t.Notes = text
		return
	}
	t.Notes += "\n" + text
}

// Open reports whether the task is neither completed nor cancelled.
func (t *Task) Open() bool {
	return t.Status != StatusCompleted && t.Status != StatusCancelled
}

// ClosedAt returns the completion or cancellation timestamp, or nil for
// open tasks.
func (t *Task) ClosedAt() *time.Time {
	switch t.Status {
	case StatusCompleted:
		return t.CompletedAt
	case StatusCancelled:
		return t.CancelledAt
	}
	return nil
}
