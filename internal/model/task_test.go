package model_test

import (
	"testing"

	"github.com/twig-tracker/twig/internal/model"
)

func TestParseEffort(t *testing.T) {
	tests := []struct {
		input string
		hours float64
	}{
		{"1h", 1.0},
		{"2d", 16.0},
		{"1w", 40.0},
		{"2m", 320.0},
		{"0.5h", 0.5},
		{" 3D ", 24.0},
	}
	for _, tt := range tests {
		effort, err := model.ParseEffort(tt.input)
		if err != nil {
			t.Fatalf("ParseEffort(%q): %v", tt.input, err)
		}
		if got := effort.Hours(); got != tt.hours {
			t.Errorf("ParseEffort(%q).Hours() = %v, want %v", tt.input, got, tt.hours)
		}
	}
}

func TestParseEffortInvalid(t *testing.T) {
	for _, input := range []string{"", "h", "2q", "abch", "1x"} {
		if _, err := model.ParseEffort(input); err == nil {
			t.Errorf("ParseEffort(%q): expected error, got nil", input)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{1.0, "1.0h"},
		{7.9, "7.9h"},
		{8.0, "1.0d"},
		{16.0, "2.0d"},
		{40.0, "1.0w"},
		{160.0, "1.0m"},
		{320.0, "2.0m"},
	}
	for _, tt := range tests {
		if got := model.FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatWorkSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3660, "1h 1m"},
		{28800, "1d 0h"}, // one 8-hour workday
		{32460, "1d 1h 1m"},
	}
	for _, tt := range tests {
		if got := model.FormatWorkSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatWorkSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTaskLifecycle(t *testing.T) {
	task := model.NewTask("Test task")
	if task.Status != model.StatusNotStarted {
		t.Fatalf("new task status = %q, want %q", task.Status, model.StatusNotStarted)
	}
	if task.ShortID() == "" || len(task.ShortID()) != 8 {
		t.Fatalf("ShortID() = %q, want 8 characters", task.ShortID())
	}

	task.Start()
	if task.Status != model.StatusInProgress {
		t.Errorf("status after Start = %q, want %q", task.Status, model.StatusInProgress)
	}
	if task.StartedAt == nil {
		t.Error("StartedAt not set after Start")
	}
	if !task.HasActiveTimeEntry() {
		t.Error("expected active time entry after Start")
	}

	task.Complete()
	if task.Status != model.StatusCompleted {
		t.Errorf("status after Complete = %q, want %q", task.Status, model.StatusCompleted)
	}
	if task.CompletedAt == nil {
		t.Error("CompletedAt not set after Complete")
	}
	if task.HasActiveTimeEntry() {
		t.Error("expected no active time entry after Complete")
	}
}

func TestStartKeepsFirstStartedAt(t *testing.T) {
	task := model.NewTask("t")
	task.Start()
	first := *task.StartedAt

	task.Pause()
	task.Start()
	if !task.StartedAt.Equal(first) {
		t.Errorf("StartedAt changed on restart: %v != %v", task.StartedAt, first)
	}
}

func TestStartDoesNotOpenSecondEntry(t *testing.T) {
	task := model.NewTask("t")
	task.Start()
	task.Start()
	if len(task.TimeEntries) != 1 {
		t.Fatalf("entries after double Start = %d, want 1", len(task.TimeEntries))
	}
}

func TestStartPauseAccumulation(t *testing.T) {
	task := model.NewTask("t")
	task.Start()
	task.Pause()
	task.Start()
	task.Pause()

	if len(task.TimeEntries) != 2 {
		t.Fatalf("entries = %d, want 2", len(task.TimeEntries))
	}

	var sum int64
	open := 0
	for _, e := range task.TimeEntries {
		if e.Active() {
			open++
			continue
		}
		if e.DurationSeconds == nil {
			t.Fatal("closed entry missing duration")
		}
		sum += *e.DurationSeconds
	}
	if open != 0 {
		t.Errorf("open entries = %d, want 0", open)
	}
	if task.TotalTimeSeconds != sum {
		t.Errorf("TotalTimeSeconds = %d, want sum of closed durations %d", task.TotalTimeSeconds, sum)
	}
}

func TestPauseWithoutTimerIsNoop(t *testing.T) {
	task := model.NewTask("t")
	task.Pause()
	if len(task.TimeEntries) != 0 || task.TotalTimeSeconds != 0 {
		t.Error("Pause on idle task mutated time tracking")
	}
}

func TestCancelClosesTimer(t *testing.T) {
	task := model.NewTask("t")
	task.Start()
	task.Cancel()
	if task.Status != model.StatusCancelled {
		t.Errorf("status = %q, want %q", task.Status, model.StatusCancelled)
	}
	if task.CancelledAt == nil {
		t.Error("CancelledAt not set")
	}
	if task.HasActiveTimeEntry() {
		t.Error("expected no active entry after Cancel")
	}
}

func TestAddTagDedup(t *testing.T) {
	task := model.NewTask("t")
	if !task.AddTag("api") {
		t.Error("first AddTag returned false")
	}
	if task.AddTag("api") {
		t.Error("duplicate AddTag returned true")
	}
	if len(task.Tags) != 1 {
		t.Errorf("tags = %v, want exactly one", task.Tags)
	}
	if !task.HasTag("api") || task.HasTag("other") {
		t.Error("HasTag mismatch")
	}
}

func TestAddNote(t *testing.T) {
	task := model.NewTask("t")
	task.AddNote("first")
	task.AddNote("second")
	if task.Notes != "first\nsecond" {
		t.Errorf("Notes = %q, want %q", task.Notes, "first\nsecond")
	}
}

func TestSetEstimate(t *testing.T) {
	task := model.NewTask("t")
	if err := task.SetEstimate("2d"); err != nil {
		t.Fatalf("SetEstimate: %v", err)
	}
	if task.EstimatedEffortHours == nil || *task.EstimatedEffortHours != 16.0 {
		t.Errorf("EstimatedEffortHours = %v, want 16", task.EstimatedEffortHours)
	}
	if got := task.FormattedEstimate(); got != "2.0d" {
		t.Errorf("FormattedEstimate() = %q, want %q", got, "2.0d")
	}

	if err := task.SetEstimate("nonsense"); err == nil {
		t.Error("SetEstimate accepted invalid input")
	}
}
