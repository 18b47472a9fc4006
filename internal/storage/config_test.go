package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

func TestLoadConfigFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Reportees) != 0 {
		t.Errorf("reportees = %v, want empty", cfg.Reportees)
	}
	if cfg.DefaultView != model.ViewTree {
		t.Errorf("default view = %q, want %q", cfg.DefaultView, model.ViewTree)
	}

	// First load writes the file.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created on first load: %v", err)
	}
}

func TestConfigReporteeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AddReportee("alice") {
		t.Error("AddReportee returned false for new name")
	}
	if cfg.AddReportee("alice") {
		t.Error("AddReportee returned true for duplicate")
	}
	if err := storage.SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Reportees) != 1 || loaded.Reportees[0] != "alice" {
		t.Fatalf("reportees = %v, want [alice]", loaded.Reportees)
	}

	if !loaded.RemoveReportee("alice") {
		t.Error("RemoveReportee returned false for present name")
	}
	if loaded.RemoveReportee("bob") {
		t.Error("RemoveReportee returned true for absent name")
	}
}

func TestLoadConfigCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.LoadConfig(path); err == nil {
		t.Error("expected error for corrupt config, got nil")
	}
}

func TestPathsLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".twig")
	paths, err := storage.NewPathsAt(base)
	if err != nil {
		t.Fatalf("NewPathsAt: %v", err)
	}

	if got := paths.TasksFile(); got != filepath.Join(base, "tasks.json") {
		t.Errorf("TasksFile() = %q", got)
	}
	if got := paths.ConfigFile(); got != filepath.Join(base, "config.json") {
		t.Errorf("ConfigFile() = %q", got)
	}
	if got := paths.ReporteeTasksFile("alice"); got != filepath.Join(base, "reportees", "alice.json") {
		t.Errorf("ReporteeTasksFile() = %q", got)
	}

	// Directories are created eagerly.
	if _, err := os.Stat(filepath.Join(base, "reportees")); err != nil {
		t.Errorf("reportees directory missing: %v", err)
	}
}
