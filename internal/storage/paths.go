package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates the data directory (~/.twig) and the files inside it.
type Paths struct {
	baseDir string
}

// NewPaths resolves the data directory from the home directory and creates
// it (plus the reportees subdirectory) if absent.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return NewPathsAt(filepath.Join(home, ".twig"))
}

// NewPathsAt is NewPaths rooted at an explicit directory. Used by tests.
func NewPathsAt(base string) (*Paths, error) {
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating data directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(base, "reportees"), 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating reportees directory: %w", err)
	}
	return &Paths{baseDir: base}, nil
}

// TasksFile is the primary owner's tasks file.
func (p *Paths) TasksFile() string {
	return filepath.Join(p.baseDir, "tasks.json")
}

// ConfigFile is the application config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.baseDir, "config.json")
}

// ReporteeTasksFile is the tasks file for the named reportee.
func (p *Paths) ReporteeTasksFile(name string) string {
	return filepath.Join(p.baseDir, "reportees", name+".json")
}
