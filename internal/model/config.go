package model

// ViewMode selects the default presentation for listing commands.
type ViewMode string

const (
	ViewTree ViewMode = "tree"
	ViewList ViewMode = "list"
)

// Config is the persisted application configuration.
type Config struct {
	Reportees   []string `json:"reportees"`
	DefaultView ViewMode `json:"default_view"`
}

// DefaultConfig returns the configuration written on first use.
func DefaultConfig() Config {
	return Config{
		Reportees:   []string{},
		DefaultView: ViewTree,
	}
}

// AddReportee appends name unless already present. Reports whether it was
// added.
func (c *Config) AddReportee(name string) bool {
	for _, r := range c.Reportees {
		if r == name {
			return false
		}
	}
	c.Reportees = append(c.Reportees, name)
	return true
}

// RemoveReportee removes name. Reports whether it was present.
func (c *Config) RemoveReportee(name string) bool {
	for i, r := range c.Reportees {
		if r == name {
			c.Reportees = append(c.Reportees[:i], c.Reportees[i+1:]...)
			return true
		}
	}
	return false
}
