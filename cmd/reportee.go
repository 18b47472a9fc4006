package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

var reporteeCmd = &cobra.Command{
	Use:   "reportee",
	Short: "Manage reportees",
}

var reporteeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a reportee",
	Args:  cobra.ExactArgs(1),
	RunE:  runReporteeAdd,
}

var reporteeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reportees",
	Args:  cobra.NoArgs,
	RunE:  runReporteeList,
}

var reporteeRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a reportee",
	Args:  cobra.ExactArgs(1),
	RunE:  runReporteeRemove,
}

func init() {
	reporteeCmd.AddCommand(reporteeAddCmd)
	reporteeCmd.AddCommand(reporteeListCmd)
	reporteeCmd.AddCommand(reporteeRemoveCmd)
}

// openConfig loads the application config. Storage-layer failures are
// fatal to the command.
func openConfig() (*storage.Paths, model.Config) {
	paths, err := storage.NewPaths()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := storage.LoadConfig(paths.ConfigFile())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return paths, cfg
}

func saveConfig(paths *storage.Paths, cfg model.Config) {
	if err := storage.SaveConfig(paths.ConfigFile(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func runReporteeAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	paths, cfg := openConfig()

	if !cfg.AddReportee(name) {
		fmt.Printf("Reportee already exists: %s\n", name)
		return nil
	}
	saveConfig(paths, cfg)

	// Seed an empty tasks file so the reportee store loads cleanly.
	path := paths.ReporteeTasksFile(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	fmt.Printf("✓ Added reportee: %s\n", name)
	return nil
}

func runReporteeList(cmd *cobra.Command, args []string) error {
	paths, cfg := openConfig()

	if len(cfg.Reportees) == 0 {
		fmt.Println("No reportees configured.")
		return nil
	}

	fmt.Printf("%-20s %s\n", "NAME", "TASKS FILE")
	for _, name := range cfg.Reportees {
		path := paths.ReporteeTasksFile(name)
		exists := "✓"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			exists = "✗"
		}
		fmt.Printf("%-20s %s %s\n", name, exists, path)
	}
	fmt.Printf("\nTotal: %d reportee(s)\n", len(cfg.Reportees))
	return nil
}

func runReporteeRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	paths, cfg := openConfig()

	if !cfg.RemoveReportee(name) {
		fmt.Printf("Reportee not found: %s\n", name)
		return nil
	}
	saveConfig(paths, cfg)

	fmt.Printf("✓ Removed reportee: %s\n", name)
	fmt.Printf("Note: tasks file for %s was not deleted.\n", name)
	return nil
}
