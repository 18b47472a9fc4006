package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/storage"
	"github.com/twig-tracker/twig/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "twig",
	Short: "twig – a terminal task tracker",
	Long: `twig is a single-binary, file-based task tracker with hierarchical
tasks and built-in time tracking. All data is stored as human-readable
JSON files in ~/.twig/.`,
	// Bare invocation opens the interactive view.
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(reporteeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tuiCmd)
}

// openPrimaryStore loads the primary owner's store. Storage-layer failures
// are fatal to the command.
func openPrimaryStore() (*storage.Paths, *storage.Store) {
	paths, err := storage.NewPaths()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	store := storage.NewStore(paths.TasksFile())
	if err := store.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return paths, store
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive task view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}
