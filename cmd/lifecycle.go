package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
	"github.com/twig-tracker/twig/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Start working on a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(args, "Select task to start", openTasks,
			func(t *model.Task) { t.Start() },
			func(t *model.Task) { fmt.Printf("✓ Started task: %s [%s]\n", t.Title, t.ShortID()) })
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Complete a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(args, "Select task to complete", openTasks,
			func(t *model.Task) { t.Complete() },
			func(t *model.Task) {
				fmt.Printf("✓ Completed task: %s [%s]\n", t.Title, t.ShortID())
				if t.TotalTimeSeconds > 0 {
					fmt.Printf("  Total time: %s\n", t.FormattedTotalTime())
				}
			})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(args, "Select task to cancel", openTasks,
			func(t *model.Task) { t.Cancel() },
			func(t *model.Task) { fmt.Printf("✓ Cancelled task: %s [%s]\n", t.Title, t.ShortID()) })
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause [id]",
	Short: "Pause active time tracking on a task",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPause,
}

// openTasks returns tasks eligible for lifecycle commands: neither
// completed nor cancelled.
func openTasks(store *storage.Store) []*model.Task {
	var tasks []*model.Task
	for _, t := range store.AllTasks() {
		if t.Open() {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// runLifecycle resolves the target task (by argument or interactive
// picker), applies the mutation, persists, and reports.
func runLifecycle(args []string, prompt string, eligible func(*storage.Store) []*model.Task,
	mutate func(*model.Task), report func(*model.Task)) error {
	_, store := openPrimaryStore()

	task, err := pickTarget(store, args, prompt, eligible)
	if err != nil || task == nil {
		return err
	}

	mutate(task)
	if err := store.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	report(task)
	return nil
}

func pickTarget(store *storage.Store, args []string, prompt string,
	eligible func(*storage.Store) []*model.Task) (*model.Task, error) {
	if len(args) == 1 {
		return store.ResolveTask(args[0])
	}

	candidates := eligible(store)
	if len(candidates) == 0 {
		fmt.Println("No tasks available.")
		return nil, nil
	}
	task, err := tui.SelectTask(candidates, prompt)
	if err != nil {
		return nil, err
	}
	if task == nil {
		// Aborted: no mutation.
		return nil, nil
	}
	return task, nil
}

func runPause(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := pickTarget(store, args, "Select task to pause", func(s *storage.Store) []*model.Task {
		var tasks []*model.Task
		for _, t := range s.AllTasks() {
			if t.HasActiveTimeEntry() {
				tasks = append(tasks, t)
			}
		}
		return tasks
	})
	if err != nil || task == nil {
		return err
	}

	if !task.HasActiveTimeEntry() {
		fmt.Println("Task has no active time tracking.")
		return nil
	}

	task.Pause()
	if err := store.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("✓ Paused task: %s [%s]\n", task.Title, task.ShortID())
	fmt.Printf("  Total time: %s\n", task.FormattedTotalTime())
	return nil
}
