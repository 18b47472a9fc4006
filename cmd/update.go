package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/dateutil"
)

var (
	updateTitle       string
	updateDescription string
	updateEstimate    string
	updateETA         string
	updateAssignee    string
	updateParent      string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVar(&updateEstimate, "estimate", "", "New estimated effort (e.g. \"1h\", \"2d\")")
	updateCmd.Flags().StringVar(&updateETA, "eta", "", "New ETA (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateAssignee, "assignee", "", "New assignee")
	updateCmd.Flags().StringVar(&updateParent, "parent", "", "New parent task ID (\"none\" detaches)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := store.ResolveTask(args[0])
	if err != nil {
		return err
	}

	updated := false

	if cmd.Flags().Changed("title") {
		task.Title = updateTitle
		updated = true
	}
	if cmd.Flags().Changed("description") {
		task.Description = updateDescription
		updated = true
	}
	if cmd.Flags().Changed("estimate") {
		if err := task.SetEstimate(updateEstimate); err != nil {
			return err
		}
		updated = true
	}
	if cmd.Flags().Changed("eta") {
		eta, err := dateutil.ParseDate(updateETA)
		if err != nil {
			return err
		}
		etaUTC := eta.UTC()
		task.ETA = &etaUTC
		updated = true
	}
	if cmd.Flags().Changed("assignee") {
		task.AssignedTo = updateAssignee
		updated = true
	}
	if cmd.Flags().Changed("parent") {
		if updateParent == "none" {
			if err := store.SetParent(task, nil); err != nil {
				return err
			}
		} else {
			parent, err := store.ResolveTask(updateParent)
			if err != nil {
				return fmt.Errorf("parent: %w", err)
			}
			id := parent.ID
			if err := store.SetParent(task, &id); err != nil {
				return err
			}
		}
		updated = true
	}

	if !updated {
		fmt.Println("No changes made.")
		return nil
	}

	if err := store.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("✓ Task updated: %s [%s]\n", task.Title, task.ShortID())
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := store.ResolveTask(args[0])
	if err != nil {
		return err
	}

	// Deletion does not cascade; children keep their parent reference and
	// become orphans.
	if children := store.Children(task.ID); len(children) > 0 {
		fmt.Printf("Warning: this task has %d subtask(s); they will be orphaned.\n", len(children))
	}

	fmt.Printf("Delete task %q [%s]? [y/N] ", task.Title, task.ShortID())
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Cancelled")
		return nil
	}

	if err := store.DeleteTask(task.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("✓ Task deleted")
	return nil
}

var tagCmd = &cobra.Command{
	Use:   "tag <id> <tags...>",
	Short: "Add tags to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTag,
}

func runTag(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := store.ResolveTask(args[0])
	if err != nil {
		return err
	}

	for _, tag := range args[1:] {
		if task.AddTag(tag) {
			fmt.Printf("✓ Added tag: #%s\n", tag)
		} else {
			fmt.Printf("  Tag already exists: #%s\n", tag)
		}
	}

	if err := store.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

var noteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Append a note to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNote,
}

func runNote(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := store.ResolveTask(args[0])
	if err != nil {
		return err
	}

	task.AddNote(strings.Join(args[1:], " "))
	if err := store.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("✓ Note added to %s [%s]\n", task.Title, task.ShortID())
	return nil
}
