package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
)

var (
	addParent      string
	addTags        string
	addEstimate    string
	addETA         string
	addAssignee    string
	addDescription string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addParent, "parent", "p", "", "Parent task ID (short or full)")
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "", "Comma-separated tags")
	addCmd.Flags().StringVarP(&addEstimate, "estimate", "e", "", "Estimated effort (e.g. \"1h\", \"2d\", \"3w\", \"2m\")")
	addCmd.Flags().StringVar(&addETA, "eta", "", "Target completion date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addAssignee, "assignee", "a", "", "Assignee name")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task := model.NewTask(args[0])
	task.Description = addDescription
	task.AssignedTo = addAssignee

	if addParent != "" {
		parent, err := store.ResolveTask(addParent)
		if err != nil {
			return fmt.Errorf("parent: %w", err)
		}
		id := parent.ID
		task.ParentID = &id
	}

	if addTags != "" {
		for _, tag := range strings.Split(addTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				task.AddTag(tag)
			}
		}
	}

	if addEstimate != "" {
		if err := task.SetEstimate(addEstimate); err != nil {
			return err
		}
	}

	if addETA != "" {
		eta, err := dateutil.ParseDate(addETA)
		if err != nil {
			return err
		}
		etaUTC := eta.UTC()
		task.ETA = &etaUTC
	}

	if err := store.AddTask(task); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("✓ Task created: %s [%s]\n", task.Title, task.ShortID())
	return nil
}
