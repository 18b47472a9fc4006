package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	task, err := store.ResolveTask(args[0])
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 60)
	style := model.StyleFor(task.Status)

	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("Task: %s\n", task.Title)
	fmt.Println(rule)
	fmt.Printf("ID:          %s\n", task.ID)
	fmt.Printf("Short ID:    %s\n", task.ShortID())
	fmt.Printf("Status:      %s %s\n", style.Icon, style.Label)

	if task.Description != "" {
		fmt.Printf("Description: %s\n", task.Description)
	}
	if task.AssignedTo != "" {
		fmt.Printf("Assignee:    @%s\n", task.AssignedTo)
	}
	if len(task.Tags) > 0 {
		var tags []string
		for _, tag := range task.Tags {
			tags = append(tags, "#"+tag)
		}
		fmt.Printf("Tags:        %s\n", strings.Join(tags, " "))
	}
	if est := task.FormattedEstimate(); est != "" {
		fmt.Printf("Estimate:    %s\n", est)
	}
	if task.ETA != nil {
		fmt.Printf("ETA:         %s\n", dateutil.FormatDateTime(*task.ETA))
	}

	fmt.Printf("Created:     %s\n", dateutil.FormatDateTime(task.CreatedAt))
	if task.StartedAt != nil {
		fmt.Printf("Started:     %s\n", dateutil.FormatDateTime(*task.StartedAt))
	}
	if task.CompletedAt != nil {
		fmt.Printf("Completed:   %s\n", dateutil.FormatDateTime(*task.CompletedAt))
	}
	if task.CancelledAt != nil {
		fmt.Printf("Cancelled:   %s\n", dateutil.FormatDateTime(*task.CancelledAt))
	}
	if task.TotalTimeSeconds > 0 {
		fmt.Printf("Total Time:  %s\n", task.FormattedTotalTime())
	}
	if task.Notes != "" {
		fmt.Printf("Notes:\n")
		for _, line := range strings.Split(task.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}

	// Ancestor chain, root first. Dangling references truncate the chain.
	chain := store.TaskHierarchy(task)
	if len(chain) > 1 {
		fmt.Println("\nHierarchy:")
		for i, id := range chain {
			if ancestor := store.GetTask(id); ancestor != nil {
				fmt.Printf("  %s%s\n", strings.Repeat("  ", i), ancestor.Title)
			}
		}
	}

	children := store.Children(task.ID)
	if len(children) > 0 {
		fmt.Println("\nSubtasks:")
		for _, child := range children {
			childStyle := model.StyleFor(child.Status)
			fmt.Printf("  %s %s [%s]\n", childStyle.Icon, child.Title, child.ShortID())
		}
	}

	fmt.Println(rule)
	return nil
}
