package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
)

var (
	listStatus   string
	listTag      string
	listAssignee string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (not_started, in_progress, completed, cancelled)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by tag")
	listCmd.Flags().StringVarP(&listAssignee, "assignee", "a", "", "Filter by assignee")
}

func runList(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	var statusFilter model.Status
	if listStatus != "" {
		parsed, ok := model.ParseStatus(listStatus)
		if !ok {
			return fmt.Errorf("invalid status %q", listStatus)
		}
		statusFilter = parsed
	}

	var filtered []*model.Task
	for _, task := range store.AllTasks() {
		if statusFilter != "" && task.Status != statusFilter {
			continue
		}
		if listTag != "" && !task.HasTag(listTag) {
			continue
		}
		if listAssignee != "" && task.AssignedTo != listAssignee {
			continue
		}
		filtered = append(filtered, task)
	}

	if len(filtered) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	fmt.Printf("%-10s %-15s %-40s %-20s %-12s %s\n",
		"ID", "STATUS", "TITLE", "TAGS", "TIME", "CREATED")
	for _, task := range filtered {
		style := model.StyleFor(task.Status)

		var tags []string
		for _, tag := range task.Tags {
			tags = append(tags, "#"+tag)
		}

		title := task.Title
		if task.AssignedTo != "" {
			title += " @" + task.AssignedTo
		}

		timeStr := ""
		if task.TotalTimeSeconds > 0 {
			timeStr = task.FormattedTotalTime()
		}

		fmt.Printf("%-10s %s %-13s %-40s %-20s %-12s %s\n",
			task.ShortID(), style.Icon, style.Label, title,
			strings.Join(tags, " "), timeStr,
			dateutil.FormatDateTime(task.CreatedAt))
	}

	fmt.Printf("\nTotal: %d task(s)\n", len(filtered))
	return nil
}
