package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/tree"
)

var treeAssignee string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the task tree",
	Args:  cobra.NoArgs,
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().StringVarP(&treeAssignee, "assignee", "a", "", "Only show trees rooted at tasks assigned to this person")
}

func runTree(cmd *cobra.Command, args []string) error {
	_, store := openPrimaryStore()

	forest := tree.Build(store)
	var keep func(*model.Task) bool
	if treeAssignee != "" {
		keep = func(t *model.Task) bool { return t.AssignedTo == treeAssignee }
	}

	lines := forest.RenderRoots(keep)
	if len(lines) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	rule := strings.Repeat("=", 60)
	fmt.Println("\nTask Tree:")
	if treeAssignee != "" {
		fmt.Printf("Assignee: @%s\n", treeAssignee)
	}
	fmt.Println(rule)
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println(rule)
	return nil
}
