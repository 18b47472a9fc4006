package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twig-tracker/twig/internal/dateutil"
	"github.com/twig-tracker/twig/internal/model"
	"github.com/twig-tracker/twig/internal/storage"
)

var (
	reportDate     string
	reportAssignee string
	reportReportee string
	statsDate      string
	statsAssignee  string
	statsReportee  string
)

var reportCmd = &cobra.Command{
	Use:       "report <daily|weekly|monthly>",
	Short:     "Generate activity reports",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"daily", "weekly", "monthly"},
	RunE:      runReport,
}

var statsCmd = &cobra.Command{
	Use:       "stats [daily|weekly|monthly]",
	Short:     "Show task statistics, optionally scoped to a period",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"daily", "weekly", "monthly"},
	RunE:      runStats,
}

func init() {
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "today", "Date within the period (YYYY-MM-DD, \"today\", \"last week\", ...)")
	reportCmd.Flags().StringVarP(&reportAssignee, "assignee", "a", "", "Filter by assignee")
	reportCmd.Flags().StringVar(&reportReportee, "reportee", "", "Report on a reportee's tasks instead of your own")
	statsCmd.Flags().StringVarP(&statsDate, "date", "d", "today", "Date within the period (YYYY-MM-DD, \"today\", \"last week\", ...)")
	statsCmd.Flags().StringVarP(&statsAssignee, "assignee", "a", "", "Filter by assignee")
	statsCmd.Flags().StringVar(&statsReportee, "reportee", "", "Stats for a reportee's tasks instead of your own")
}

// openReportStore picks the primary store or, when a reportee is named,
// that reportee's store. Reportee stores load best-effort: a missing or
// broken file reads as empty rather than failing the report.
func openReportStore(reportee string) *storage.Store {
	if reportee == "" {
		_, store := openPrimaryStore()
		return store
	}

	paths, err := storage.NewPaths()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	store := storage.NewStore(paths.ReporteeTasksFile(reportee))
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load tasks for %s: %v\n", reportee, err)
		store = storage.NewStore(paths.ReporteeTasksFile(reportee))
	}
	return store
}

func parseRange(period, date string) (dateutil.Range, error) {
	switch period {
	case "daily":
		return dateutil.DayRange(date)
	case "weekly":
		return dateutil.WeekRange(date)
	case "monthly":
		return dateutil.MonthRange(date)
	}
	return dateutil.Range{}, fmt.Errorf("invalid period %q", period)
}

func runReport(cmd *cobra.Command, args []string) error {
	period := args[0]
	r, err := parseRange(period, reportDate)
	if err != nil {
		return err
	}

	store := openReportStore(reportReportee)

	tasks := store.AllTasks()
	if reportAssignee != "" {
		var filtered []*model.Task
		for _, t := range tasks {
			if t.AssignedTo == reportAssignee {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	var created, started, completed, cancelled, inProgress []*model.Task
	for _, t := range tasks {
		if r.Contains(t.CreatedAt) {
			created = append(created, t)
		}
		if t.StartedAt != nil && r.Contains(*t.StartedAt) {
			started = append(started, t)
		}
		if t.CompletedAt != nil && r.Contains(*t.CompletedAt) {
			completed = append(completed, t)
		}
		if t.CancelledAt != nil && r.Contains(*t.CancelledAt) {
			cancelled = append(cancelled, t)
		}
		if t.Status == model.StatusInProgress {
			inProgress = append(inProgress, t)
		}
	}

	rule := strings.Repeat("=", 60)
	fmt.Printf("\n%s Report\n", strings.ToUpper(period[:1])+period[1:])
	fmt.Printf("Period: %s to %s\n", dateutil.FormatDate(r.Start), dateutil.FormatDate(r.End))
	if reportAssignee != "" {
		fmt.Printf("Assignee: @%s\n", reportAssignee)
	}
	if reportReportee != "" {
		fmt.Printf("Reportee: %s\n", reportReportee)
	}
	fmt.Println(rule)

	fmt.Println("\nSummary:")
	fmt.Printf("  Created:     %d task(s)\n", len(created))
	fmt.Printf("  Started:     %d task(s)\n", len(started))
	fmt.Printf("  Completed:   %d task(s)\n", len(completed))
	fmt.Printf("  Cancelled:   %d task(s)\n", len(cancelled))
	fmt.Printf("  In Progress: %d task(s)\n", len(inProgress))

	if len(completed) > 0 {
		fmt.Println("\nCompleted Tasks:")
		for _, t := range completed {
			fmt.Printf("  %s [%s]  %s  %s\n", t.Title, t.ShortID(),
				timeOrDash(t), dateutil.FormatDateTime(*t.CompletedAt))
		}
	}

	if len(inProgress) > 0 {
		fmt.Println("\nIn Progress:")
		for _, t := range inProgress {
			startedAt := "-"
			if t.StartedAt != nil {
				startedAt = dateutil.FormatDateTime(*t.StartedAt)
			}
			fmt.Printf("  %s [%s]  %s  %s\n", t.Title, t.ShortID(), timeOrDash(t), startedAt)
		}
	}

	return nil
}

func timeOrDash(t *model.Task) string {
	if t.TotalTimeSeconds > 0 {
		return t.FormattedTotalTime()
	}
	return "-"
}

// taskStats aggregates a task set for the stats command.
type taskStats struct {
	total     int
	byStatus  map[model.Status]int
	totalTime int64

	// Estimate accuracy, over completed tasks that carry an estimate.
	estimatedTasks int
	estimatedHours float64
	actualHours    float64

	topTags []tagCount
}

type tagCount struct {
	tag   string
	count int
}

// inStatsRange reports whether any lifecycle timestamp of the task falls in
// the period: created, started, or completed.
func inStatsRange(t *model.Task, r dateutil.Range) bool {
	if r.Contains(t.CreatedAt) {
		return true
	}
	if t.StartedAt != nil && r.Contains(*t.StartedAt) {
		return true
	}
	return t.CompletedAt != nil && r.Contains(*t.CompletedAt)
}

func buildStats(tasks []*model.Task) taskStats {
	st := taskStats{byStatus: map[model.Status]int{}}
	tags := map[string]int{}

	for _, t := range tasks {
		st.total++
		st.byStatus[t.Status]++
		st.totalTime += t.TotalTimeSeconds

		if t.Status == model.StatusCompleted && t.EstimatedEffortHours != nil {
			st.estimatedTasks++
			st.estimatedHours += *t.EstimatedEffortHours
			st.actualHours += float64(t.TotalTimeSeconds) / 3600
		}

		for _, tag := range t.Tags {
			tags[tag]++
		}
	}

	for tag, count := range tags {
		st.topTags = append(st.topTags, tagCount{tag, count})
	}
	sort.Slice(st.topTags, func(i, j int) bool {
		if st.topTags[i].count != st.topTags[j].count {
			return st.topTags[i].count > st.topTags[j].count
		}
		return st.topTags[i].tag < st.topTags[j].tag
	})
	if len(st.topTags) > 10 {
		st.topTags = st.topTags[:10]
	}
	return st
}

// averageTime is total tracked time divided across all tasks.
func (st taskStats) averageTime() int64 {
	if st.total == 0 {
		return 0
	}
	return st.totalTime / int64(st.total)
}

// variancePercent is how far actual time deviates from the estimate,
// positive when over.
func (st taskStats) variancePercent() float64 {
	if st.estimatedHours == 0 {
		return 0
	}
	return (st.actualHours - st.estimatedHours) / st.estimatedHours * 100
}

func statusPercent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func runStats(cmd *cobra.Command, args []string) error {
	var period *dateutil.Range
	if len(args) == 1 {
		r, err := parseRange(args[0], statsDate)
		if err != nil {
			return err
		}
		period = &r
	}

	store := openReportStore(statsReportee)

	var tasks []*model.Task
	for _, t := range store.AllTasks() {
		if statsAssignee != "" && t.AssignedTo != statsAssignee {
			continue
		}
		if period != nil && !inStatsRange(t, *period) {
			continue
		}
		tasks = append(tasks, t)
	}
	st := buildStats(tasks)

	fmt.Println("\nStatistics")
	if statsAssignee != "" {
		fmt.Printf("Assignee: @%s\n", statsAssignee)
	}
	if statsReportee != "" {
		fmt.Printf("Reportee: %s\n", statsReportee)
	}
	if period != nil {
		fmt.Printf("Period: %s to %s\n",
			dateutil.FormatDate(period.Start), dateutil.FormatDate(period.End))
	}
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\nTask Status:")
	fmt.Printf("  Total: %d\n", st.total)
	for _, status := range []model.Status{
		model.StatusNotStarted, model.StatusInProgress,
		model.StatusCompleted, model.StatusCancelled,
	} {
		style := model.StyleFor(status)
		count := st.byStatus[status]
		fmt.Printf("  %s %s: %d (%.1f%%)\n",
			style.Icon, style.Label, count, statusPercent(count, st.total))
	}

	fmt.Println("\nTime Tracking:")
	fmt.Printf("  Total Time: %s\n", model.FormatWorkSeconds(st.totalTime))
	fmt.Printf("  Average Time: %s\n", model.FormatWorkSeconds(st.averageTime()))

	if st.estimatedTasks > 0 {
		fmt.Println("\nEstimate Accuracy (Completed Tasks with Estimates):")
		fmt.Printf("  Estimated: %.1fh\n", st.estimatedHours)
		fmt.Printf("  Actual: %.1fh\n", st.actualHours)
		fmt.Printf("  Variance: %.1f%%\n", st.variancePercent())
	}

	if len(st.topTags) > 0 {
		fmt.Println("\nTop Tags:")
		for _, tc := range st.topTags {
			fmt.Printf("  #%s: %d\n", tc.tag, tc.count)
		}
	}
	return nil
}
