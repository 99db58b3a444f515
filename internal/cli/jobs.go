package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
)

// fetchListLimit is the page size used when a screen buckets client-side
// and wants effectively all of the interpreter's jobs in one fetch.
const fetchListLimit = 100

// NewJobsCmd creates the 'jobs' command: the interpreter's own jobs,
// partitioned by the shared classifier into action / upcoming / history.
func NewJobsCmd(a *App) *cobra.Command {
	var statusFilter string
	var limit, page int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List your jobs",
		Long: `List your jobs, grouped into pending actions, upcoming work, and history.

Use --status to show a single lifecycle status as a flat list instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			if err := a.store.SetLastScreen("jobs"); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: saving screen state failed: %v\n", err)
			}

			opts := api.MyJobsOptions{Limit: limit, Page: page, Status: api.Status(statusFilter)}
			list, err := a.client.MyJobs(cmd.Context(), opts)
			if err != nil {
				return a.handleAPIError(err)
			}

			now := time.Now()
			var b strings.Builder

			if statusFilter != "" {
				renderJobList(&b, "Jobs: "+statusFilter, list.Jobs, a.loc, now)
				fmt.Fprint(cmd.OutOrStdout(), b.String())
				return nil
			}

			action := a.classify.NextAction(list.Jobs, now)
			b.WriteString(actionLine(action, a.loc, now) + "\n\n")

			renderJobList(&b, "Action needed", actionJobs(a.classify, list.Jobs, now), a.loc, now)
			b.WriteString("\n")
			renderJobList(&b, "Upcoming", a.classify.Upcoming(list.Jobs, now), a.loc, now)
			b.WriteString("\n")
			renderJobList(&b, "History", historyJobs(a.classify, list.Jobs), a.loc, now)

			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by lifecycle status")
	cmd.Flags().IntVar(&limit, "limit", fetchListLimit, "Page size")
	cmd.Flags().IntVar(&page, "page", 0, "Page number")

	return cmd
}

// actionJobs selects jobs needing interpreter attention: reports owed,
// confirmations pending, and unconfirmed imminent starts.
func actionJobs(c *jobstatus.Classifier, jobs []api.Job, now time.Time) []api.Job {
	var out []api.Job
	for i := range jobs {
		job := &jobs[i]
		if c.ReportOverdue(job, now) || c.ReportDue(job, now) ||
			c.NeedsConfirmationUrgent(job, now) || c.StartingSoonUnconfirmed(job, now) {
			out = append(out, *job)
		}
	}
	return out
}

// historyJobs selects completed-lifecycle jobs.
func historyJobs(c *jobstatus.Classifier, jobs []api.Job) []api.Job {
	var out []api.Job
	for i := range jobs {
		if c.CompletedHistory(&jobs[i]) {
			out = append(out, jobs[i])
		}
	}
	return out
}

// NewAvailableCmd creates the 'available' command for browsing open jobs.
func NewAvailableCmd(a *App) *cobra.Command {
	var filters api.AvailableFilters

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Browse open jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			list, err := a.client.AvailableJobs(cmd.Context(), filters)
			if err != nil {
				return a.handleAPIError(err)
			}

			now := time.Now()
			var b strings.Builder
			renderJobList(&b, "Available jobs", list.Jobs, a.loc, now)
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Language, "language", "", "Filter by language")
	cmd.Flags().StringVar(&filters.ServiceType, "service", "", "Filter by service type")
	cmd.Flags().StringVar(&filters.Location, "location", "", "Filter by location")
	cmd.Flags().StringVar(&filters.DateFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.DateTo, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&filters.RemoteOnly, "remote", false, "Remote jobs only")

	return cmd
}
