package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/earnings"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/timefmt"
)

// NewShowCmd creates the 'show' command for a single job's detail.
func NewShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			job, err := a.client.Job(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}

			now := time.Now()
			var b strings.Builder

			number := job.JobNumber
			if number == "" {
				number = job.ID
			}
			fmt.Fprintf(&b, "%s  %s\n", headingStyle.Render("Job "+number), statusBadge(job.Status))
			if job.AssignmentStatus != "" {
				fmt.Fprintf(&b, "  Assignment:  %s\n", job.AssignmentStatus)
			}
			fmt.Fprintf(&b, "  When:        %s\n", scheduleLabel(job, a.loc, now))
			if job.EstimatedDurationMinutes > 0 {
				fmt.Fprintf(&b, "  Duration:    %d min estimated\n", job.EstimatedDurationMinutes)
			}
			if job.ActualDurationMinutes != nil {
				fmt.Fprintf(&b, "  Actual:      %d min\n", *job.ActualDurationMinutes)
			}
			if job.Language != "" {
				fmt.Fprintf(&b, "  Language:    %s\n", job.Language)
			}
			if job.ServiceType != "" {
				fmt.Fprintf(&b, "  Service:     %s\n", job.ServiceType)
			}
			switch {
			case job.Remote:
				fmt.Fprintf(&b, "  Location:    remote\n")
			case job.Location != "":
				fmt.Fprintf(&b, "  Location:    %s\n", job.Location)
			}

			est := earnings.ForJob(job)
			switch {
			case est.Paid():
				fmt.Fprintf(&b, "  Paid:        %s\n", paidStyle.Render(earnings.FormatUSD(est.Amount)))
			case est.Source == earnings.SourceNone:
				fmt.Fprintf(&b, "  Earnings:    %s (rate not set)\n", earnings.FormatUSD(0))
			default:
				fmt.Fprintf(&b, "  Estimated:   %s (%.2f h)\n", earnings.FormatUSD(est.Amount), est.Hours)
			}

			if job.StartedAt != nil && a.classify.InProgress(job) {
				fmt.Fprintf(&b, "  Elapsed:     %s\n", timefmt.Elapsed(*job.StartedAt, now))
			}
			if job.CompletedAt != nil && !job.CompletionReportSubmitted {
				switch {
				case a.classify.ReportOverdue(job, now):
					fmt.Fprintf(&b, "  %s\n", urgentStyle.Render("Completion report overdue"))
				case a.classify.ReportDue(job, now):
					fmt.Fprintf(&b, "  %s\n", warnStyle.Render("Completion report due"))
				}
			}

			if ok, reason := a.classify.UnassignEligibility(job, now); ok {
				fmt.Fprintf(&b, "  %s\n", dimStyle.Render("Can be unassigned (more than 48h notice)"))
			} else if reason == jobstatus.UnassignTooClose {
				fmt.Fprintf(&b, "  %s\n", dimStyle.Render("Too close to start to unassign"))
			}

			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}
