package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/earnings"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/timefmt"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	urgentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	paidStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// statusBadge renders a short colored label for a job's lifecycle state.
func statusBadge(status api.Status) string {
	switch status {
	case api.StatusFindingInterpreter:
		return warnStyle.Render("open")
	case api.StatusAssigned, api.StatusRemindersSent:
		return okStyle.Render("assigned")
	case api.StatusInProgress:
		return urgentStyle.Render("in progress")
	case api.StatusCompleted, api.StatusCompletionReport:
		return dimStyle.Render("completed")
	case api.StatusBilled, api.StatusClosed:
		return dimStyle.Render(string(status))
	case api.StatusInterpreterPaid:
		return paidStyle.Render("paid")
	case api.StatusCancelled, api.StatusNoShow, api.StatusRejected:
		return dimStyle.Render(string(status))
	default:
		return dimStyle.Render(string(status))
	}
}

// earningsLabel renders the display amount, marking actual payments so they
// are never mistaken for estimates. A missing rate still yields a figure,
// with the explanation the portal shows.
func earningsLabel(job *api.Job) string {
	est := earnings.ForJob(job)
	switch {
	case est.Paid():
		return paidStyle.Render(earnings.FormatUSD(est.Amount) + " paid")
	case est.Source == earnings.SourceNone:
		return dimStyle.Render(earnings.FormatUSD(0) + " (rate not set)")
	default:
		return earnings.FormatUSD(est.Amount) + " est."
	}
}

// scheduleLabel renders when the job happens: a countdown for upcoming
// starts, the raw schedule otherwise, "N/A" when the record has none.
func scheduleLabel(job *api.Job, loc *time.Location, now time.Time) string {
	start, ok := job.ScheduledStart(loc)
	if !ok {
		return dimStyle.Render("N/A")
	}
	if start.After(now) {
		return fmt.Sprintf("%s (%s)", start.Format("Mon Jan 2 15:04"), timefmt.Until(start.Sub(now)))
	}
	return start.Format("Mon Jan 2 15:04")
}

// jobLine renders one job as a list row.
func jobLine(job *api.Job, loc *time.Location, now time.Time) string {
	number := job.JobNumber
	if number == "" {
		number = job.ID
	}
	descriptor := job.Language
	if job.ServiceType != "" {
		descriptor += " / " + job.ServiceType
	}
	where := job.Location
	if job.Remote {
		where = "remote"
	}

	parts := []string{
		headingStyle.Render(number),
		scheduleLabel(job, loc, now),
		descriptor,
		where,
		statusBadge(job.Status),
		earningsLabel(job),
	}
	return "  " + strings.Join(parts, "  ")
}

// renderJobList prints a heading and rows, or a placeholder for none.
func renderJobList(b *strings.Builder, heading string, jobs []api.Job, loc *time.Location, now time.Time) {
	fmt.Fprintf(b, "%s (%d)\n", headingStyle.Render(heading), len(jobs))
	if len(jobs) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
		return
	}
	for i := range jobs {
		b.WriteString(jobLine(&jobs[i], loc, now) + "\n")
	}
}

// actionLine phrases the smart next action as one banner line.
func actionLine(action jobstatus.Action, loc *time.Location, now time.Time) string {
	jobRef := func(job *api.Job) string {
		if job == nil {
			return ""
		}
		if job.JobNumber != "" {
			return job.JobNumber
		}
		return job.ID
	}

	switch action.Kind {
	case jobstatus.ActionStartingSoon:
		start, _ := action.Job.ScheduledStart(loc)
		return urgentStyle.Render(fmt.Sprintf("Job %s starts %s", jobRef(action.Job), timefmt.Until(start.Sub(now))))
	case jobstatus.ActionInProgress:
		return warnStyle.Render(fmt.Sprintf("Job %s is in progress", jobRef(action.Job)))
	case jobstatus.ActionReportOverdue:
		return urgentStyle.Render(fmt.Sprintf("Completion report for job %s is overdue", jobRef(action.Job)))
	case jobstatus.ActionReportDue:
		return warnStyle.Render(fmt.Sprintf("Completion report for job %s is due", jobRef(action.Job)))
	case jobstatus.ActionConfirm:
		return warnStyle.Render(fmt.Sprintf("Job %s needs your confirmation", jobRef(action.Job)))
	default:
		return dimStyle.Render("No pending actions. Browse available jobs with 'terpdesk available'.")
	}
}
