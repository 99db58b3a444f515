package jobstatus

import (
	"time"

	"github.com/terpdesk/terpdesk/internal/api"
)

// ActionKind identifies the single primary call to action surfaced to the
// interpreter.
type ActionKind string

const (
	ActionStartingSoon  ActionKind = "starting_soon"
	ActionInProgress    ActionKind = "in_progress"
	ActionReportOverdue ActionKind = "report_overdue"
	ActionReportDue     ActionKind = "report_due"
	ActionConfirm       ActionKind = "confirm"
	ActionFindJobs      ActionKind = "find_jobs"
)

// Action is the selected next step. Job is nil for ActionFindJobs.
type Action struct {
	Kind ActionKind
	Job  *api.Job
}

// NextAction selects at most one primary action from the interpreter's jobs.
// Priority order, first match wins: a job starting within the action window,
// a job in progress, an overdue report, a due report, a pending
// confirmation, and finally the default of finding new jobs.
func (c *Classifier) NextAction(jobs []api.Job, now time.Time) Action {
	if job := c.firstStartingWithin(jobs, now, NextActionStartWindow); job != nil {
		return Action{Kind: ActionStartingSoon, Job: job}
	}
	for i := range jobs {
		if c.InProgress(&jobs[i]) {
			return Action{Kind: ActionInProgress, Job: &jobs[i]}
		}
	}
	for i := range jobs {
		if c.ReportOverdue(&jobs[i], now) {
			return Action{Kind: ActionReportOverdue, Job: &jobs[i]}
		}
	}
	for i := range jobs {
		if c.ReportDue(&jobs[i], now) {
			return Action{Kind: ActionReportDue, Job: &jobs[i]}
		}
	}
	for i := range jobs {
		if c.NeedsConfirmationUrgent(&jobs[i], now) {
			return Action{Kind: ActionConfirm, Job: &jobs[i]}
		}
	}
	return Action{Kind: ActionFindJobs}
}

// firstStartingWithin returns the soonest-starting assigned job whose start
// falls inside the window, or nil.
func (c *Classifier) firstStartingWithin(jobs []api.Job, now time.Time, window time.Duration) *api.Job {
	var best *api.Job
	var bestStart time.Time
	for i := range jobs {
		job := &jobs[i]
		if job.Status != api.StatusAssigned && job.Status != api.StatusRemindersSent {
			continue
		}
		start, ok := c.start(job)
		if !ok {
			continue
		}
		until := start.Sub(now)
		if until <= 0 || until > window {
			continue
		}
		if best == nil || start.Before(bestStart) {
			best = job
			bestStart = start
		}
	}
	return best
}
