// Package jobstatus derives UI-facing job categories from raw job records.
//
// Every screen (dashboard, job list, schedule, pending actions) calls into
// this one package instead of re-deriving bucket logic inline, so badge
// counts and prompts agree no matter which screen computed them. All
// classification is a pure function of (record, now); re-running it on the
// same pair yields the same result.
package jobstatus

import (
	"sort"
	"time"

	"github.com/terpdesk/terpdesk/internal/api"
)

// Bucket is a UI-facing category a job can belong to. Buckets are not
// exclusive: a completed job with an unsubmitted report is in both the
// history bucket and a report bucket.
type Bucket string

const (
	BucketReportOverdue   Bucket = "report_overdue"
	BucketReportDue       Bucket = "report_due"
	BucketConfirmUrgent   Bucket = "confirm_urgent"
	BucketConfirmUpcoming Bucket = "confirm_upcoming"
	BucketStartingSoon    Bucket = "starting_soon"
	BucketInProgress      Bucket = "in_progress"
	BucketAvailable       Bucket = "available"
	BucketHistory         Bucket = "history"
)

// Business thresholds. These are fixed product constants, not derived.
const (
	// ReportWindow is how long after completion a report may be submitted
	// before it counts as overdue. Overdue is strictly greater than the
	// window; a report at exactly 24h is still "due".
	ReportWindow = 24 * time.Hour

	// ConfirmUrgentWindow bounds the urgent-confirmation window before a
	// job's start. A start exactly at the boundary is not urgent.
	ConfirmUrgentWindow = 48 * time.Hour

	// ConfirmAdvanceWindow bounds the advance-notice window for accepted
	// jobs that will need confirmation soon.
	ConfirmAdvanceWindow = 168 * time.Hour

	// StartingSoonWindow flags unconfirmed jobs about to begin.
	StartingSoonWindow = 2 * time.Hour

	// UnassignNotice is the minimum time before start at which an
	// interpreter may still unassign themselves.
	UnassignNotice = 48 * time.Hour

	// NextActionStartWindow picks out jobs about to start for the primary
	// call to action.
	NextActionStartWindow = 30 * time.Minute
)

// Classifier evaluates job records against wall-clock time. The location is
// used to interpret the server's local date/time strings; it is the only
// configuration the classifier carries.
type Classifier struct {
	loc *time.Location
}

// New creates a Classifier that parses schedule strings in loc.
// A nil loc means the system local zone.
func New(loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{loc: loc}
}

// start returns the parsed scheduled start, or ok=false for records with
// missing or malformed schedule fields. Such records are excluded from every
// time-based bucket rather than misclassified.
func (c *Classifier) start(job *api.Job) (time.Time, bool) {
	return job.ScheduledStart(c.loc)
}

// ReportOverdue reports whether a completed job's report is more than the
// report window past completion and still unsubmitted.
func (c *Classifier) ReportOverdue(job *api.Job, now time.Time) bool {
	if job.Status != api.StatusCompleted || job.CompletionReportSubmitted || job.CompletedAt == nil {
		return false
	}
	return now.Sub(*job.CompletedAt) > ReportWindow
}

// ReportDue reports whether a completed job's report is owed but not yet
// overdue. The boundary at exactly the window belongs to "due".
func (c *Classifier) ReportDue(job *api.Job, now time.Time) bool {
	if job.Status != api.StatusCompleted || job.CompletionReportSubmitted || job.CompletedAt == nil {
		return false
	}
	elapsed := now.Sub(*job.CompletedAt)
	return elapsed > 0 && elapsed <= ReportWindow
}

// NeedsConfirmationUrgent reports whether the interpreter must confirm now:
// the offer is pending confirmation and the job starts within the urgent
// window. A start exactly at the window boundary is excluded.
func (c *Classifier) NeedsConfirmationUrgent(job *api.Job, now time.Time) bool {
	if job.AssignmentStatus != api.AssignmentPendingConfirmation {
		return false
	}
	start, ok := c.start(job)
	if !ok {
		return false
	}
	until := start.Sub(now)
	return until > 0 && until < ConfirmUrgentWindow
}

// ConfirmationUpcoming reports whether an accepted job will enter the
// confirmation window soon (between the urgent and advance windows out).
func (c *Classifier) ConfirmationUpcoming(job *api.Job, now time.Time) bool {
	if job.AssignmentStatus != api.AssignmentAccepted {
		return false
	}
	start, ok := c.start(job)
	if !ok {
		return false
	}
	until := start.Sub(now)
	return until >= ConfirmUrgentWindow && until <= ConfirmAdvanceWindow
}

// StartingSoonUnconfirmed reports whether one of the interpreter's assigned
// jobs starts within the soon window without a confirmation on record.
func (c *Classifier) StartingSoonUnconfirmed(job *api.Job, now time.Time) bool {
	if job.Status != api.StatusAssigned && job.Status != api.StatusRemindersSent {
		return false
	}
	if job.ConfirmedAt != nil {
		return false
	}
	start, ok := c.start(job)
	if !ok {
		return false
	}
	until := start.Sub(now)
	return until > 0 && until <= StartingSoonWindow
}

// InProgress reports whether the job is currently running.
func (c *Classifier) InProgress(job *api.Job) bool {
	return job.Status == api.StatusInProgress
}

// AvailableToClaim reports whether the job is open and the interpreter has
// not yet indicated availability on it.
func (c *Classifier) AvailableToClaim(job *api.Job) bool {
	if job.Status != api.StatusFindingInterpreter {
		return false
	}
	return job.AssignmentStatus == "" || job.AssignmentStatus == api.AssignmentAvailable
}

// historyStatuses are the lifecycle states past completion.
var historyStatuses = map[api.Status]bool{
	api.StatusCompleted:        true,
	api.StatusCompletionReport: true,
	api.StatusBilled:           true,
	api.StatusClosed:           true,
	api.StatusInterpreterPaid:  true,
}

// CompletedHistory reports whether the job belongs in the history view.
func (c *Classifier) CompletedHistory(job *api.Job) bool {
	return historyStatuses[job.Status] || job.CompletionReportSubmitted
}

// UnassignReason explains a rejected unassignment.
type UnassignReason string

const (
	UnassignOK                 UnassignReason = ""
	UnassignTooClose           UnassignReason = "too-close"
	UnassignNotInCorrectStatus UnassignReason = "not-in-correct-status"
)

// UnassignEligibility mirrors the server's unassignment rule so screens can
// disable the action before a round trip: allowed only while assigned (or
// reminded) and with more than the notice window before start. A record
// whose start cannot be established is treated as too close to unassign.
func (c *Classifier) UnassignEligibility(job *api.Job, now time.Time) (bool, UnassignReason) {
	if job.Status != api.StatusAssigned && job.Status != api.StatusRemindersSent {
		return false, UnassignNotInCorrectStatus
	}
	start, ok := c.start(job)
	if !ok {
		return false, UnassignTooClose
	}
	if start.Sub(now) <= UnassignNotice {
		return false, UnassignTooClose
	}
	return true, UnassignOK
}

// Buckets returns every bucket the job belongs to at the given instant.
// A malformed record degrades to no buckets; it never fails classification
// of the rest of a collection.
func (c *Classifier) Buckets(job *api.Job, now time.Time) []Bucket {
	var buckets []Bucket
	if c.ReportOverdue(job, now) {
		buckets = append(buckets, BucketReportOverdue)
	}
	if c.ReportDue(job, now) {
		buckets = append(buckets, BucketReportDue)
	}
	if c.NeedsConfirmationUrgent(job, now) {
		buckets = append(buckets, BucketConfirmUrgent)
	}
	if c.ConfirmationUpcoming(job, now) {
		buckets = append(buckets, BucketConfirmUpcoming)
	}
	if c.StartingSoonUnconfirmed(job, now) {
		buckets = append(buckets, BucketStartingSoon)
	}
	if c.InProgress(job) {
		buckets = append(buckets, BucketInProgress)
	}
	if c.AvailableToClaim(job) {
		buckets = append(buckets, BucketAvailable)
	}
	if c.CompletedHistory(job) {
		buckets = append(buckets, BucketHistory)
	}
	return buckets
}

// Counts tallies bucket membership across a collection, for tab badges.
func (c *Classifier) Counts(jobs []api.Job, now time.Time) map[Bucket]int {
	counts := make(map[Bucket]int)
	for i := range jobs {
		for _, b := range c.Buckets(&jobs[i], now) {
			counts[b]++
		}
	}
	return counts
}

// Upcoming filters the interpreter's assigned jobs with a future start and
// sorts them by start time ascending. Records without a parseable start are
// excluded.
func (c *Classifier) Upcoming(jobs []api.Job, now time.Time) []api.Job {
	type timed struct {
		job   api.Job
		start time.Time
	}
	var upcoming []timed
	for i := range jobs {
		job := jobs[i]
		if job.Status != api.StatusAssigned && job.Status != api.StatusRemindersSent && job.Status != api.StatusInProgress {
			continue
		}
		start, ok := c.start(&job)
		if !ok {
			continue
		}
		if job.Status != api.StatusInProgress && !start.After(now) {
			continue
		}
		upcoming = append(upcoming, timed{job: job, start: start})
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})
	result := make([]api.Job, len(upcoming))
	for i, t := range upcoming {
		result[i] = t.job
	}
	return result
}
