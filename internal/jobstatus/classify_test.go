package jobstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terpdesk/terpdesk/internal/api"
)

// A fixed reference instant keeps every boundary test deterministic.
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testClassifier() *Classifier {
	return New(time.UTC)
}

// scheduledAt builds the server's split date/time fields for a start at the
// given offset from testNow.
func scheduledAt(offset time.Duration) (string, string) {
	t := testNow.Add(offset)
	return t.Format("2006-01-02"), t.Format("15:04")
}

func jobStartingIn(offset time.Duration, status api.Status) api.Job {
	date, tod := scheduledAt(offset)
	return api.Job{
		ID:            "job-1",
		Status:        status,
		ScheduledDate: date,
		ScheduledTime: tod,
	}
}

func completedAgo(ago time.Duration) api.Job {
	at := testNow.Add(-ago)
	return api.Job{
		ID:          "job-1",
		Status:      api.StatusCompleted,
		CompletedAt: &at,
	}
}

func TestReportOverdue(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name    string
		job     api.Job
		overdue bool
		due     bool
	}{
		{
			name:    "25 hours after completion is overdue",
			job:     completedAgo(25 * time.Hour),
			overdue: true,
		},
		{
			name: "23h59m after completion is due, not overdue",
			job:  completedAgo(23*time.Hour + 59*time.Minute),
			due:  true,
		},
		{
			name: "exactly 24 hours is still due",
			job:  completedAgo(24 * time.Hour),
			due:  true,
		},
		{
			name: "submitted report is neither",
			job: func() api.Job {
				j := completedAgo(30 * time.Hour)
				j.CompletionReportSubmitted = true
				return j
			}(),
		},
		{
			name: "non-completed status is neither",
			job:  jobStartingIn(2*time.Hour, api.StatusAssigned),
		},
		{
			name: "completed with no timestamp is neither",
			job:  api.Job{ID: "job-1", Status: api.StatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overdue, c.ReportOverdue(&tt.job, testNow))
			assert.Equal(t, tt.due, c.ReportDue(&tt.job, testNow))
		})
	}
}

func TestNeedsConfirmationUrgent(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name   string
		until  time.Duration
		assign api.AssignmentStatus
		urgent bool
	}{
		{"47 hours out is urgent", 47 * time.Hour, api.AssignmentPendingConfirmation, true},
		{"one minute out is urgent", time.Minute, api.AssignmentPendingConfirmation, true},
		{"exactly 48 hours is not urgent", 48 * time.Hour, api.AssignmentPendingConfirmation, false},
		{"already started is not urgent", -time.Hour, api.AssignmentPendingConfirmation, false},
		{"accepted offers are not urgent", 24 * time.Hour, api.AssignmentAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := jobStartingIn(tt.until, api.StatusFindingInterpreter)
			job.AssignmentStatus = tt.assign
			assert.Equal(t, tt.urgent, c.NeedsConfirmationUrgent(&job, testNow))
		})
	}
}

func TestConfirmationUpcoming(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name     string
		until    time.Duration
		assign   api.AssignmentStatus
		upcoming bool
	}{
		{"exactly 48 hours out is upcoming", 48 * time.Hour, api.AssignmentAccepted, true},
		{"5 days out is upcoming", 5 * 24 * time.Hour, api.AssignmentAccepted, true},
		{"exactly 7 days out is upcoming", 168 * time.Hour, api.AssignmentAccepted, true},
		{"8 days out is too far", 8 * 24 * time.Hour, api.AssignmentAccepted, false},
		{"inside the urgent window is not upcoming", 24 * time.Hour, api.AssignmentAccepted, false},
		{"pending confirmation does not count as upcoming", 72 * time.Hour, api.AssignmentPendingConfirmation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := jobStartingIn(tt.until, api.StatusAssigned)
			job.AssignmentStatus = tt.assign
			assert.Equal(t, tt.upcoming, c.ConfirmationUpcoming(&job, testNow))
		})
	}
}

func TestStartingSoonUnconfirmed(t *testing.T) {
	c := testClassifier()

	t.Run("assigned unconfirmed 90 minutes out", func(t *testing.T) {
		job := jobStartingIn(90*time.Minute, api.StatusAssigned)
		assert.True(t, c.StartingSoonUnconfirmed(&job, testNow))
	})

	t.Run("reminders_sent counts as assigned", func(t *testing.T) {
		job := jobStartingIn(time.Hour, api.StatusRemindersSent)
		assert.True(t, c.StartingSoonUnconfirmed(&job, testNow))
	})

	t.Run("confirmed job does not prompt", func(t *testing.T) {
		job := jobStartingIn(time.Hour, api.StatusAssigned)
		confirmed := testNow.Add(-time.Hour)
		job.ConfirmedAt = &confirmed
		assert.False(t, c.StartingSoonUnconfirmed(&job, testNow))
	})

	t.Run("three hours out is not soon", func(t *testing.T) {
		job := jobStartingIn(3*time.Hour, api.StatusAssigned)
		assert.False(t, c.StartingSoonUnconfirmed(&job, testNow))
	})

	t.Run("already started does not prompt", func(t *testing.T) {
		job := jobStartingIn(-10*time.Minute, api.StatusAssigned)
		assert.False(t, c.StartingSoonUnconfirmed(&job, testNow))
	})
}

func TestUnassignEligibility(t *testing.T) {
	c := testClassifier()

	t.Run("allowed with three days notice", func(t *testing.T) {
		job := jobStartingIn(72*time.Hour, api.StatusAssigned)
		ok, reason := c.UnassignEligibility(&job, testNow)
		assert.True(t, ok)
		assert.Equal(t, UnassignOK, reason)
	})

	t.Run("blocked at exactly the notice boundary", func(t *testing.T) {
		job := jobStartingIn(48*time.Hour, api.StatusAssigned)
		ok, reason := c.UnassignEligibility(&job, testNow)
		assert.False(t, ok)
		assert.Equal(t, UnassignTooClose, reason)
	})

	t.Run("blocked in the wrong status", func(t *testing.T) {
		job := jobStartingIn(72*time.Hour, api.StatusInProgress)
		ok, reason := c.UnassignEligibility(&job, testNow)
		assert.False(t, ok)
		assert.Equal(t, UnassignNotInCorrectStatus, reason)
	})

	t.Run("unparseable start counts as too close", func(t *testing.T) {
		job := api.Job{ID: "job-1", Status: api.StatusAssigned, ScheduledDate: "soon", ScheduledTime: "later"}
		ok, reason := c.UnassignEligibility(&job, testNow)
		assert.False(t, ok)
		assert.Equal(t, UnassignTooClose, reason)
	})
}

func TestAvailableToClaim(t *testing.T) {
	c := testClassifier()

	open := api.Job{Status: api.StatusFindingInterpreter}
	assert.True(t, c.AvailableToClaim(&open))

	open.AssignmentStatus = api.AssignmentAvailable
	assert.True(t, c.AvailableToClaim(&open))

	open.AssignmentStatus = api.AssignmentDeclined
	assert.False(t, c.AvailableToClaim(&open))

	assigned := api.Job{Status: api.StatusAssigned}
	assert.False(t, c.AvailableToClaim(&assigned))
}

func TestCompletedHistory(t *testing.T) {
	c := testClassifier()

	for _, status := range []api.Status{
		api.StatusCompleted, api.StatusCompletionReport, api.StatusBilled,
		api.StatusClosed, api.StatusInterpreterPaid,
	} {
		job := api.Job{Status: status}
		assert.True(t, c.CompletedHistory(&job), "status %s", status)
	}

	active := api.Job{Status: api.StatusInProgress}
	assert.False(t, c.CompletedHistory(&active))
}

func TestBucketsAreIdempotent(t *testing.T) {
	c := testClassifier()

	job := completedAgo(30 * time.Hour)
	first := c.Buckets(&job, testNow)
	second := c.Buckets(&job, testNow)
	assert.Equal(t, first, second)
	assert.Contains(t, first, BucketReportOverdue)
	assert.Contains(t, first, BucketHistory)
}

func TestBucketsMalformedRecord(t *testing.T) {
	c := testClassifier()

	job := api.Job{
		ID:               "job-1",
		Status:           api.StatusAssigned,
		AssignmentStatus: api.AssignmentPendingConfirmation,
		ScheduledDate:    "2025-03-10",
		ScheduledTime:    "whenever",
	}
	assert.Empty(t, c.Buckets(&job, testNow))
}

func TestCounts(t *testing.T) {
	c := testClassifier()

	jobs := []api.Job{
		completedAgo(30 * time.Hour),
		completedAgo(2 * time.Hour),
		jobStartingIn(time.Hour, api.StatusAssigned),
	}

	counts := c.Counts(jobs, testNow)
	assert.Equal(t, 1, counts[BucketReportOverdue])
	assert.Equal(t, 1, counts[BucketReportDue])
	assert.Equal(t, 1, counts[BucketStartingSoon])
	assert.Equal(t, 2, counts[BucketHistory])
}

func TestUpcoming(t *testing.T) {
	c := testClassifier()

	later := jobStartingIn(48*time.Hour, api.StatusAssigned)
	later.ID = "later"
	sooner := jobStartingIn(2*time.Hour, api.StatusRemindersSent)
	sooner.ID = "sooner"
	past := jobStartingIn(-time.Hour, api.StatusAssigned)
	past.ID = "past"
	malformed := api.Job{ID: "malformed", Status: api.StatusAssigned, ScheduledDate: "tbd", ScheduledTime: "tbd"}
	open := jobStartingIn(time.Hour, api.StatusFindingInterpreter)
	open.ID = "open"

	got := c.Upcoming([]api.Job{later, sooner, past, malformed, open}, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, "sooner", got[0].ID)
	assert.Equal(t, "later", got[1].ID)
}

func TestScheduledStartLayouts(t *testing.T) {
	tests := []struct {
		date, tod string
		ok        bool
	}{
		{"2025-03-10", "13:30:00", true},
		{"2025-03-10", "13:30", true},
		{"2025-03-10", "1:30 PM", true},
		{"2025-03-10", "", false},
		{"", "13:30", false},
		{"2025-03-10", "half past one", false},
	}

	for _, tt := range tests {
		job := api.Job{ScheduledDate: tt.date, ScheduledTime: tt.tod}
		_, ok := job.ScheduledStart(time.UTC)
		assert.Equal(t, tt.ok, ok, "%q %q", tt.date, tt.tod)
	}
}
