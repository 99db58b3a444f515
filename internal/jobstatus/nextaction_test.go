package jobstatus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terpdesk/terpdesk/internal/api"
)

func TestNextActionPriority(t *testing.T) {
	c := testClassifier()

	starting := jobStartingIn(20*time.Minute, api.StatusAssigned)
	starting.ID = "starting"
	running := api.Job{ID: "running", Status: api.StatusInProgress}
	overdue := completedAgo(30 * time.Hour)
	overdue.ID = "overdue"
	due := completedAgo(2 * time.Hour)
	due.ID = "due"
	confirm := jobStartingIn(24*time.Hour, api.StatusFindingInterpreter)
	confirm.ID = "confirm"
	confirm.AssignmentStatus = api.AssignmentPendingConfirmation

	tests := []struct {
		name string
		jobs []api.Job
		kind ActionKind
		job  string
	}{
		{
			name: "imminent start beats everything",
			jobs: []api.Job{confirm, due, overdue, running, starting},
			kind: ActionStartingSoon,
			job:  "starting",
		},
		{
			name: "in progress beats reports",
			jobs: []api.Job{confirm, due, overdue, running},
			kind: ActionInProgress,
			job:  "running",
		},
		{
			name: "overdue report beats due report",
			jobs: []api.Job{confirm, due, overdue},
			kind: ActionReportOverdue,
			job:  "overdue",
		},
		{
			name: "due report beats confirmation",
			jobs: []api.Job{confirm, due},
			kind: ActionReportDue,
			job:  "due",
		},
		{
			name: "confirmation when nothing else pends",
			jobs: []api.Job{confirm},
			kind: ActionConfirm,
			job:  "confirm",
		},
		{
			name: "empty list suggests finding jobs",
			jobs: nil,
			kind: ActionFindJobs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := c.NextAction(tt.jobs, testNow)
			assert.Equal(t, tt.kind, action.Kind)
			if tt.job == "" {
				assert.Nil(t, action.Job)
			} else {
				require.NotNil(t, action.Job)
				assert.Equal(t, tt.job, action.Job.ID)
			}
		})
	}
}

func TestNextActionStartWindowBoundary(t *testing.T) {
	c := testClassifier()

	outside := jobStartingIn(45*time.Minute, api.StatusAssigned)
	action := c.NextAction([]api.Job{outside}, testNow)
	assert.Equal(t, ActionFindJobs, action.Kind)
}

func TestNextActionPicksSoonestStart(t *testing.T) {
	c := testClassifier()

	first := jobStartingIn(10*time.Minute, api.StatusAssigned)
	first.ID = "first"
	second := jobStartingIn(25*time.Minute, api.StatusRemindersSent)
	second.ID = "second"

	action := c.NextAction([]api.Job{second, first}, testNow)
	require.NotNil(t, action.Job)
	assert.Equal(t, ActionStartingSoon, action.Kind)
	assert.Equal(t, "first", action.Job.ID)
}
