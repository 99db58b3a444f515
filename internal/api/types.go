package api

import (
	"time"
)

// Status is a job's lifecycle state, owned by the server. Values only move
// forward through the lifecycle except for cancellation, no-show and
// rejection; this client never writes a status, it only reads them.
type Status string

const (
	StatusFindingInterpreter Status = "finding_interpreter"
	StatusAssigned           Status = "assigned"
	StatusRemindersSent      Status = "reminders_sent"
	StatusInProgress         Status = "in_progress"
	StatusCompleted          Status = "completed"
	StatusCompletionReport   Status = "completion_report"
	StatusBilled             Status = "billed"
	StatusClosed             Status = "closed"
	StatusInterpreterPaid    Status = "interpreter_paid"
	StatusCancelled          Status = "cancelled"
	StatusNoShow             Status = "no_show"
	StatusRejected           Status = "rejected"
)

// AssignmentStatus is the interpreter's personal response state on a job,
// independent of the job's lifecycle status.
type AssignmentStatus string

const (
	AssignmentAvailable              AssignmentStatus = "available"
	AssignmentPendingConfirmation    AssignmentStatus = "pending_confirmation"
	AssignmentAccepted               AssignmentStatus = "accepted"
	AssignmentDeclined               AssignmentStatus = "declined"
	AssignmentPendingMileageApproval AssignmentStatus = "pending_mileage_approval"
)

// Job is the flat record the server returns per assignment. Optional numeric
// fields are pointers so "absent" is distinguishable from zero.
type Job struct {
	ID        string `json:"id"`
	JobNumber string `json:"job_number,omitempty"`

	// Scheduling. Date and time-of-day arrive as separate strings and are
	// combined by ScheduledStart.
	ScheduledDate            string `json:"scheduled_date,omitempty"`
	ScheduledTime            string `json:"scheduled_time,omitempty"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes,omitempty"`
	ActualDurationMinutes    *int   `json:"actual_duration_minutes,omitempty"`
	ArrivalTime              string `json:"arrival_time,omitempty"`

	Status           Status           `json:"status"`
	AssignmentStatus AssignmentStatus `json:"assignment_status,omitempty"`

	// Completion data. CompletedAt is set when the status becomes
	// "completed"; the report fields track the post-appointment submission.
	CompletedAt               *time.Time            `json:"completed_at,omitempty"`
	ConfirmedAt               *time.Time            `json:"confirmed_at,omitempty"`
	StartedAt                 *time.Time            `json:"started_at,omitempty"`
	CompletionReportSubmitted bool                  `json:"completion_report_submitted"`
	CompletionReportData      *CompletionReportData `json:"completion_report_data,omitempty"`

	// Payment inputs.
	AgreedRate                 *float64 `json:"agreed_rate,omitempty"`
	HourlyRate                 *float64 `json:"hourly_rate,omitempty"`
	InterpreterIntervalMinutes int      `json:"interpreter_interval_minutes,omitempty"`
	MileageRequested           *float64 `json:"mileage_requested,omitempty"`
	MileageReimbursement       *float64 `json:"mileage_reimbursement,omitempty"`
	InterpreterPaidAmount      *float64 `json:"interpreter_paid_amount,omitempty"`
	ReservedHours              int      `json:"reserved_hours,omitempty"`
	ReservedMinutes            int      `json:"reserved_minutes,omitempty"`

	// Server-calculated earnings fields, consulted in fallback order by the
	// earnings estimator.
	Earnings               *float64 `json:"earnings,omitempty"`
	TotalAmount            *float64 `json:"total_amount,omitempty"`
	CalculatedEarnings     *float64 `json:"calculated_earnings,omitempty"`
	EstimatedEarnings      *float64 `json:"estimated_earnings,omitempty"`
	CalculatedTotalPayment *float64 `json:"calculated_total_payment,omitempty"`
	CalculatedHours        *float64 `json:"calculated_hours,omitempty"`
	DurationHours          *float64 `json:"duration_hours,omitempty"`

	// Descriptors, display only.
	Language    string `json:"language,omitempty"`
	ServiceType string `json:"service_type,omitempty"`
	Location    string `json:"location,omitempty"`
	Remote      bool   `json:"remote,omitempty"`
}

// CompletionReportData is the nested report object on a job record.
type CompletionReportData struct {
	Result      string `json:"result,omitempty"`
	PickupTime  string `json:"pickup_time,omitempty"`
	DropoffTime string `json:"dropoff_time,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// scheduledStartLayouts are the accepted combined date+time formats.
// The server sends a calendar date plus a local time-of-day string.
var scheduledStartLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
}

// ScheduledStart combines scheduled_date and scheduled_time into a start
// timestamp in loc. Returns ok=false when either field is missing or does
// not parse; callers must exclude such jobs from time-based logic rather
// than comparing against a zero time.
func (j *Job) ScheduledStart(loc *time.Location) (time.Time, bool) {
	if j.ScheduledDate == "" || j.ScheduledTime == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	combined := j.ScheduledDate + " " + j.ScheduledTime
	for _, layout := range scheduledStartLayouts {
		if t, err := time.ParseInLocation(layout, combined, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReservedTotalMinutes returns the reserved block as minutes.
func (j *Job) ReservedTotalMinutes() int {
	return j.ReservedHours*60 + j.ReservedMinutes
}

// Profile is the interpreter's cached account record.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// JobList is a paginated job listing response.
type JobList struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// EarningsSummary is the server-side aggregation for a period.
type EarningsSummary struct {
	Period        string  `json:"period"`
	TotalEarnings float64 `json:"total_earnings"`
	TotalHours    float64 `json:"total_hours"`
	TotalMileage  float64 `json:"total_mileage"`
	JobCount      int     `json:"job_count"`
	Jobs          []Job   `json:"jobs,omitempty"`
}

// Attachment is a file to upload with a completion report.
type Attachment struct {
	Name string // filename presented to the server
	Path string // local path, opened at submit time
}

// CompletionReportSubmission is the multipart payload for a completion
// report. Field validation happens in the report package before a
// submission is constructed.
type CompletionReportSubmission struct {
	Result       string
	PickupTime   string
	DropoffTime  string
	Notes        string
	MileageMiles *float64
	MileageRate  *float64
	Attachments  []Attachment
}
