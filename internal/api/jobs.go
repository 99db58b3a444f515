package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// MyJobsOptions filter the authenticated interpreter's own jobs.
type MyJobsOptions struct {
	Limit  int
	Page   int
	Status Status // empty = all
}

// MyJobs lists the interpreter's jobs. Screens that bucket client-side call
// this with a large limit and partition the result locally.
func (c *Client) MyJobs(ctx context.Context, opts MyJobsOptions) (*JobList, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}

	var list JobList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/jobs/my-jobs", query: q}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AvailableFilters narrow the open-jobs listing.
type AvailableFilters struct {
	Language    string
	ServiceType string
	Location    string
	DateFrom    string // YYYY-MM-DD
	DateTo      string
	RemoteOnly  bool
}

// AvailableJobs lists open jobs matching the filters.
func (c *Client) AvailableJobs(ctx context.Context, f AvailableFilters) (*JobList, error) {
	q := url.Values{}
	if f.Language != "" {
		q.Set("language", f.Language)
	}
	if f.ServiceType != "" {
		q.Set("service_type", f.ServiceType)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	if f.RemoteOnly {
		q.Set("remote_only", "true")
	}

	var list JobList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/jobs/available", query: q}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Job fetches a single job record.
func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodGet, path: "/jobs/" + id}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// AcceptOptions carry the optional mileage request attached to an accept.
type AcceptOptions struct {
	MileageMiles *float64 `json:"mileage_miles,omitempty"`
	MileageRate  *float64 `json:"mileage_rate,omitempty"`
}

// AcceptJob accepts an offered job, optionally requesting mileage
// reimbursement. The mileage rate must already be clamped by the caller.
func (c *Client) AcceptJob(ctx context.Context, id string, opts AcceptOptions) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodPost, path: "/jobs/" + id + "/accept", body: opts}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeclineJob declines an offered job.
func (c *Client) DeclineJob(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/jobs/" + id + "/decline"}, nil)
}

// IndicateAvailability signals interest (or withdraws it) on an open job.
func (c *Client) IndicateAvailability(ctx context.Context, id string, available bool) error {
	path := "/jobs/" + id + "/indicate-available"
	if !available {
		path = "/jobs/" + id + "/indicate-not-available"
	}
	return c.do(ctx, request{method: http.MethodPost, path: path}, nil)
}

// ConfirmAvailability confirms an assigned job ahead of its start.
func (c *Client) ConfirmAvailability(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/jobs/" + id + "/confirm-availability"}, nil)
}

// UnassignJob removes the interpreter from an assigned job. The server
// enforces the eligibility window; jobstatus.UnassignEligibility mirrors it
// so screens can disable the action before the round trip.
func (c *Client) UnassignJob(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/jobs/" + id + "/unassign"}, nil)
}

// StartJob starts the on-site timer for a job.
func (c *Client) StartJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodPost, path: "/interpreters/jobs/" + id + "/start"}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// EndJob ends the on-site timer.
func (c *Client) EndJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodPost, path: "/interpreters/jobs/" + id + "/end"}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SubmitCompletionReport uploads the post-appointment report as multipart
// form data with any file attachments. The submission must already have
// passed report validation.
func (c *Client) SubmitCompletionReport(ctx context.Context, id string, sub CompletionReportSubmission) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"result":       sub.Result,
		"pickup_time":  sub.PickupTime,
		"dropoff_time": sub.DropoffTime,
		"notes":        sub.Notes,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write report field %s: %w", name, err)
		}
	}
	if sub.MileageMiles != nil {
		if err := w.WriteField("mileage_miles", strconv.FormatFloat(*sub.MileageMiles, 'f', -1, 64)); err != nil {
			return fmt.Errorf("write report field mileage_miles: %w", err)
		}
	}
	if sub.MileageRate != nil {
		if err := w.WriteField("mileage_rate", strconv.FormatFloat(*sub.MileageRate, 'f', -1, 64)); err != nil {
			return fmt.Errorf("write report field mileage_rate: %w", err)
		}
	}

	for _, att := range sub.Attachments {
		if err := writeAttachment(w, att); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize report form: %w", err)
	}

	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/interpreters/jobs/" + id + "/completion-report",
		raw:    &buf,
		ctype:  w.FormDataContentType(),
	}, nil)
}

func writeAttachment(w *multipart.Writer, att Attachment) error {
	f, err := os.Open(att.Path)
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", att.Path, err)
	}
	defer f.Close()

	name := att.Name
	if name == "" {
		name = filepath.Base(att.Path)
	}
	part, err := w.CreateFormFile("files", name)
	if err != nil {
		return fmt.Errorf("create attachment part %s: %w", name, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy attachment %s: %w", name, err)
	}
	return nil
}

// Earnings fetches the server-side earnings aggregation for a period
// ("week", "month", "year", or "all").
func (c *Client) Earnings(ctx context.Context, period string) (*EarningsSummary, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}

	var summary EarningsSummary
	if err := c.do(ctx, request{method: http.MethodGet, path: "/interpreters/earnings", query: q}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
