// Package report models the completion-report form and its client-side
// validation. Invalid forms are blocked before any network call.
package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/earnings"
)

// Results accepted by the server for a completion report.
const (
	ResultCompleted = "completed"
	ResultNoShow    = "no_show"
	ResultCancelled = "cancelled"
	ResultPartial   = "partial"
)

var validResults = map[string]bool{
	ResultCompleted: true,
	ResultNoShow:    true,
	ResultCancelled: true,
	ResultPartial:   true,
}

// Form is the completion report as entered by the interpreter.
// Times are local HH:MM strings matching the portal's form fields.
type Form struct {
	Result       string
	PickupTime   string
	DropoffTime  string
	Notes        string
	MileageMiles *float64
	MileageRate  *float64
	Attachments  []string // local file paths
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const timeLayout = "15:04"

// Validate checks the form without touching the network. All failures are
// reported together so the user can fix the form in one pass.
func (f *Form) Validate() error {
	var errs []error

	if f.Result == "" {
		errs = append(errs, &FieldError{Field: "result", Message: "required"})
	} else if !validResults[f.Result] {
		errs = append(errs, &FieldError{Field: "result", Message: fmt.Sprintf("unknown result %q", f.Result)})
	}

	pickup, pickupErr := parseFormTime("pickup_time", f.PickupTime, &errs)
	dropoff, dropoffErr := parseFormTime("dropoff_time", f.DropoffTime, &errs)
	if pickupErr == nil && dropoffErr == nil && !dropoff.After(pickup) {
		errs = append(errs, &FieldError{Field: "dropoff_time", Message: "must be after pickup time"})
	}

	if f.MileageMiles != nil && *f.MileageMiles < 0 {
		errs = append(errs, &FieldError{Field: "mileage_miles", Message: "must not be negative"})
	}
	if f.MileageRate != nil && f.MileageMiles == nil {
		errs = append(errs, &FieldError{Field: "mileage_rate", Message: "set without mileage"})
	}

	for _, path := range f.Attachments {
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, &FieldError{Field: "attachments", Message: fmt.Sprintf("cannot read %s", path)})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func parseFormTime(field, value string, errs *[]error) (time.Time, error) {
	if value == "" {
		err := &FieldError{Field: field, Message: "required"}
		*errs = append(*errs, err)
		return time.Time{}, err
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		fieldErr := &FieldError{Field: field, Message: "must be HH:MM"}
		*errs = append(*errs, fieldErr)
		return time.Time{}, fieldErr
	}
	return t, nil
}

// Submission validates the form and converts it into the wire payload.
// The mileage rate is clamped to the federal ceiling here, so no request
// ever carries a rate above it.
func (f *Form) Submission() (api.CompletionReportSubmission, error) {
	if err := f.Validate(); err != nil {
		return api.CompletionReportSubmission{}, err
	}

	sub := api.CompletionReportSubmission{
		Result:       f.Result,
		PickupTime:   f.PickupTime,
		DropoffTime:  f.DropoffTime,
		Notes:        f.Notes,
		MileageMiles: f.MileageMiles,
	}
	if f.MileageRate != nil {
		clamped := earnings.ClampMileageRate(*f.MileageRate)
		sub.MileageRate = &clamped
	}
	for _, path := range f.Attachments {
		sub.Attachments = append(sub.Attachments, api.Attachment{Path: path})
	}
	return sub, nil
}
