// Package earnings computes the single display amount shown for a job.
//
// The remote API is authoritative for actual payments; this package only
// decides which source field to show and, when none exists, reproduces the
// server's billing arithmetic for an estimate.
package earnings

import (
	"fmt"

	"github.com/terpdesk/terpdesk/internal/api"
)

const (
	// DefaultIntervalMinutes is the billing increment used when a job does
	// not carry one.
	DefaultIntervalMinutes = 15

	// MileageRateCap is the federal mileage rate ceiling in $/mile.
	// User-entered rates are clamped to it before any request is sent.
	MileageRateCap = 0.72
)

// Source records where the displayed amount came from, so screens can
// distinguish an actual payment from an estimate.
type Source string

const (
	// SourcePaid is the authoritative amount the interpreter was paid.
	SourcePaid Source = "paid"
	// SourceBackend is a server-calculated earnings field.
	SourceBackend Source = "backend"
	// SourceComputed is a local estimate from rate and duration.
	SourceComputed Source = "computed"
	// SourceNone means no rate or duration was available; the amount is
	// zero and screens show a "rate not set" explanation instead of
	// omitting the figure.
	SourceNone Source = "none"
)

// Estimate is the display amount and hours for one job.
type Estimate struct {
	Amount float64
	Hours  float64
	Source Source
}

// Paid reports whether the amount is an actual payment rather than an
// estimate.
func (e Estimate) Paid() bool { return e.Source == SourcePaid }

// ForJob produces the display amount for a job using the first applicable
// source: the actual paid amount, a server-calculated field, then a local
// computation from rate and duration.
func ForJob(job *api.Job) Estimate {
	hours := displayHours(job)

	// Actual payment short-circuits everything else.
	if job.Status == api.StatusInterpreterPaid && job.InterpreterPaidAmount != nil {
		return Estimate{Amount: *job.InterpreterPaidAmount, Hours: hours, Source: SourcePaid}
	}
	if job.InterpreterPaidAmount != nil && *job.InterpreterPaidAmount > 0 {
		return Estimate{Amount: *job.InterpreterPaidAmount, Hours: hours, Source: SourcePaid}
	}

	if amount, ok := backendAmount(job); ok {
		return Estimate{Amount: amount, Hours: hours, Source: SourceBackend}
	}

	if amount, ok := computeAmount(job); ok {
		return Estimate{Amount: amount, Hours: hours, Source: SourceComputed}
	}

	return Estimate{Hours: hours, Source: SourceNone}
}

// backendAmount returns the first present, positive server-calculated
// earnings field.
func backendAmount(job *api.Job) (float64, bool) {
	for _, field := range []*float64{
		job.Earnings,
		job.TotalAmount,
		job.CalculatedEarnings,
		job.EstimatedEarnings,
		job.CalculatedTotalPayment,
	} {
		if field != nil && *field > 0 {
			return *field, true
		}
	}
	return 0, false
}

// computeAmount reproduces the billing arithmetic: billable minutes are the
// larger of the reserved block and the actual (or estimated) duration,
// rounded up to the billing increment, priced at the agreed or hourly rate,
// plus any mileage reimbursement.
func computeAmount(job *api.Job) (float64, bool) {
	rate := job.AgreedRate
	if rate == nil {
		rate = job.HourlyRate
	}
	if rate == nil {
		return 0, false
	}

	minutes := billableMinutes(job)
	if minutes <= 0 {
		return 0, false
	}

	rounded := RoundUpToIncrement(minutes, job.InterpreterIntervalMinutes)
	amount := float64(rounded) / 60 * *rate
	if job.MileageReimbursement != nil {
		amount += *job.MileageReimbursement
	}
	return amount, true
}

func billableMinutes(job *api.Job) int {
	duration := job.EstimatedDurationMinutes
	if hasCompletionReport(job) && job.ActualDurationMinutes != nil {
		duration = *job.ActualDurationMinutes
	}
	return max(job.ReservedTotalMinutes(), duration)
}

func hasCompletionReport(job *api.Job) bool {
	return job.CompletionReportSubmitted || job.CompletionReportData != nil
}

// RoundUpToIncrement rounds minutes up to the nearest billing increment.
// Rounding is always up, never down, so display estimates never undercount
// a partially-used increment. A non-positive increment falls back to the
// default.
func RoundUpToIncrement(minutes, increment int) int {
	if increment <= 0 {
		increment = DefaultIntervalMinutes
	}
	if minutes <= 0 {
		return 0
	}
	return (minutes + increment - 1) / increment * increment
}

// ClampMileageRate bounds a user-entered mileage rate to [0, MileageRateCap].
func ClampMileageRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > MileageRateCap {
		return MileageRateCap
	}
	return rate
}

// displayHours follows the same precedence the portal uses for the hours
// figure shown next to earnings.
func displayHours(job *api.Job) float64 {
	if job.CalculatedHours != nil {
		return *job.CalculatedHours
	}
	if job.ActualDurationMinutes != nil {
		return float64(*job.ActualDurationMinutes) / 60
	}
	if job.EstimatedDurationMinutes > 0 {
		return float64(job.EstimatedDurationMinutes) / 60
	}
	if job.DurationHours != nil {
		return *job.DurationHours
	}
	return 0
}

// FormatUSD renders an amount with standard 2-decimal currency formatting.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
