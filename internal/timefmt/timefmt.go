// Package timefmt renders elapsed and countdown durations for display.
package timefmt

import (
	"fmt"
	"math"
	"time"
)

// Clock formats a duration as H:MM:SS when at least an hour, M:SS
// otherwise. Negative durations clamp to zero: a remote start timestamp
// slightly ahead of the local clock shows 0:00, not a negative time.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Elapsed is Clock applied to the time since start.
func Elapsed(start, now time.Time) string {
	return Clock(now.Sub(start))
}

// Until phrases a countdown: whole minutes under an hour, rounded hours
// under a day, whole days (floor) beyond that.
func Until(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	switch {
	case minutes < 60:
		return "in " + plural(minutes, "minute")
	case d < 24*time.Hour:
		return "in " + plural(int(math.Round(d.Hours())), "hour")
	default:
		return "in " + plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
