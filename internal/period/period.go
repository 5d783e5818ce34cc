// Package period converts calendar dates into canonical period keys
// used to track recurring-goal completion: one key per day, ISO week,
// or month. Keys for the same frequency sort lexicographically in
// chronological order.
package period

import (
	"fmt"
	"time"

	"github.com/feelfree/ff/internal/models"
)

// Key returns the canonical period key for t at the given frequency:
// daily "2006-01-02", weekly "2006-W02" (ISO 8601), monthly "2006-01".
// Dates are interpreted in t's own location.
func Key(freq models.Frequency, t time.Time) string {
	switch freq {
	case models.FrequencyWeekly:
		// ISO 8601: the week containing the date's Thursday determines
		// the ISO year, so year-boundary dates may belong to the
		// previous or next ISO year (Jan 1 2021 is 2020-W53; Dec 29
		// 2025 is 2026-W01).
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case models.FrequencyMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Now returns the period key for the current moment in local time
func Now(freq models.Frequency) string {
	return Key(freq, time.Now())
}
