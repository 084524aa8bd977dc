package domain

import "time"

// AuditFields holds the standard creation/update instants carried by the
// long-lived entities. Stored timezone-naive (UTC) in the database.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Periodicity describes how often a recurring obligation repeats.
type Periodicity string

const (
	Monthly   Periodicity = "MONTHLY"
	Quarterly Periodicity = "QUARTERLY"
	Yearly    Periodicity = "YEARLY"
)

// IsValid reports whether the periodicity belongs to the fixed vocabulary.
func (p Periodicity) IsValid() bool {
	switch p {
	case Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// months returns how many months one period spans.
func (p Periodicity) months() int {
	switch p {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 1
	}
}

// AdvanceDate returns the date one period after the given date. The day of
// month is clamped to the target month's length, so advancing Jan 31 by one
// month lands on the last day of February instead of normalizing into March.
func (p Periodicity) AdvanceDate(d time.Time) time.Time {
	return p.AdvanceDateAnchored(d, d.Day())
}

// AdvanceDateAnchored returns the date one period after the given date,
// re-anchored to dueDay. Recurring schedules keep their configured due day
// through short months: a day-31 monthly schedule falls back to Feb 28 and
// returns to the 31st in March. dueDay values outside 1..31 fall back to the
// source date's day.
func (p Periodicity) AdvanceDateAnchored(d time.Time, dueDay int) time.Time {
	if dueDay < 1 || dueDay > 31 {
		dueDay = d.Day()
	}
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location()).
		AddDate(0, p.months(), 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := dueDay
	if day > lastDay {
		day = lastDay
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}
