package domain

import (
	"math"
	"time"
)

// DurationLabel names how long a purchased plan runs.
type DurationLabel string

const (
	DurationMonthly DurationLabel = "monthly"
	DurationYearly  DurationLabel = "yearly"
	DurationCustom  DurationLabel = "custom"
)

// WindowFor computes the subscription window for a plan activated at start.
// Monthly plans run one calendar month, yearly plans one calendar year.
// Custom durations use the caller-supplied explicit end date.
func WindowFor(label DurationLabel, start time.Time, customEnd time.Time) (SubscriptionWindow, error) {
	switch label {
	case DurationMonthly:
		return SubscriptionWindow{StartDate: start, EndDate: start.AddDate(0, 1, 0)}, nil
	case DurationYearly:
		return SubscriptionWindow{StartDate: start, EndDate: start.AddDate(1, 0, 0)}, nil
	case DurationCustom:
		if !customEnd.After(start) {
			return SubscriptionWindow{}, ErrInvalidStateTransition
		}
		return SubscriptionWindow{StartDate: start, EndDate: customEnd}, nil
	default:
		return SubscriptionWindow{}, ErrInvalidStateTransition
	}
}

// DaysUntil returns ceil((end - now) / 24h). Zero or negative means expired.
func DaysUntil(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// ReminderLevel drives renewal-reminder presentation.
type ReminderLevel string

const (
	ReminderNone     ReminderLevel = "none"
	ReminderInfo     ReminderLevel = "info"
	ReminderWarning  ReminderLevel = "warning"
	ReminderCritical ReminderLevel = "critical"
	ReminderExpired  ReminderLevel = "expired"
)

// ReminderFor maps days-until-expiry to a reminder level.
func ReminderFor(days int) ReminderLevel {
	switch {
	case days <= 0:
		return ReminderExpired
	case days <= 3:
		return ReminderCritical
	case days <= 7:
		return ReminderWarning
	case days <= 14:
		return ReminderInfo
	default:
		return ReminderNone
	}
}
