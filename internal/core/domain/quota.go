package domain

import (
	"math"
	"time"
)

// UsageInWindow counts how many of the given listing creation timestamps fall
// inside the quota window that contains now.
//
// Window membership per unit:
//   - day:   same calendar date as now
//   - week:  ceil((now - createdAt) / 24h) <= 7
//   - month: same calendar month and year as now
//   - year:  same calendar year as now
//   - unlimited: never evaluated, always 0
func UsageInWindow(createdAt []time.Time, unit WindowUnit, now time.Time) int {
	if unit == WindowUnlimited {
		return 0
	}

	count := 0
	for _, ts := range createdAt {
		if inWindow(ts, unit, now) {
			count++
		}
	}
	return count
}

func inWindow(ts time.Time, unit WindowUnit, now time.Time) bool {
	switch unit {
	case WindowDay:
		y1, m1, d1 := ts.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		age := now.Sub(ts)
		if age < 0 {
			return false
		}
		days := int(math.Ceil(age.Hours() / 24))
		return days <= 7
	case WindowMonth:
		return ts.Year() == now.Year() && ts.Month() == now.Month()
	case WindowYear:
		return ts.Year() == now.Year()
	default:
		return false
	}
}

// CanCreateListing decides whether the agent may create one more listing.
// A nil error means allowed; otherwise the error is the denial reason
// (ErrAccountNotApproved or ErrQuotaExceeded). Administrators never create
// listings, so only agent profiles are evaluated here.
func CanCreateListing(profile *AgentProfile, createdAt []time.Time, now time.Time) error {
	if profile.Status != StatusApproved {
		return ErrAccountNotApproved
	}
	if profile.Quota.Unlimited() {
		return nil
	}
	if UsageInWindow(createdAt, profile.Quota.Unit, now) >= profile.Quota.Limit {
		return ErrQuotaExceeded
	}
	return nil
}

// UsagePercentage returns how much of the quota window is consumed, as an
// integer in [0,100]. Unlimited policies always report 0.
func UsagePercentage(profile *AgentProfile, createdAt []time.Time, now time.Time) int {
	if profile.Quota.Unlimited() || profile.Quota.Limit <= 0 {
		return 0
	}
	usage := UsageInWindow(createdAt, profile.Quota.Unit, now)
	pct := int(math.Round(float64(usage) / float64(profile.Quota.Limit) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
