package ports

import (
	"context"
	"time"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// ActivateProInput carries the terms of an approved upgrade. The listing
// limit comes from the approved request, never from the plan catalog.
type ActivateProInput struct {
	AgentID         string
	DurationLabel   domain.DurationLabel
	MonthlyListings int
	StartDate       time.Time
	// CustomEndDate is only consulted when DurationLabel is custom.
	CustomEndDate time.Time
}

// SubscriptionService owns the subscription record per agent: the ledger of
// tier transitions and the expiry clock.
type SubscriptionService interface {
	// ActivatePro upgrades the agent to the pro tier and returns the stored
	// subscription window.
	ActivatePro(ctx context.Context, in ActivateProInput) (*domain.SubscriptionWindow, error)
	// ExpireIfPast downgrades the agent to free when the subscription window
	// has passed. Idempotent; reports whether a transition occurred.
	ExpireIfPast(ctx context.Context, agentID string, now time.Time) (bool, error)
	// DaysUntilExpiry returns ceil((endDate - now) / 1 day), or nil when the
	// agent is not on the pro tier.
	DaysUntilExpiry(ctx context.Context, agentID string, now time.Time) (*int, error)
}
