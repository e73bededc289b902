package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// EntitlementSummary is the dashboard view of an agent's current entitlement.
type EntitlementSummary struct {
	Role            domain.Role
	Status          domain.AgentStatus
	Tier            domain.SubscriptionTier
	Quota           domain.QuotaPolicy
	Usage           int
	UsagePercentage int
	// DaysUntilExpiry is nil for free-tier agents.
	DaysUntilExpiry *int
	Reminder        domain.ReminderLevel
}

// EntitlementService resolves an identity to its role and account status,
// serving reads from a session-lifetime cache with a bounded staleness.
type EntitlementService interface {
	// ResolveRole returns the role assigned to the user.
	// Fails with domain.ErrIdentityNotFound when no record exists.
	ResolveRole(ctx context.Context, userID string) (domain.Role, error)
	// ResolveStatus returns the account status, or the empty status for
	// administrators (status is not meaningful for that role).
	ResolveStatus(ctx context.Context, userID string) (domain.AgentStatus, error)
	// Invalidate drops the cached entitlement, forcing the next resolve to
	// hit the store. Called on sign-out and after any approval decision.
	Invalidate(ctx context.Context, userID string) error
	// Summary computes the agent's quota usage and subscription outlook.
	Summary(ctx context.Context, userID string) (*EntitlementSummary, error)
}
