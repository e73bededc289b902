package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// ProfileRepository defines persistence operations for agent profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.AgentProfile) error
	FindByUserID(ctx context.Context, userID string) (*domain.AgentProfile, error)
	// Update persists the subscription fields (tier, window, quota) of an
	// existing profile.
	Update(ctx context.Context, profile *domain.AgentProfile) error
	// UpdateStatus transitions the account status with a compare-and-set on
	// the current value. Returns domain.ErrInvalidStateTransition when the
	// stored status no longer matches from (a concurrent administrator won),
	// domain.ErrProfileNotFound when no profile exists.
	UpdateStatus(ctx context.Context, userID string, from, to domain.AgentStatus) error
	Delete(ctx context.Context, userID string) error
	// ListByStatus returns profiles in the given status, newest first.
	ListByStatus(ctx context.Context, status domain.AgentStatus) ([]*domain.AgentProfile, error)
}
