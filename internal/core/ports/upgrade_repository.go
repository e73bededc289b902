package ports

import (
	"context"
	"time"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// UpgradeRequestRepository defines persistence operations for upgrade requests.
type UpgradeRequestRepository interface {
	Create(ctx context.Context, req *domain.UpgradeRequest) (*domain.UpgradeRequest, error)
	FindByID(ctx context.Context, id string) (*domain.UpgradeRequest, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.UpgradeRequest, error)
	// ListByState returns requests in the given review state, oldest first
	// (review queues are worked in arrival order). An empty state returns all.
	ListByState(ctx context.Context, state domain.ReviewState) ([]*domain.UpgradeRequest, error)
	// TransitionState applies a compare-and-set on the review state: the
	// update only succeeds when the stored state still equals from. When two
	// administrators race, exactly one call succeeds; the loser gets
	// domain.ErrInvalidStateTransition. domain.ErrRequestNotFound is returned
	// when no request with the id exists at all.
	TransitionState(ctx context.Context, id string, from, to domain.ReviewState, reviewedBy string, reviewedAt time.Time) (*domain.UpgradeRequest, error)
}
