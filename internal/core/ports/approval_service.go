package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// SignupEntry pairs a pending profile with its identity for the review queue.
type SignupEntry struct {
	UserID  string
	Email   string
	Profile *domain.AgentProfile
}

// ApprovalService orchestrates the two administrator review queues: signup
// approval and subscription upgrade approval. Every transition is guarded
// against double-processing; a request already decided surfaces
// domain.ErrInvalidStateTransition rather than being silently ignored.
type ApprovalService interface {
	ListPendingSignups(ctx context.Context) ([]SignupEntry, error)
	// ApproveSignup transitions pending_approval -> approved.
	ApproveSignup(ctx context.Context, userID string) error
	// RejectSignup deletes the profile and the identity. Not a soft state.
	RejectSignup(ctx context.Context, userID string) error

	ListUpgradeRequests(ctx context.Context, state domain.ReviewState) ([]*domain.UpgradeRequest, error)
	// ApproveUpgrade marks the request approved and activates the pro
	// subscription using the request's terms. If the profile mutation fails,
	// the request is restored to pending so a retry is safe.
	ApproveUpgrade(ctx context.Context, requestID, reviewerID string) (*domain.UpgradeRequest, error)
	// RejectUpgrade marks the request rejected. Terminal, no further effect.
	RejectUpgrade(ctx context.Context, requestID, reviewerID string) (*domain.UpgradeRequest, error)
}
