package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// SubmitUpgradeInput is an agent's claim of payment for a plan. The receipt
// is reviewed manually by an administrator; nothing is verified here.
type SubmitUpgradeInput struct {
	AgentID          string
	PlanID           string
	ReceiptReference string
}

// UpgradeService lets agents submit and inspect their upgrade requests.
type UpgradeService interface {
	// Submit records a pending upgrade request, copying the plan's terms
	// (amount, duration, monthly listings) into the request so later
	// approval is self-contained.
	Submit(ctx context.Context, in SubmitUpgradeInput) (*domain.UpgradeRequest, error)
	ListOwn(ctx context.Context, agentID string) ([]*domain.UpgradeRequest, error)
}
