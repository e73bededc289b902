package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// PlanRepository defines read access to the plan catalog.
type PlanRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
	// ListActive returns plans available for selection, cheapest first.
	ListActive(ctx context.Context) ([]*domain.Plan, error)
	// Seed inserts the given plans if the catalog is empty. Called at startup.
	Seed(ctx context.Context, plans []*domain.Plan) error
}
