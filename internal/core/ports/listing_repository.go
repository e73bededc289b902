package ports

import (
	"context"
	"time"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// ListListingsFilter carries all query parameters for listing searches.
// OwnerID is always enforced by the service layer for agents.
type ListListingsFilter struct {
	OwnerID      string    // empty = no filter (admin); non-empty = scoped to owner
	PropertyType string    // optional: filter by property type
	City         string    // optional: filter by city
	Search       string    // optional: partial match on title
	PriceMin     float64   // optional: price >= PriceMin
	PriceMax     float64   // optional: price <= PriceMax
	DateFrom     time.Time // optional: created_at >= DateFrom
	DateTo       time.Time // optional: created_at <= DateTo
	Page         int       // 1-based
	Limit        int       // max rows per page (capped at 100 by service)
}

// ListingRepository defines persistence operations for listings. The
// entitlement core never edits listings, only creates and counts them.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// List returns a page of listings matching filter and the total count.
	List(ctx context.Context, filter ListListingsFilter) ([]*domain.Listing, int64, error)
	// CreationTimes returns the created_at timestamps of every listing owned
	// by the agent. Quota evaluation needs nothing else.
	CreationTimes(ctx context.Context, ownerID string) ([]time.Time, error)
	Delete(ctx context.Context, id string) error
}
