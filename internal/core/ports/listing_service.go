package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// CreateListingInput carries all data needed to publish a listing.
type CreateListingInput struct {
	OwnerID      string
	Title        string
	Description  string
	PropertyType string
	Price        float64
	Currency     string
	Street       string
	District     string
	City         string
	ZipCode      string
	Bedrooms     int
	Bathrooms    int
	AreaSqm      float64
}

// ListListingsInput carries the caller identity plus query parameters.
type ListListingsInput struct {
	Role         domain.Role
	UserID       string
	PropertyType string
	City         string
	Search       string
	PriceMin     float64
	PriceMax     float64
	Page         int
	Limit        int
}

// ListListingsResult is a page of listings plus pagination metadata.
type ListListingsResult struct {
	Items      []*domain.Listing
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListingService implements listing creation under quota, retrieval, and
// administrator moderation.
type ListingService interface {
	// Create publishes a listing after running the expiry check and the
	// quota evaluation. Denials surface as domain.ErrAccountNotApproved or
	// domain.ErrQuotaExceeded.
	Create(ctx context.Context, in CreateListingInput) (*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, in ListListingsInput) (*ListListingsResult, error)
	// Remove deletes a listing. Agents may only remove their own;
	// administrators may remove any (moderation).
	Remove(ctx context.Context, id string, role domain.Role, userID string) error
}
