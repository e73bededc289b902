package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type listingService struct {
	listings ports.ListingRepository
	profiles ports.ProfileRepository
	subs     ports.SubscriptionService
	log      zerolog.Logger
}

// NewListingService returns the ListingService implementation.
func NewListingService(
	listings ports.ListingRepository,
	profiles ports.ProfileRepository,
	subs ports.SubscriptionService,
	log zerolog.Logger,
) ports.ListingService {
	return &listingService{
		listings: listings,
		profiles: profiles,
		subs:     subs,
		log:      log,
	}
}

// Create publishes a listing. The subscription expiry check runs first so a
// lapsed pro agent is evaluated against the free quota, then the quota
// decision is made against the agent's listing history.
func (s *listingService) Create(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
	now := time.Now().UTC()

	if _, err := s.subs.ExpireIfPast(ctx, in.OwnerID, now); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	createdAt, err := s.listings.CreationTimes(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCreateListing(profile, createdAt, now); err != nil {
		s.log.Debug().
			Str("owner_id", in.OwnerID).
			Str("reason", err.Error()).
			Msg("listing creation denied")
		return nil, err
	}

	listing := &domain.Listing{
		OwnerID:      in.OwnerID,
		Title:        in.Title,
		Description:  in.Description,
		PropertyType: domain.PropertyType(in.PropertyType),
		Price:        in.Price,
		Currency:     in.Currency,
		Address: domain.ListingAddress{
			Street:   in.Street,
			District: in.District,
			City:     in.City,
			ZipCode:  in.ZipCode,
		},
		Bedrooms:  in.Bedrooms,
		Bathrooms: in.Bathrooms,
		AreaSqm:   in.AreaSqm,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		s.log.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create listing")
		return nil, err
	}

	s.log.Info().
		Str("listing_id", listing.ID).
		Str("owner_id", in.OwnerID).
		Str("property_type", in.PropertyType).
		Msg("listing created")

	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

// List returns a page of listings. Agents are always scoped to their own
// listings; administrators see everything.
func (s *listingService) List(ctx context.Context, in ports.ListListingsInput) (*ports.ListListingsResult, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}

	ownerID := in.UserID
	if in.Role == domain.RoleAdministrator {
		ownerID = ""
	}

	items, total, err := s.listings.List(ctx, ports.ListListingsFilter{
		OwnerID:      ownerID,
		PropertyType: in.PropertyType,
		City:         in.City,
		Search:       in.Search,
		PriceMin:     in.PriceMin,
		PriceMax:     in.PriceMax,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListListingsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Remove deletes a listing. Agents may only remove their own; administrators
// may remove any listing (moderation).
func (s *listingService) Remove(ctx context.Context, id string, role domain.Role, userID string) error {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if role != domain.RoleAdministrator && listing.OwnerID != userID {
		return domain.ErrForbidden
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().
		Str("listing_id", id).
		Str("removed_by", userID).
		Str("role", string(role)).
		Msg("listing removed")

	return nil
}
