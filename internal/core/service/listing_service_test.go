package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

type listingFixture struct {
	users    *stubUserRepo
	profiles *stubProfileRepo
	listings *stubListingRepo
	svc      ports.ListingService
}

func newListingFixture() *listingFixture {
	users := newStubUserRepo()
	profiles := newStubProfileRepo()
	listings := newStubListingRepo()
	subs := NewSubscriptionService(profiles, discardLogger)
	return &listingFixture{
		users:    users,
		profiles: profiles,
		listings: listings,
		svc:      NewListingService(listings, profiles, subs, discardLogger),
	}
}

func minimalListingInput(ownerID string) ports.CreateListingInput {
	return ports.CreateListingInput{
		OwnerID:      ownerID,
		Title:        "Sunny two-bedroom apartment",
		Description:  "Close to the city center",
		PropertyType: "apartment",
		Price:        185000,
		Currency:     "EUR",
		Street:       "Calle Mayor 5",
		District:     "Centro",
		City:         "Madrid",
		ZipCode:      "28013",
		Bedrooms:     2,
		Bathrooms:    1,
		AreaSqm:      78,
	}
}

func TestListingService_Create_Success(t *testing.T) {
	f := newListingFixture()
	seedAgent(f.users, f.profiles, "agent_1", domain.StatusApproved)

	listing, err := f.svc.Create(context.Background(), minimalListingInput("agent_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.ID == "" {
		t.Error("expected listing id assigned")
	}
	if listing.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
	if listing.OwnerID != "agent_1" {
		t.Errorf("expected owner agent_1, got %s", listing.OwnerID)
	}
}

func TestListingService_Create_PendingAccountDenied(t *testing.T) {
	f := newListingFixture()
	seedAgent(f.users, f.profiles, "agent_1", domain.StatusPendingApproval)

	_, err := f.svc.Create(context.Background(), minimalListingInput("agent_1"))
	if !errors.Is(err, domain.ErrAccountNotApproved) {
		t.Fatalf("expected ErrAccountNotApproved, got %v", err)
	}
	if len(f.listings.listings) != 0 {
		t.Error("denied creation must not persist a listing")
	}
}

func TestListingService_Create_QuotaExceeded(t *testing.T) {
	f := newListingFixture()
	seedAgent(f.users, f.profiles, "agent_1", domain.StatusApproved)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		f.listings.seed("agent_1", now.Add(-time.Duration(i+1)*time.Hour))
	}

	_, err := f.svc.Create(context.Background(), minimalListingInput("agent_1"))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

// A lapsed pro subscription is expired on the way in, so the free quota
// applies to the creation attempt.
func TestListingService_Create_ExpiresLapsedProFirst(t *testing.T) {
	f := newListingFixture()
	seedAgent(f.users, f.profiles, "agent_1", domain.StatusApproved)

	profile, _ := f.profiles.FindByUserID(context.Background(), "agent_1")
	profile.Tier = domain.TierPro
	profile.Window = &domain.SubscriptionWindow{
		StartDate: time.Now().UTC().AddDate(0, -2, 0),
		EndDate:   time.Now().UTC().AddDate(0, -1, 0),
	}
	profile.Quota = domain.WindowedQuota(domain.WindowMonth, 50)
	f.profiles.profiles["agent_1"] = profile

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		f.listings.seed("agent_1", now.Add(-time.Duration(i+1)*time.Hour))
	}

	// 5 listings this month: fine under the stale pro quota of 50, but the
	// expiry check downgrades to the free default of 5 first.
	_, err := f.svc.Create(context.Background(), minimalListingInput("agent_1"))
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded after downgrade, got %v", err)
	}

	stored, _ := f.profiles.FindByUserID(context.Background(), "agent_1")
	if stored.Tier != domain.TierFree {
		t.Errorf("expected downgraded profile, got tier %s", stored.Tier)
	}
}

func TestListingService_List_AgentScopedToOwn(t *testing.T) {
	f := newListingFixture()
	now := time.Now().UTC()
	f.listings.seed("agent_1", now)
	f.listings.seed("agent_2", now)

	res, err := f.svc.List(context.Background(), ports.ListListingsInput{
		Role:   domain.RoleAgent,
		UserID: "agent_1",
		Page:   1,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if res.Total != 1 {
		t.Errorf("agent: expected 1 listing, got %d", res.Total)
	}
}

func TestListingService_List_AdminSeesAll(t *testing.T) {
	f := newListingFixture()
	now := time.Now().UTC()
	f.listings.seed("agent_1", now)
	f.listings.seed("agent_2", now)

	res, err := f.svc.List(context.Background(), ports.ListListingsInput{
		Role:   domain.RoleAdministrator,
		UserID: "admin_1",
		Page:   1,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("admin: expected 2 listings, got %d", res.Total)
	}
}

func TestListingService_List_PaginationDefaults(t *testing.T) {
	f := newListingFixture()

	res, err := f.svc.List(context.Background(), ports.ListListingsInput{
		Role: domain.RoleAdministrator,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if res.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", res.Limit)
	}
	if res.Page != 1 {
		t.Errorf("expected default page 1, got %d", res.Page)
	}

	res, _ = f.svc.List(context.Background(), ports.ListListingsInput{
		Role:  domain.RoleAdministrator,
		Limit: 999,
	})
	if res.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", res.Limit)
	}
}

func TestListingService_Remove_OwnershipRules(t *testing.T) {
	f := newListingFixture()
	now := time.Now().UTC()
	f.listings.seed("agent_1", now)

	var listingID string
	for id := range f.listings.listings {
		listingID = id
	}

	// Another agent may not remove it.
	err := f.svc.Remove(context.Background(), listingID, domain.RoleAgent, "agent_2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// An administrator may (moderation).
	if err := f.svc.Remove(context.Background(), listingID, domain.RoleAdministrator, "admin_1"); err != nil {
		t.Fatalf("admin removal failed: %v", err)
	}
	if len(f.listings.listings) != 0 {
		t.Error("expected listing removed")
	}
}

func TestListingService_Remove_OwnListing(t *testing.T) {
	f := newListingFixture()
	f.listings.seed("agent_1", time.Now().UTC())

	var listingID string
	for id := range f.listings.listings {
		listingID = id
	}

	if err := f.svc.Remove(context.Background(), listingID, domain.RoleAgent, "agent_1"); err != nil {
		t.Fatalf("owner removal failed: %v", err)
	}
}
