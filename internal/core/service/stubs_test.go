package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(user)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrIdentityNotFound
	}
	delete(r.users, id)
	return nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.AgentProfile
	updateErr error // if set, Update returns this error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.AgentProfile)}
}

func cloneProfile(p *domain.AgentProfile) *domain.AgentProfile {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Window != nil {
		w := *p.Window
		clone.Window = &w
	}
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.AgentProfile) error {
	r.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.AgentProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) Update(_ context.Context, profile *domain.AgentProfile) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.profiles[profile.UserID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (r *stubProfileRepo) UpdateStatus(_ context.Context, userID string, from, to domain.AgentStatus) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	// Mirrors the CAS filter of the real Mongo repo.
	if p.Status != from {
		return domain.ErrInvalidStateTransition
	}
	p.Status = to
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, userID string) error {
	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

func (r *stubProfileRepo) ListByStatus(_ context.Context, status domain.AgentStatus) ([]*domain.AgentProfile, error) {
	var matched []*domain.AgentProfile
	for _, p := range r.profiles {
		if p.Status == status {
			matched = append(matched, cloneProfile(p))
		}
	}
	return matched, nil
}

type stubListingRepo struct {
	listings  map[string]*domain.Listing
	nextID    int
	createErr error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{listings: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	listing.ID = fmt.Sprintf("listing_%d", r.nextID)
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubListingRepo) List(_ context.Context, f ports.ListListingsFilter) ([]*domain.Listing, int64, error) {
	var matched []*domain.Listing
	for _, l := range r.listings {
		if f.OwnerID != "" && l.OwnerID != f.OwnerID {
			continue
		}
		if f.PropertyType != "" && string(l.PropertyType) != f.PropertyType {
			continue
		}
		if f.City != "" && l.Address.City != f.City {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.PriceMin > 0 && l.Price < f.PriceMin {
			continue
		}
		if f.PriceMax > 0 && l.Price > f.PriceMax {
			continue
		}
		clone := *l
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Listing{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubListingRepo) CreationTimes(_ context.Context, ownerID string) ([]time.Time, error) {
	var times []time.Time
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			times = append(times, l.CreatedAt)
		}
	}
	return times, nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

// seed inserts a listing with the given owner and creation time directly.
func (r *stubListingRepo) seed(ownerID string, createdAt time.Time) {
	r.nextID++
	id := fmt.Sprintf("listing_%d", r.nextID)
	r.listings[id] = &domain.Listing{
		ID:        id,
		OwnerID:   ownerID,
		Title:     "seeded",
		CreatedAt: createdAt,
	}
}

type stubUpgradeRepo struct {
	requests map[string]*domain.UpgradeRequest
	nextID   int
	// beforeTransition runs just before the CAS check, letting tests
	// interleave a competing transition.
	beforeTransition func()
}

func newStubUpgradeRepo() *stubUpgradeRepo {
	return &stubUpgradeRepo{requests: make(map[string]*domain.UpgradeRequest)}
}

func cloneRequest(req *domain.UpgradeRequest) *domain.UpgradeRequest {
	if req == nil {
		return nil
	}
	clone := *req
	if req.ReviewedAt != nil {
		ts := *req.ReviewedAt
		clone.ReviewedAt = &ts
	}
	return &clone
}

func (r *stubUpgradeRepo) Create(_ context.Context, req *domain.UpgradeRequest) (*domain.UpgradeRequest, error) {
	clone := cloneRequest(req)
	r.nextID++
	clone.ID = fmt.Sprintf("upgrade_%d", r.nextID)
	r.requests[clone.ID] = cloneRequest(clone)
	return clone, nil
}

func (r *stubUpgradeRepo) FindByID(_ context.Context, id string) (*domain.UpgradeRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *stubUpgradeRepo) ListByAgent(_ context.Context, agentID string) ([]*domain.UpgradeRequest, error) {
	var matched []*domain.UpgradeRequest
	for _, req := range r.requests {
		if req.AgentID == agentID {
			matched = append(matched, cloneRequest(req))
		}
	}
	return matched, nil
}

func (r *stubUpgradeRepo) ListByState(_ context.Context, state domain.ReviewState) ([]*domain.UpgradeRequest, error) {
	var matched []*domain.UpgradeRequest
	for _, req := range r.requests {
		if state == "" || req.ReviewState == state {
			matched = append(matched, cloneRequest(req))
		}
	}
	return matched, nil
}

func (r *stubUpgradeRepo) TransitionState(_ context.Context, id string, from, to domain.ReviewState, reviewedBy string, reviewedAt time.Time) (*domain.UpgradeRequest, error) {
	if r.beforeTransition != nil {
		hook := r.beforeTransition
		r.beforeTransition = nil
		hook()
	}

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	// Mirrors the CAS filter of the real Mongo repo.
	if req.ReviewState != from {
		return nil, domain.ErrInvalidStateTransition
	}

	req.ReviewState = to
	if to == domain.ReviewPending {
		req.ReviewedBy = ""
		req.ReviewedAt = nil
	} else {
		req.ReviewedBy = reviewedBy
		ts := reviewedAt
		req.ReviewedAt = &ts
	}
	return cloneRequest(req), nil
}

type stubPlanRepo struct {
	plans map[string]*domain.Plan
}

func newStubPlanRepo(plans ...*domain.Plan) *stubPlanRepo {
	r := &stubPlanRepo{plans: make(map[string]*domain.Plan)}
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return r
}

func (r *stubPlanRepo) FindByID(_ context.Context, id string) (*domain.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPlanRepo) ListActive(_ context.Context) ([]*domain.Plan, error) {
	var active []*domain.Plan
	for _, p := range r.plans {
		if p.Active {
			clone := *p
			active = append(active, &clone)
		}
	}
	return active, nil
}

func (r *stubPlanRepo) Seed(_ context.Context, plans []*domain.Plan) error {
	if len(r.plans) > 0 {
		return nil
	}
	for _, p := range plans {
		clone := *p
		r.plans[p.ID] = &clone
	}
	return nil
}

// stubEntitlementCache is an in-memory EntitlementCache with failure injection.
type stubEntitlementCache struct {
	entries map[string]cachedEntitlement
	hits    int
	misses  int
	getErr  error
}

type cachedEntitlement struct {
	role   domain.Role
	status domain.AgentStatus
}

func newStubCache() *stubEntitlementCache {
	return &stubEntitlementCache{entries: make(map[string]cachedEntitlement)}
}

func (c *stubEntitlementCache) Get(_ context.Context, userID string) (domain.Role, domain.AgentStatus, bool, error) {
	if c.getErr != nil {
		return "", "", false, c.getErr
	}
	e, ok := c.entries[userID]
	if !ok {
		c.misses++
		return "", "", false, nil
	}
	c.hits++
	return e.role, e.status, true, nil
}

func (c *stubEntitlementCache) Set(_ context.Context, userID string, role domain.Role, status domain.AgentStatus) error {
	c.entries[userID] = cachedEntitlement{role: role, status: status}
	return nil
}

func (c *stubEntitlementCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Seeding helpers
// ---------------------------------------------------------------------------

func seedAgent(users *stubUserRepo, profiles *stubProfileRepo, id string, status domain.AgentStatus) {
	users.users[id] = &domain.User{
		ID:    id,
		Email: id + "@example.com",
		Role:  domain.RoleAgent,
	}
	profile := domain.NewAgentProfile(id, time.Now().UTC())
	profile.Status = status
	profiles.profiles[id] = profile
}

func seedAdmin(users *stubUserRepo, id string) {
	users.users[id] = &domain.User{
		ID:    id,
		Email: id + "@example.com",
		Role:  domain.RoleAdministrator,
	}
}
