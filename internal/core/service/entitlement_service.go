package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

// EntitlementCache abstracts the session-scoped role/status cache (Redis).
// Entries are TTL-bounded so a stale entitlement never outlives the
// documented staleness bound, and are invalidated explicitly on sign-out
// and after approval decisions.
type EntitlementCache interface {
	Get(ctx context.Context, userID string) (domain.Role, domain.AgentStatus, bool, error)
	Set(ctx context.Context, userID string, role domain.Role, status domain.AgentStatus) error
	Invalidate(ctx context.Context, userID string) error
}

type entitlementService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	listings ports.ListingRepository
	subs     ports.SubscriptionService
	cache    EntitlementCache
	log      zerolog.Logger
}

// NewEntitlementService returns an EntitlementService implementation.
func NewEntitlementService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	listings ports.ListingRepository,
	subs ports.SubscriptionService,
	cache EntitlementCache,
	log zerolog.Logger,
) ports.EntitlementService {
	return &entitlementService{
		users:    users,
		profiles: profiles,
		listings: listings,
		subs:     subs,
		cache:    cache,
		log:      log,
	}
}

func (s *entitlementService) ResolveRole(ctx context.Context, userID string) (domain.Role, error) {
	role, _, err := s.resolve(ctx, userID)
	return role, err
}

func (s *entitlementService) ResolveStatus(ctx context.Context, userID string) (domain.AgentStatus, error) {
	_, status, err := s.resolve(ctx, userID)
	return status, err
}

func (s *entitlementService) Invalidate(ctx context.Context, userID string) error {
	return s.cache.Invalidate(ctx, userID)
}

// resolve serves role and status from the cache, falling back to the stores
// on a miss. Cache failures degrade to a direct read, never to an error.
func (s *entitlementService) resolve(ctx context.Context, userID string) (domain.Role, domain.AgentStatus, error) {
	role, status, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache read failed")
	} else if hit {
		return role, status, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	status = ""
	if user.Role == domain.RoleAgent {
		profile, err := s.profiles.FindByUserID(ctx, userID)
		if err != nil {
			return "", "", err
		}
		status = profile.Status
	}

	if err := s.cache.Set(ctx, userID, user.Role, status); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache write failed")
	}

	return user.Role, status, nil
}

// Summary computes the agent's quota usage and subscription outlook. The
// expiry check runs first so a lapsed subscription is reflected immediately
// rather than waiting for a background sweep.
func (s *entitlementService) Summary(ctx context.Context, userID string) (*ports.EntitlementSummary, error) {
	now := time.Now().UTC()

	role, _, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAgent {
		return nil, domain.ErrProfileNotFound
	}

	if _, err := s.subs.ExpireIfPast(ctx, userID, now); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	createdAt, err := s.listings.CreationTimes(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &ports.EntitlementSummary{
		Role:            role,
		Status:          profile.Status,
		Tier:            profile.Tier,
		Quota:           profile.Quota,
		Usage:           domain.UsageInWindow(createdAt, profile.Quota.Unit, now),
		UsagePercentage: domain.UsagePercentage(profile, createdAt, now),
		Reminder:        domain.ReminderNone,
	}

	days, err := s.subs.DaysUntilExpiry(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if days != nil {
		summary.DaysUntilExpiry = days
		summary.Reminder = domain.ReminderFor(*days)
	}

	return summary, nil
}
