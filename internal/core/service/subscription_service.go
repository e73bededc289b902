package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

type subscriptionService struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

// NewSubscriptionService returns the subscription ledger implementation.
func NewSubscriptionService(profiles ports.ProfileRepository, log zerolog.Logger) ports.SubscriptionService {
	return &subscriptionService{profiles: profiles, log: log}
}

// ActivatePro upgrades the agent to the pro tier: computes the subscription
// window from the duration label, anchors a monthly quota at the window
// start, and persists both on the profile.
func (s *subscriptionService) ActivatePro(ctx context.Context, in ports.ActivateProInput) (*domain.SubscriptionWindow, error) {
	window, err := domain.WindowFor(in.DurationLabel, in.StartDate, in.CustomEndDate)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, in.AgentID)
	if err != nil {
		return nil, err
	}

	profile.Tier = domain.TierPro
	profile.Window = &window
	profile.Quota = domain.WindowedQuota(domain.WindowMonth, in.MonthlyListings)
	profile.UpdatedAt = in.StartDate

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("agent_id", in.AgentID).
		Str("duration", string(in.DurationLabel)).
		Int("monthly_listings", in.MonthlyListings).
		Time("end_date", window.EndDate).
		Msg("pro subscription activated")

	return &window, nil
}

// ExpireIfPast downgrades a lapsed pro subscription back to the free tier.
// Safe to call repeatedly: once downgraded, further calls are no-ops.
func (s *subscriptionService) ExpireIfPast(ctx context.Context, agentID string, now time.Time) (bool, error) {
	profile, err := s.profiles.FindByUserID(ctx, agentID)
	if err != nil {
		return false, err
	}

	if profile.Tier != domain.TierPro || profile.Window == nil {
		return false, nil
	}
	if !now.After(profile.Window.EndDate) {
		return false, nil
	}

	profile.Tier = domain.TierFree
	profile.Window = nil
	profile.Quota = domain.DefaultQuotaPolicy()
	profile.UpdatedAt = now

	if err := s.profiles.Update(ctx, profile); err != nil {
		return false, err
	}

	s.log.Info().Str("agent_id", agentID).Msg("pro subscription expired, downgraded to free")
	return true, nil
}

func (s *subscriptionService) DaysUntilExpiry(ctx context.Context, agentID string, now time.Time) (*int, error) {
	profile, err := s.profiles.FindByUserID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if profile.Tier != domain.TierPro || profile.Window == nil {
		return nil, nil
	}

	days := domain.DaysUntil(profile.Window.EndDate, now)
	return &days, nil
}
