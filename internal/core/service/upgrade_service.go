package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

type upgradeService struct {
	upgrades ports.UpgradeRequestRepository
	plans    ports.PlanRepository
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

// NewUpgradeService returns the UpgradeService implementation.
func NewUpgradeService(
	upgrades ports.UpgradeRequestRepository,
	plans ports.PlanRepository,
	profiles ports.ProfileRepository,
	log zerolog.Logger,
) ports.UpgradeService {
	return &upgradeService{
		upgrades: upgrades,
		plans:    plans,
		profiles: profiles,
		log:      log,
	}
}

// Submit records a pending upgrade request. The plan's terms are copied onto
// the request so the later approval decision is self-contained: the limit
// applied on activation comes from the request, not a catalog lookup.
func (s *upgradeService) Submit(ctx context.Context, in ports.SubmitUpgradeInput) (*domain.UpgradeRequest, error) {
	profile, err := s.profiles.FindByUserID(ctx, in.AgentID)
	if err != nil {
		return nil, err
	}
	if profile.Status != domain.StatusApproved {
		return nil, domain.ErrAccountNotApproved
	}

	plan, err := s.plans.FindByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}

	req := &domain.UpgradeRequest{
		AgentID:          in.AgentID,
		PlanID:           plan.ID,
		AmountClaimed:    plan.Price,
		DurationLabel:    plan.DurationLabel,
		MonthlyListings:  plan.MonthlyListings,
		ReceiptReference: in.ReceiptReference,
		ReviewState:      domain.ReviewPending,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.upgrades.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", created.ID).
		Str("agent_id", in.AgentID).
		Str("plan_id", plan.ID).
		Msg("upgrade request submitted")

	return created, nil
}

func (s *upgradeService) ListOwn(ctx context.Context, agentID string) ([]*domain.UpgradeRequest, error) {
	return s.upgrades.ListByAgent(ctx, agentID)
}
