package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

type approvalService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	upgrades ports.UpgradeRequestRepository
	subs     ports.SubscriptionService
	cache    EntitlementCache
	log      zerolog.Logger
}

// NewApprovalService returns the ApprovalService implementation.
func NewApprovalService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	upgrades ports.UpgradeRequestRepository,
	subs ports.SubscriptionService,
	cache EntitlementCache,
	log zerolog.Logger,
) ports.ApprovalService {
	return &approvalService{
		users:    users,
		profiles: profiles,
		upgrades: upgrades,
		subs:     subs,
		cache:    cache,
		log:      log,
	}
}

func (s *approvalService) ListPendingSignups(ctx context.Context) ([]ports.SignupEntry, error) {
	profiles, err := s.profiles.ListByStatus(ctx, domain.StatusPendingApproval)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.SignupEntry, 0, len(profiles))
	for _, p := range profiles {
		entry := ports.SignupEntry{UserID: p.UserID, Profile: p}
		if user, err := s.users.FindByID(ctx, p.UserID); err == nil {
			entry.Email = user.Email
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ApproveSignup transitions the profile from pending_approval to approved.
// The compare-and-set in the repository guarantees that when two
// administrators race, only one decision lands.
func (s *approvalService) ApproveSignup(ctx context.Context, userID string) error {
	if err := s.profiles.UpdateStatus(ctx, userID, domain.StatusPendingApproval, domain.StatusApproved); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("signup approved")
	return nil
}

// RejectSignup removes both the profile and the identity. Rejection is a
// hard delete: the identity ceases to exist in this system.
func (s *approvalService) RejectSignup(ctx context.Context, userID string) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Status != domain.StatusPendingApproval {
		return domain.ErrInvalidStateTransition
	}

	if err := s.profiles.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("signup rejected, identity removed")
	return nil
}

func (s *approvalService) ListUpgradeRequests(ctx context.Context, state domain.ReviewState) ([]*domain.UpgradeRequest, error) {
	return s.upgrades.ListByState(ctx, state)
}

// ApproveUpgrade marks the request approved and activates the pro
// subscription using the request's own terms. The CAS transition runs first;
// if the profile mutation then fails, the request is compensated back to
// pending so no partial state survives and a retry is safe.
func (s *approvalService) ApproveUpgrade(ctx context.Context, requestID, reviewerID string) (*domain.UpgradeRequest, error) {
	now := time.Now().UTC()

	req, err := s.upgrades.TransitionState(ctx, requestID, domain.ReviewPending, domain.ReviewApproved, reviewerID, now)
	if err != nil {
		return nil, err
	}

	_, err = s.subs.ActivatePro(ctx, ports.ActivateProInput{
		AgentID:         req.AgentID,
		DurationLabel:   req.DurationLabel,
		MonthlyListings: req.MonthlyListings,
		StartDate:       now,
	})
	if err != nil {
		if _, revertErr := s.upgrades.TransitionState(ctx, requestID, domain.ReviewApproved, domain.ReviewPending, "", time.Time{}); revertErr != nil {
			s.log.Error().Err(revertErr).
				Str("request_id", requestID).
				Msg("failed to restore upgrade request to pending, manual reconciliation required")
		}
		return nil, fmt.Errorf("activate pro subscription: %w", err)
	}

	s.invalidate(ctx, req.AgentID)
	s.log.Info().
		Str("request_id", requestID).
		Str("agent_id", req.AgentID).
		Str("reviewer_id", reviewerID).
		Msg("upgrade request approved")

	return req, nil
}

// RejectUpgrade marks the request rejected. Terminal: it never affects the
// agent's profile.
func (s *approvalService) RejectUpgrade(ctx context.Context, requestID, reviewerID string) (*domain.UpgradeRequest, error) {
	req, err := s.upgrades.TransitionState(ctx, requestID, domain.ReviewPending, domain.ReviewRejected, reviewerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", requestID).
		Str("agent_id", req.AgentID).
		Str("reviewer_id", reviewerID).
		Msg("upgrade request rejected")

	return req, nil
}

func (s *approvalService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("entitlement cache invalidation failed")
	}
}
