package domain

import "time"

// AgentStatus is the lifecycle state of an agent account. Both states are
// terminal: rejection deletes the profile rather than transitioning it.
type AgentStatus string

const (
	StatusPendingApproval AgentStatus = "pending_approval"
	StatusApproved        AgentStatus = "approved"
)

// SubscriptionTier identifies the billing tier of an agent.
type SubscriptionTier string

const (
	TierFree SubscriptionTier = "free"
	TierPro  SubscriptionTier = "pro"
)

// WindowUnit is the recurring period a listing quota is evaluated against.
type WindowUnit string

const (
	WindowDay       WindowUnit = "day"
	WindowWeek      WindowUnit = "week"
	WindowMonth     WindowUnit = "month"
	WindowYear      WindowUnit = "year"
	WindowUnlimited WindowUnit = "unlimited"
)

// QuotaPolicy is a tagged variant: either unlimited, or windowed with a
// positive limit. The Limit field is meaningless when Unit is WindowUnlimited;
// use the constructors so the invariant holds by construction.
type QuotaPolicy struct {
	Unit  WindowUnit `json:"window_unit" bson:"window_unit"`
	Limit int        `json:"limit,omitempty" bson:"limit,omitempty"`
}

// UnlimitedQuota returns the policy that never denies a listing.
func UnlimitedQuota() QuotaPolicy {
	return QuotaPolicy{Unit: WindowUnlimited}
}

// WindowedQuota returns a policy limited to limit listings per unit.
func WindowedQuota(unit WindowUnit, limit int) QuotaPolicy {
	return QuotaPolicy{Unit: unit, Limit: limit}
}

// DefaultQuotaPolicy is applied to agents without an explicit policy.
func DefaultQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{Unit: WindowMonth, Limit: 5}
}

// Unlimited reports whether the policy never limits listing creation.
func (p QuotaPolicy) Unlimited() bool {
	return p.Unit == WindowUnlimited
}

// SubscriptionWindow is the active period of a pro subscription.
// Present on a profile only while Tier is TierPro.
type SubscriptionWindow struct {
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}

// AgentProfile is the per-agent account record the entitlement engine
// operates on. Tier == TierPro implies Window != nil with EndDate after
// StartDate; Tier == TierFree implies Window == nil.
type AgentProfile struct {
	UserID    string              `json:"user_id" bson:"_id"`
	Status    AgentStatus         `json:"status" bson:"status"`
	Tier      SubscriptionTier    `json:"subscription_tier" bson:"subscription_tier"`
	Window    *SubscriptionWindow `json:"subscription_window,omitempty" bson:"subscription_window,omitempty"`
	Quota     QuotaPolicy         `json:"quota_policy" bson:"quota_policy"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// NewAgentProfile returns the profile a fresh signup starts with: pending
// approval, free tier, default quota.
func NewAgentProfile(userID string, now time.Time) *AgentProfile {
	return &AgentProfile{
		UserID:    userID,
		Status:    StatusPendingApproval,
		Tier:      TierFree,
		Quota:     DefaultQuotaPolicy(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
