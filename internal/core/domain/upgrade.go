package domain

import "time"

// ReviewState is the lifecycle state of an upgrade request.
type ReviewState string

const (
	ReviewPending  ReviewState = "pending"
	ReviewApproved ReviewState = "approved"
	ReviewRejected ReviewState = "rejected"
)

// validReviewTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal: a request never leaves either.
var validReviewTransitions = map[ReviewState][]ReviewState{
	ReviewPending: {ReviewApproved, ReviewRejected},
}

// CanTransitionTo reports whether a transition from the current review state
// to next is valid.
func (s ReviewState) CanTransitionTo(next ReviewState) bool {
	for _, allowed := range validReviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// UpgradeRequest is an agent-submitted, administrator-reviewed request to
// move from the free tier to a paid plan. Payment is evidenced by an uploaded
// receipt and reviewed manually; nothing here is verified programmatically.
type UpgradeRequest struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	AgentID          string        `json:"agent_id" bson:"agent_id"`
	PlanID           string        `json:"plan_id" bson:"plan_id"`
	AmountClaimed    float64       `json:"amount_claimed" bson:"amount_claimed"`
	DurationLabel    DurationLabel `json:"duration_label" bson:"duration_label"`
	MonthlyListings  int           `json:"monthly_listings" bson:"monthly_listings"`
	ReceiptReference string        `json:"receipt_reference" bson:"receipt_reference"`
	ReviewState      ReviewState   `json:"review_state" bson:"review_state"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	ReviewedAt       *time.Time    `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy       string        `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
}
