package domain

import "time"

// Plan is a catalog entry agents pick when requesting an upgrade. The
// catalog drives display and selection only: the listing limit applied on
// approval comes from the approved request itself, not from this table.
type Plan struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	Name            string        `json:"name" bson:"name"`
	Price           float64       `json:"price" bson:"price"`
	Currency        string        `json:"currency" bson:"currency"`
	DurationLabel   DurationLabel `json:"duration_label" bson:"duration_label"`
	MonthlyListings int           `json:"monthly_listings" bson:"monthly_listings"`
	Active          bool          `json:"active" bson:"active"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}

// DefaultPlans is the catalog seeded into an empty deployment.
func DefaultPlans(now time.Time) []*Plan {
	return []*Plan{
		{
			ID:              "plan_pro_monthly",
			Name:            "Pro Monthly",
			Price:           29.90,
			Currency:        "USD",
			DurationLabel:   DurationMonthly,
			MonthlyListings: 20,
			Active:          true,
			CreatedAt:       now,
		},
		{
			ID:              "plan_pro_yearly",
			Name:            "Pro Yearly",
			Price:           299.00,
			Currency:        "USD",
			DurationLabel:   DurationYearly,
			MonthlyListings: 20,
			Active:          true,
			CreatedAt:       now,
		},
	}
}
