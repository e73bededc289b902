// Package metrics defines and registers all custom Prometheus metrics for the
// listing portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts successfully published listings.
// Label:
//   - property_type: "apartment", "house", "land", or "commercial"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings published, by property type.",
	},
	[]string{"property_type"},
)

// ListingsDeniedTotal counts listing creations refused by the entitlement
// checks.
// Label:
//   - reason: "quota_exceeded" or "not_approved"
var ListingsDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_denied_total",
		Help:      "Total number of listing creations denied, by reason.",
	},
	[]string{"reason"},
)

// ── Review queue metrics ──────────────────────────────────────────────────────

// SignupDecisionsTotal counts administrator decisions on pending signups.
// Label:
//   - decision: "approved" or "rejected"
var SignupDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_decisions_total",
		Help:      "Total number of signup review decisions, by outcome.",
	},
	[]string{"decision"},
)

// UpgradeDecisionsTotal counts administrator decisions on upgrade requests.
// Label:
//   - decision: "approved" or "rejected"
var UpgradeDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upgrade_decisions_total",
		Help:      "Total number of upgrade review decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Access guard metrics ──────────────────────────────────────────────────────

// AccessDenialsTotal counts requests turned away by the route guard.
// Label:
//   - target: the redirect target the guard chose
//     ("sign-in", "admin-home", "agent-home", "pending-approval")
var AccessDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denials_total",
		Help:      "Total number of requests denied by the access guard, by redirect target.",
	},
	[]string{"target"},
)
