package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/api/metrics"
	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

// deniedResponse tells the client where to send the user instead.
type deniedResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Guard enforces role and account-status requirements on a route group. The
// role and status are resolved live through the entitlement service rather
// than read from the token, so an approval or revocation takes effect within
// the cache staleness bound, not at the next login.
//
// requiredStatuses == nil means the route imposes no status requirement.
// Denials map to HTTP as follows: a sign-in redirect is 401; every other
// redirect is 403 with the target in the body so clients can route the user.
func Guard(entitlements ports.EntitlementService, allowedRoles []domain.Role, requiredStatuses []domain.AgentStatus) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var role domain.Role
			var status domain.AgentStatus

			if userID, _ := c.Get("user_id").(string); userID != "" {
				resolved, err := entitlements.ResolveRole(ctx, userID)
				switch {
				case errors.Is(err, domain.ErrIdentityNotFound):
					// Deleted account with a still-valid token: no session.
				case err != nil:
					return err
				default:
					role = resolved
					status, err = entitlements.ResolveStatus(ctx, userID)
					if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
						return err
					}
				}
			}

			decision := domain.Decide(role, status, allowedRoles, requiredStatuses)
			if decision.Allowed {
				return next(c)
			}

			metrics.AccessDenialsTotal.WithLabelValues(string(decision.Redirect)).Inc()

			if decision.Redirect == domain.TargetSignIn {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return c.JSON(http.StatusForbidden, deniedResponse{
				Error:    "access forbidden",
				Redirect: string(decision.Redirect),
			})
		}
	}
}
