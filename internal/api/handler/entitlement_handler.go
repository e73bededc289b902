package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/core/ports"
)

// EntitlementHandler exposes the agent dashboard view: role, status, tier,
// quota usage, and the subscription outlook.
type EntitlementHandler struct {
	service ports.EntitlementService
}

func NewEntitlementHandler(service ports.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{service: service}
}

type entitlementResponse struct {
	Role            string `json:"role"`
	Status          string `json:"status"`
	Tier            string `json:"tier"`
	QuotaUnit       string `json:"quota_unit"`
	QuotaLimit      int    `json:"quota_limit"`
	Usage           int    `json:"usage"`
	UsagePercentage int    `json:"usage_percentage"`
	DaysUntilExpiry *int   `json:"days_until_expiry,omitempty"`
	Reminder        string `json:"reminder"`
}

// Summary handles GET /v1/entitlement.
//
// @Summary      Current entitlement summary
// @Tags         entitlement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entitlementResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/entitlement [get]
func (h *EntitlementHandler) Summary(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entitlementResponse{
		Role:            string(summary.Role),
		Status:          string(summary.Status),
		Tier:            string(summary.Tier),
		QuotaUnit:       string(summary.Quota.Unit),
		QuotaLimit:      summary.Quota.Limit,
		Usage:           summary.Usage,
		UsagePercentage: summary.UsagePercentage,
		DaysUntilExpiry: summary.DaysUntilExpiry,
		Reminder:        string(summary.Reminder),
	})
}
