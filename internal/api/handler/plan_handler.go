package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/core/ports"
)

// PlanHandler exposes the plan catalog for the upgrade page.
type PlanHandler struct {
	plans ports.PlanRepository
}

func NewPlanHandler(plans ports.PlanRepository) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// List handles GET /v1/plans.
//
// @Summary      List active plans
// @Tags         plans
// @Produce      json
// @Success      200  {array}  domain.Plan
// @Router       /v1/plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.plans.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}
