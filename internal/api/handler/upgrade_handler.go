package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/core/ports"
)

// UpgradeHandler lets agents submit upgrade requests and inspect their own.
type UpgradeHandler struct {
	service ports.UpgradeService
}

func NewUpgradeHandler(service ports.UpgradeService) *UpgradeHandler {
	return &UpgradeHandler{service: service}
}

type submitUpgradeRequest struct {
	PlanID           string `json:"plan_id" validate:"required"`
	ReceiptReference string `json:"receipt_reference" validate:"required"`
}

// Submit handles POST /v1/upgrade-requests.
//
// @Summary      Submit an upgrade request
// @Tags         upgrades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitUpgradeRequest  true  "Plan and payment receipt"
// @Success      201   {object}  domain.UpgradeRequest
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/upgrade-requests [post]
func (h *UpgradeHandler) Submit(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req submitUpgradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Submit(c.Request().Context(), ports.SubmitUpgradeInput{
		AgentID:          userID,
		PlanID:           req.PlanID,
		ReceiptReference: req.ReceiptReference,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, request)
}

// ListOwn handles GET /v1/upgrade-requests.
//
// @Summary      List the caller's upgrade requests
// @Tags         upgrades
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UpgradeRequest
// @Failure      401  {object}  map[string]string
// @Router       /v1/upgrade-requests [get]
func (h *UpgradeHandler) ListOwn(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}
