package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/api/metrics"
	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

// AdminHandler serves the two administrator review queues: pending agent
// signups and subscription upgrade requests.
type AdminHandler struct {
	approvals ports.ApprovalService
}

func NewAdminHandler(approvals ports.ApprovalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

type signupEntryResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	RequestedAt string `json:"requested_at"`
}

// ListPendingSignups handles GET /v1/admin/signups.
//
// @Summary      List agents awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   signupEntryResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/signups [get]
func (h *AdminHandler) ListPendingSignups(c echo.Context) error {
	entries, err := h.approvals.ListPendingSignups(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]signupEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, signupEntryResponse{
			UserID:      e.UserID,
			Email:       e.Email,
			RequestedAt: e.Profile.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// ApproveSignup handles POST /v1/admin/signups/:user_id/approve.
//
// @Summary      Approve a pending agent
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Agent user id"
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/signups/{user_id}/approve [post]
func (h *AdminHandler) ApproveSignup(c echo.Context) error {
	if err := h.approvals.ApproveSignup(c.Request().Context(), c.Param("user_id")); err != nil {
		return err
	}
	metrics.SignupDecisionsTotal.WithLabelValues("approved").Inc()
	return c.NoContent(http.StatusNoContent)
}

// RejectSignup handles POST /v1/admin/signups/:user_id/reject. Rejection
// deletes the identity and the profile; it is not a reversible state.
//
// @Summary      Reject a pending agent
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Agent user id"
// @Success      204  "no content"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/signups/{user_id}/reject [post]
func (h *AdminHandler) RejectSignup(c echo.Context) error {
	if err := h.approvals.RejectSignup(c.Request().Context(), c.Param("user_id")); err != nil {
		return err
	}
	metrics.SignupDecisionsTotal.WithLabelValues("rejected").Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListUpgradeRequests handles GET /v1/admin/upgrade-requests?state=pending.
//
// @Summary      List upgrade requests by review state
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Review state (default pending)"
// @Success      200    {array}   domain.UpgradeRequest
// @Failure      400    {object}  map[string]string
// @Router       /v1/admin/upgrade-requests [get]
func (h *AdminHandler) ListUpgradeRequests(c echo.Context) error {
	state := domain.ReviewState(c.QueryParam("state"))
	if state == "" {
		state = domain.ReviewPending
	}
	switch state {
	case domain.ReviewPending, domain.ReviewApproved, domain.ReviewRejected:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown review state")
	}

	requests, err := h.approvals.ListUpgradeRequests(c.Request().Context(), state)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ApproveUpgrade handles POST /v1/admin/upgrade-requests/:id/approve.
//
// @Summary      Approve an upgrade request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Request id"
// @Success      200  {object}  domain.UpgradeRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/upgrade-requests/{id}/approve [post]
func (h *AdminHandler) ApproveUpgrade(c echo.Context) error {
	reviewerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	request, err := h.approvals.ApproveUpgrade(c.Request().Context(), c.Param("id"), reviewerID)
	if err != nil {
		return err
	}
	metrics.UpgradeDecisionsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, request)
}

// RejectUpgrade handles POST /v1/admin/upgrade-requests/:id/reject.
//
// @Summary      Reject an upgrade request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Request id"
// @Success      200  {object}  domain.UpgradeRequest
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/admin/upgrade-requests/{id}/reject [post]
func (h *AdminHandler) RejectUpgrade(c echo.Context) error {
	reviewerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	request, err := h.approvals.RejectUpgrade(c.Request().Context(), c.Param("id"), reviewerID)
	if err != nil {
		return err
	}
	metrics.UpgradeDecisionsTotal.WithLabelValues("rejected").Inc()
	return c.JSON(http.StatusOK, request)
}
