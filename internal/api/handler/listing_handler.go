package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/api/metrics"
	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// --- Request / Response types ---

type addressRequest struct {
	Street   string `json:"street" validate:"required"`
	District string `json:"district"`
	City     string `json:"city" validate:"required"`
	ZipCode  string `json:"zip_code"`
}

type createListingRequest struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	PropertyType string         `json:"property_type" validate:"required,oneof=apartment house land commercial"`
	Price        float64        `json:"price" validate:"required,gt=0"`
	Currency     string         `json:"currency" validate:"required,len=3"`
	Address      addressRequest `json:"address"`
	Bedrooms     int            `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int            `json:"bathrooms" validate:"gte=0"`
	AreaSqm      float64        `json:"area_sqm" validate:"gte=0"`
}

type listListingsResponse struct {
	Items      []*domain.Listing `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/listings.
//
// @Summary      Publish a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.service.Create(c.Request().Context(), ports.CreateListingInput{
		OwnerID:      userID,
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Price:        req.Price,
		Currency:     req.Currency,
		Street:       req.Address.Street,
		District:     req.Address.District,
		City:         req.Address.City,
		ZipCode:      req.Address.ZipCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqm:      req.AreaSqm,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			metrics.ListingsDeniedTotal.WithLabelValues("quota_exceeded").Inc()
		case errors.Is(err, domain.ErrAccountNotApproved):
			metrics.ListingsDeniedTotal.WithLabelValues("not_approved").Inc()
		}
		return err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(string(listing.PropertyType)).Inc()
	return c.JSON(http.StatusCreated, listing)
}

// Get handles GET /v1/listings/:id.
//
// @Summary      Get a listing by id
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  map[string]string
// @Router       /v1/listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// List handles GET /v1/listings. Agents see their own listings;
// administrators see the whole catalog.
//
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        property_type  query     string  false  "Filter by property type"
// @Param        city           query     string  false  "Filter by city"
// @Param        search         query     string  false  "Search in titles"
// @Param        price_min      query     number  false  "Minimum price"
// @Param        price_max      query     number  false  "Maximum price"
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Success      200            {object}  listListingsResponse
// @Router       /v1/listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	rawRole, _ := c.Get("role").(string)

	in := ports.ListListingsInput{
		Role:         domain.Role(rawRole),
		UserID:       userID,
		PropertyType: c.QueryParam("property_type"),
		City:         c.QueryParam("city"),
		Search:       c.QueryParam("search"),
	}
	in.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	in.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listListingsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Remove handles DELETE /v1/listings/:id. Agents may only remove their own
// listings; administrators may remove any.
//
// @Summary      Remove a listing
// @Tags         listings
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing id"
// @Success      204  "no content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/listings/{id} [delete]
func (h *ListingHandler) Remove(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), c.Param("id"), role, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
