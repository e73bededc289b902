package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

type stubListingService struct {
	createFn func(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error)
	listFn   func(ctx context.Context, in ports.ListListingsInput) (*ports.ListListingsResult, error)
	removeFn func(ctx context.Context, id string, role domain.Role, userID string) error
}

func (s *stubListingService) Create(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
	return s.createFn(ctx, in)
}

func (s *stubListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return nil, domain.ErrListingNotFound
}

func (s *stubListingService) List(ctx context.Context, in ports.ListListingsInput) (*ports.ListListingsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubListingService) Remove(ctx context.Context, id string, role domain.Role, userID string) error {
	return s.removeFn(ctx, id, role, userID)
}

const validListingBody = `{
	"title": "Bright two-bedroom flat",
	"property_type": "apartment",
	"price": 185000,
	"currency": "USD",
	"address": {"street": "12 Harbour Rd", "city": "Lisbon"},
	"bedrooms": 2,
	"bathrooms": 1,
	"area_sqm": 78
}`

func agentContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "agent_1")
	c.Set("role", "agent")
	return c, rec
}

func TestListingHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubListingService{
		createFn: func(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
			if in.OwnerID != "agent_1" {
				t.Fatalf("owner should come from claims, got %q", in.OwnerID)
			}
			if in.PropertyType != "apartment" || in.City != "Lisbon" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Listing{ID: "listing_1", OwnerID: in.OwnerID, Title: in.Title}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, rec := agentContext(e, http.MethodPost, "/v1/listings", validListingBody)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestListingHandler_Create_QuotaExceeded(t *testing.T) {
	e := newTestEcho()
	stub := &stubListingService{
		createFn: func(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
			return nil, domain.ErrQuotaExceeded
		},
	}
	handler := NewListingHandler(stub)

	c, _ := agentContext(e, http.MethodPost, "/v1/listings", validListingBody)
	err := handler.Create(c)
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestListingHandler_Create_UnknownPropertyType(t *testing.T) {
	e := newTestEcho()
	stub := &stubListingService{
		createFn: func(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewListingHandler(stub)

	body := strings.Replace(validListingBody, "apartment", "castle", 1)
	c, _ := agentContext(e, http.MethodPost, "/v1/listings", body)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestListingHandler_List_PassesQueryParams(t *testing.T) {
	e := newTestEcho()
	stub := &stubListingService{
		listFn: func(ctx context.Context, in ports.ListListingsInput) (*ports.ListListingsResult, error) {
			if in.City != "Lisbon" || in.Page != 2 || in.Limit != 10 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Role != domain.RoleAgent || in.UserID != "agent_1" {
				t.Fatalf("caller identity not forwarded: %+v", in)
			}
			return &ports.ListListingsResult{
				Items: []*domain.Listing{{ID: "listing_1"}},
				Total: 11, Page: 2, Limit: 10, TotalPages: 2,
			}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, rec := agentContext(e, http.MethodGet, "/v1/listings?city=Lisbon&page=2&limit=10", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listListingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 11 || resp.TotalPages != 2 || len(resp.Items) != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestListingHandler_Remove_ForwardsRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubListingService{
		removeFn: func(ctx context.Context, id string, role domain.Role, userID string) error {
			if id != "listing_9" || role != domain.RoleAgent || userID != "agent_1" {
				t.Fatalf("unexpected args: %s %s %s", id, role, userID)
			}
			return nil
		},
	}
	handler := NewListingHandler(stub)

	c, rec := agentContext(e, http.MethodDelete, "/v1/listings/listing_9", "")
	c.SetParamNames("id")
	c.SetParamValues("listing_9")

	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
