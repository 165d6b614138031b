package handler

import (
	"net/http"
	"testing"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/model"
	"github.com/funnelbase/funnelbase/internal/testutil"
)

func TestAdminCreateOffer(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	router := newTestRouter(mem)

	body := `{"slug": "summer-sale", "title": "Summer Sale", "url": "https://example.com/aff", "description": "20% off"}`
	rec := doRequest(t, router, http.MethodPost, "/api/admin/offers", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeBody[dto.OfferResponse](t, rec)
	if resp.ID == "" {
		t.Error("expected a non-empty id")
	}
	if resp.Slug != "summer-sale" {
		t.Errorf("slug = %q, want %q", resp.Slug, "summer-sale")
	}
	// Absent active field defaults to true.
	if !resp.Active {
		t.Error("expected active=true by default")
	}
	if resp.Description == nil || *resp.Description != "20% off" {
		t.Errorf("description = %v, want 20%% off", resp.Description)
	}
	if got := mem.Count(model.CollectionOffer); got != 1 {
		t.Errorf("stored offers = %d, want 1", got)
	}
}

func TestAdminCreateOffer_ExplicitInactive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testutil.NewMemStorage())

	body := `{"slug": "draft", "title": "Draft", "url": "https://example.com/aff", "active": false}`
	rec := doRequest(t, router, http.MethodPost, "/api/admin/offers", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody[dto.OfferResponse](t, rec)
	if resp.Active {
		t.Error("expected active=false")
	}
}

func TestAdminCreateOffer_MissingFields(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	router := newTestRouter(mem)

	body := `{"title": "No Slug", "url": "https://example.com/aff"}`
	rec := doRequest(t, router, http.MethodPost, "/api/admin/offers", body)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeBody[dto.ErrorResponse](t, rec)
	if resp.Detail == "" {
		t.Error("expected a detail message")
	}
	if got := mem.Count(model.CollectionOffer); got != 0 {
		t.Errorf("stored offers = %d, want 0", got)
	}
}

func TestAdminCreateOffer_DuplicateSlugAllowed(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	router := newTestRouter(mem)

	body := `{"slug": "dup", "title": "First", "url": "https://example.com/a"}`
	if rec := doRequest(t, router, http.MethodPost, "/api/admin/offers", body); rec.Code != http.StatusOK {
		t.Fatalf("first create: status = %d", rec.Code)
	}
	body = `{"slug": "dup", "title": "Second", "url": "https://example.com/b"}`
	if rec := doRequest(t, router, http.MethodPost, "/api/admin/offers", body); rec.Code != http.StatusOK {
		t.Fatalf("second create: status = %d", rec.Code)
	}

	if got := mem.Count(model.CollectionOffer); got != 2 {
		t.Errorf("stored offers = %d, want 2", got)
	}
}
