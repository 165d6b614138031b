package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/model"
	"github.com/funnelbase/funnelbase/internal/testutil"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	seedOfferDoc(t, mem, "summer-sale", true)

	rec := doRequest(t, newTestRouter(mem), http.MethodGet, "/api/redirect/summer-sale", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeBody[dto.RedirectResponse](t, rec)
	if resp.URL != "https://example.com/summer-sale" {
		t.Errorf("url = %q, want %q", resp.URL, "https://example.com/summer-sale")
	}

	clicks := mem.Docs(model.CollectionClick)
	if len(clicks) != 1 {
		t.Fatalf("click records = %d, want 1", len(clicks))
	}
	var click model.Click
	if err := clicks[0].Decode(&click); err != nil {
		t.Fatalf("decode click: %v", err)
	}
	if click.Slug != "summer-sale" {
		t.Errorf("click slug = %q, want %q", click.Slug, "summer-sale")
	}
	if click.LeadID != nil {
		t.Errorf("click lead_id = %v, want nil", click.LeadID)
	}
}

func TestRedirect_WithAttribution(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	seedOfferDoc(t, mem, "summer-sale", true)
	router := newTestRouter(mem)

	req := httptest.NewRequest(http.MethodGet, "/api/redirect/summer-sale?lead_id=lead-42", nil)
	req.Header.Set("User-Agent", "funnel-test/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	clicks := mem.Docs(model.CollectionClick)
	if len(clicks) != 1 {
		t.Fatalf("click records = %d, want 1", len(clicks))
	}
	var click model.Click
	if err := clicks[0].Decode(&click); err != nil {
		t.Fatalf("decode click: %v", err)
	}
	if click.LeadID == nil || *click.LeadID != "lead-42" {
		t.Errorf("click lead_id = %v, want lead-42", click.LeadID)
	}
	if click.IP == nil || *click.IP != "203.0.113.9" {
		t.Errorf("click ip = %v, want 203.0.113.9", click.IP)
	}
	if click.UserAgent == nil || *click.UserAgent != "funnel-test/1.0" {
		t.Errorf("click user_agent = %v, want funnel-test/1.0", click.UserAgent)
	}
}

func TestRedirect_UnknownSlug(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	rec := doRequest(t, newTestRouter(mem), http.MethodGet, "/api/redirect/ghost", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	resp := decodeBody[dto.ErrorResponse](t, rec)
	if resp.Detail != "Offer not found" {
		t.Errorf("detail = %q, want %q", resp.Detail, "Offer not found")
	}
	if got := mem.Count(model.CollectionClick); got != 0 {
		t.Errorf("click records = %d, want 0", got)
	}
}

func TestRedirect_InactiveOffer(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	seedOfferDoc(t, mem, "retired", false)

	rec := doRequest(t, newTestRouter(mem), http.MethodGet, "/api/redirect/retired", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRedirect_NoStorage(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(nil), http.MethodGet, "/api/redirect/anything", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeBody[dto.ErrorResponse](t, rec)
	if resp.Detail == "" {
		t.Error("expected a detail message")
	}
}
