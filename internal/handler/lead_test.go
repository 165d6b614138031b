package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/model"
	"github.com/funnelbase/funnelbase/internal/testutil"
)

func TestLeadCreate(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	router := newTestRouter(mem)

	body := `{"name": "Jane Doe", "email": "jane@example.com", "source": "newsletter"}`
	rec := doRequest(t, router, http.MethodPost, "/api/leads", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	resp := decodeBody[dto.LeadResponse](t, rec)
	if resp.ID == "" {
		t.Error("expected a non-empty id")
	}
	if resp.Email != "jane@example.com" {
		t.Errorf("email = %q, want %q", resp.Email, "jane@example.com")
	}
	if resp.Source != "newsletter" {
		t.Errorf("source = %q, want %q", resp.Source, "newsletter")
	}
	if got := mem.Count(model.CollectionLead); got != 1 {
		t.Errorf("stored leads = %d, want 1", got)
	}
}

func TestLeadCreate_DefaultSource(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testutil.NewMemStorage())

	body := `{"name": "Jane Doe", "email": "jane@example.com"}`
	rec := doRequest(t, router, http.MethodPost, "/api/leads", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody[dto.LeadResponse](t, rec)
	if resp.Source != model.DefaultLeadSource {
		t.Errorf("source = %q, want %q", resp.Source, model.DefaultLeadSource)
	}
}

func TestLeadCreate_InvalidEmail(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemStorage()
	router := newTestRouter(mem)

	body := `{"name": "Jane Doe", "email": "not-an-email"}`
	rec := doRequest(t, router, http.MethodPost, "/api/leads", body)

	// Validation failures collapse to 500, same as store failures.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeBody[dto.ErrorResponse](t, rec)
	if resp.Detail == "" {
		t.Error("expected a detail message")
	}
	if got := mem.Count(model.CollectionLead); got != 0 {
		t.Errorf("stored leads = %d, want 0", got)
	}
}

func TestLeadCreate_MalformedJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter(testutil.NewMemStorage())

	rec := doRequest(t, router, http.MethodPost, "/api/leads", `{"name":`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	resp := decodeBody[dto.ErrorResponse](t, rec)
	if !strings.HasPrefix(resp.Detail, "invalid request body") {
		t.Errorf("detail = %q, want invalid request body prefix", resp.Detail)
	}
}

func TestLeadCreate_NoStorage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil)

	body := `{"name": "Jane Doe", "email": "jane@example.com"}`
	rec := doRequest(t, router, http.MethodPost, "/api/leads", body)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
