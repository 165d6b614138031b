package handler

import (
	"context"
	"net/http"
)

// CollectionLister is the slice of the store the diagnostics probe uses.
type CollectionLister interface {
	ListCollections(ctx context.Context, limit int) ([]string, error)
}

// DiagnosticsHandler serves the /test endpoint used by deploy checks.
type DiagnosticsHandler struct {
	store           CollectionLister // nil when no database is configured
	databaseURLSet  bool
	databaseNameSet bool
}

// NewDiagnosticsHandler creates a DiagnosticsHandler. store may be nil.
func NewDiagnosticsHandler(store CollectionLister, databaseURLSet, databaseNameSet bool) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		store:           store,
		databaseURLSet:  databaseURLSet,
		databaseNameSet: databaseNameSet,
	}
}

// diagResponse keys and value strings are a deploy-tooling contract; the
// marker strings predate this codebase and must not change.
type diagResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Diagnostics handles GET /test.
//
// Always answers 200: every probe failure is rendered as a truncated
// description inside the body, never as an HTTP error.
func (h *DiagnosticsHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	resp := diagResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if h.store != nil {
		resp.Database = "✅ Available"
		resp.ConnectionStatus = "Connected"

		collections, err := h.store.ListCollections(r.Context(), 10)
		if err != nil {
			resp.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			resp.Database = "✅ Connected & Working"
			if collections != nil {
				resp.Collections = collections
			}
		}
	}

	resp.DatabaseURL = setMark(h.databaseURLSet)
	resp.DatabaseName = setMark(h.databaseNameSet)

	writeJSON(w, http.StatusOK, resp)
}

func setMark(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

// truncate caps s at n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
