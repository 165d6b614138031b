package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/service"
)

// LeadHandler handles lead capture requests.
type LeadHandler struct {
	svc    *service.FunnelService
	logger *slog.Logger
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(svc *service.FunnelService, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/leads.
//
// Validation failures and store failures both map to a generic 500 with the
// error description; callers cannot distinguish the two (long-standing API
// contract the frontend depends on).
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}

	lead := req.ToLead()

	id, err := h.svc.CaptureLead(r.Context(), lead)
	if err != nil {
		h.logger.Error("lead capture failed",
			slog.String("error", err.Error()),
			slog.String("source", lead.Source),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("lead_captured",
		slog.String("lead_id", id),
		slog.String("source", lead.Source),
	)

	writeJSON(w, http.StatusOK, dto.ToLeadResponse(id, lead))
}
