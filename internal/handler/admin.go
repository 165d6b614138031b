package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/service"
)

// AdminHandler handles the offer-seeding endpoints.
type AdminHandler struct {
	svc    *service.FunnelService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.FunnelService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		logger: logger,
	}
}

// CreateOffer handles POST /api/admin/offers.
// Error handling matches the lead endpoint: everything is a 500 with the
// error description.
func (h *AdminHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}

	offer := req.ToOffer()

	id, err := h.svc.CreateOffer(r.Context(), offer)
	if err != nil {
		h.logger.Error("offer creation failed",
			slog.String("error", err.Error()),
			slog.String("slug", offer.Slug),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("offer_created",
		slog.String("offer_id", id),
		slog.String("slug", offer.Slug),
		slog.Bool("active", offer.Active),
	)

	writeJSON(w, http.StatusOK, dto.ToOfferResponse(id, offer))
}
