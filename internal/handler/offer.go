package handler

import (
	"log/slog"
	"net/http"

	"github.com/funnelbase/funnelbase/internal/service"
)

// OfferHandler serves the public offer listing.
type OfferHandler struct {
	svc    *service.FunnelService
	logger *slog.Logger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(svc *service.FunnelService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/offers.
//
// Only active offers are returned, store identifiers stripped, in store
// order. A stored document that fails the offer schema fails the whole
// request rather than producing a partial listing.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.svc.ListOffers(r.Context())
	if err != nil {
		h.logger.Error("offer listing failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, offers)
}
