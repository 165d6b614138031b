package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/funnelbase/funnelbase/internal/handler/dto"
	"github.com/funnelbase/funnelbase/internal/metrics"
	"github.com/funnelbase/funnelbase/internal/model"
	"github.com/funnelbase/funnelbase/internal/service"
)

// RedirectHandler resolves offer slugs and logs clicks.
type RedirectHandler struct {
	svc      *service.FunnelService
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(svc *service.FunnelService, recorder metrics.Recorder, logger *slog.Logger) *RedirectHandler {
	return &RedirectHandler{
		svc:      svc,
		recorder: recorder,
		logger:   logger,
	}
}

// Redirect handles GET /api/redirect/{slug}.
//
// The response is a JSON body carrying the destination URL; the caller (the
// landing page) performs the navigation. Resolving the slug writes exactly
// one click record; a failed click write fails the whole request.
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	click := model.Click{
		Slug:      slug,
		LeadID:    optionalQuery(r, "lead_id"),
		IP:        optionalValue(clientIP(r)),
		UserAgent: optionalValue(r.Header.Get("User-Agent")),
	}

	start := time.Now()
	url, cacheHit, err := h.svc.ResolveRedirect(r.Context(), slug, click)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, service.ErrOfferNotFound) {
			h.logger.Info("redirect_not_found",
				slog.String("slug", slug),
				slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
			)
			writeError(w, http.StatusNotFound, "Offer not found")
			return
		}

		h.logger.Error("redirect_error",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.recorder.ObserveRedirectDuration(duration)

	h.logger.Info("redirect_success",
		slog.String("slug", slug),
		slog.Bool("cache_hit", cacheHit),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)

	writeJSON(w, http.StatusOK, dto.RedirectResponse{URL: url})
}

// optionalQuery returns a pointer to the query parameter value, or nil when
// the parameter is absent.
func optionalQuery(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

// optionalValue returns a pointer to s, or nil when s is empty.
func optionalValue(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// clientIP extracts the client IP address from the request.
func clientIP(r *http.Request) string {
	// Check X-Forwarded-For (may contain multiple IPs)
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		for i := 0; i < len(ip); i++ {
			if ip[i] == ',' {
				return ip[:i]
			}
		}
		return ip
	}
	// Check X-Real-IP
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}
