package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrKevinOConnell/zencasterbackend/internal/mood"
	"github.com/MrKevinOConnell/zencasterbackend/internal/profile"
	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// HealthFunc reports whether a dependency is reachable.
type HealthFunc func(ctx context.Context) error

// Handler is the thin read-only HTTP layer over the mirrored state. The
// indexer has no interactive write surface; this exists for operators and
// cache-warming clients.
type Handler struct {
	moods    mood.Store
	profiles profile.Store
	ready    HealthFunc
	log      *slog.Logger
}

func NewHandler(moods mood.Store, profiles profile.Store, ready HealthFunc, log *slog.Logger) *Handler {
	return &Handler{moods: moods, profiles: profiles, ready: ready, log: log}
}

// NewRouter wires the public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/mood", h.handleMood)
	r.Get("/profiles/{id}", h.handleProfile)
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) handleMood(w http.ResponseWriter, r *http.Request) {
	m, err := h.moods.Current(r.Context())
	if errors.Is(err, sentinel.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no mood computed yet"})
		return
	}
	if err != nil {
		h.log.Error("mood read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"color":       m.Color,
		"description": m.Description,
	})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	p, err := h.profiles.FindByID(r.Context(), id)
	if errors.Is(err, sentinel.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		h.log.Error("profile read failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":            p.ID,
		"owner":         p.Owner,
		"registered_at": p.RegisteredAt,
		"cast_count":    p.CastCount,
		"last_cast_at":  p.LastCastAt,
		"updated_at":    p.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
