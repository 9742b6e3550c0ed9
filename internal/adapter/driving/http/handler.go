// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/domain/port/driven"
	"github.com/credpanel/credpanel/internal/queryparams"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	listSvc   *application.ListService
	deleteSvc *application.DeleteService
	defaults  *application.DefaultsProvider
	prefs     driven.PreferenceStore
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	listSvc *application.ListService,
	deleteSvc *application.DeleteService,
	defaults *application.DefaultsProvider,
	prefs driven.PreferenceStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		listSvc:   listSvc,
		deleteSvc: deleteSvc,
		defaults:  defaults,
		prefs:     prefs,
		logger:    logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/credentials", h.ListCredentials)
	mux.HandleFunc("POST /api/v1/credentials/delete", h.DeleteCredentials)
	mux.HandleFunc("GET /api/v1/preferences", h.GetPreferences)
	mux.HandleFunc("PUT /api/v1/preferences", h.PutPreferences)
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// ListCredentials fetches the credential page described by the request's
// query string and returns the merged view model.
func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaults.Config(r.Context())
	q := queryparams.Parse(cfg, r.URL.Query())

	view, err := h.listSvc.Fetch(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to fetch credentials", "page", q.Page, "error", err)
		writeError(w, http.StatusBadGateway, "controller unavailable: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toViewResponse(q, view))
}

// DeleteCredentials removes the credentials named in the request body,
// fanned out one controller delete per id. The response enumerates which
// ids succeeded and which failed; any failure yields 502 with the partial
// result attached.
func (h *Handler) DeleteCredentials(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}

	result, err := h.deleteSvc.Delete(r.Context(), req.IDs)
	if err != nil {
		h.logger.Error("bulk delete failed", "requested", len(req.IDs), "failed", len(result.Failed), "error", err)
		writeJSON(w, http.StatusBadGateway, toDeleteResponse(result))
		return
	}

	writeJSON(w, http.StatusOK, toDeleteResponse(result))
}

// GetPreferences returns the effective view preferences.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaults.Config(r.Context())
	writeJSON(w, http.StatusOK, PreferencesResponse{
		PageSize: cfg.DefaultPageSize,
		OrderBy:  cfg.DefaultOrderBy,
	})
}

// PutPreferences stores new view preferences.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PageSize < 1 || req.OrderBy == "" {
		writeError(w, http.StatusBadRequest, "page_size must be positive and order_by non-empty")
		return
	}

	prefs := model.ViewPreferences{PageSize: req.PageSize, OrderBy: req.OrderBy}
	if err := h.prefs.Save(r.Context(), prefs); err != nil {
		h.logger.Error("failed to save preferences", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{PageSize: prefs.PageSize, OrderBy: prefs.OrderBy})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Busy: application.AnyBusy(h.listSvc, h.deleteSvc)})
}
