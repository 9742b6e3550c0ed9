// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/credpanel/credpanel/internal/adapter/driving/web/views"
	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/queryparams"
)

// Handler is the web GUI driving adapter that serves HTML via templ
// components. UI state that survives a page load (selection, last deletion
// error) is keyed by the session cookie; everything else derives from the
// URL query string on each request.
type Handler struct {
	listSvc    *application.ListService
	deleteSvc  *application.DeleteService
	selections *application.SelectionStore
	defaults   *application.DefaultsProvider
	logger     *slog.Logger

	mu         sync.Mutex
	lastDelete map[string]string // session id -> detail of last failed deletion
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	listSvc *application.ListService,
	deleteSvc *application.DeleteService,
	selections *application.SelectionStore,
	defaults *application.DefaultsProvider,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		listSvc:    listSvc,
		deleteSvc:  deleteSvc,
		selections: selections,
		defaults:   defaults,
		logger:     logger,
		lastDelete: make(map[string]string),
	}
}

// CredentialList renders the credential list page for the query described
// by the URL. A fetch failure renders the page with the content error in
// place of the list; a pending deletion error opens the modal.
func (h *Handler) CredentialList(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	csrf := csrfToken(w, r)
	sel := h.selections.Get(sid)

	cfg := h.defaults.Config(r.Context())
	q := queryparams.Parse(cfg, r.URL.Query())

	contentErr := ""
	view, err := h.listSvc.Fetch(r.Context(), q)
	if err != nil {
		h.logger.Error("credential list fetch failed", "page", q.Page, "error", err)
		contentErr = err.Error()
	} else {
		sel.Prune(view.Credentials)
	}

	busy := application.AnyBusy(h.listSvc, h.deleteSvc)
	m := toListViewModel(cfg, q, view, sel, busy, csrf, contentErr, h.pendingDeleteError(sid))

	page := views.CredentialsPage(m)
	layout := views.Layout("Credentials", page)

	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render credential list", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// ToggleSelect flips a single credential's selection and redirects back to
// the list page the form was rendered on.
func (h *Handler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	sid, cfg, q, ok := h.beginAction(w, r)
	if !ok {
		return
	}

	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "missing credential id", http.StatusBadRequest)
		return
	}

	h.selections.Get(sid).Toggle(id)
	h.redirectToList(w, r, cfg, q)
}

// SelectAll selects every credential on the acting session's page, or
// clears the selection when everything is already selected. The page is
// resolved from the query the form carried, never from the shared view
// snapshot: another session may have fetched a different page since this
// one rendered, and select-all must only ever capture rows this session
// was shown.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	sid, cfg, q, ok := h.beginAction(w, r)
	if !ok {
		return
	}

	sel := h.selections.Get(sid)

	loaded, err := h.sessionPage(r, q)
	if err != nil {
		h.logger.Error("select all: page fetch failed", "page", q.Page, "error", err)
		h.redirectToList(w, r, cfg, q)
		return
	}

	if sel.AllSelected(loaded) {
		sel.Clear()
	} else {
		sel.SelectAll(loaded)
	}

	h.redirectToList(w, r, cfg, q)
}

// DeleteSelected removes every selected credential. On full success the
// selection is cleared and the redirect applies the pagination correction
// (previous page when the whole visible page was deleted). On any failure
// the deletion error is stored for the session so the next render opens
// the modal; successfully deleted ids leave the selection, failed ones
// stay selected.
func (h *Handler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	sid, cfg, q, ok := h.beginAction(w, r)
	if !ok {
		return
	}

	sel := h.selections.Get(sid)
	ids := sel.IDs()
	if len(ids) == 0 {
		h.redirectToList(w, r, cfg, q)
		return
	}

	// The loaded count feeds the pagination correction and must describe
	// this session's page, not whichever page was fetched last process-wide.
	loaded := 0
	if creds, err := h.sessionPage(r, q); err == nil {
		loaded = len(creds)
	}

	result, err := h.deleteSvc.Delete(r.Context(), ids)
	if err != nil {
		h.logger.Error("bulk delete failed",
			"requested", len(ids), "deleted", len(result.Deleted), "failed", len(result.Failed), "error", err)

		h.setDeleteError(sid, err.Error())
		for _, id := range result.Deleted {
			if sel.Contains(id) {
				sel.Toggle(id)
			}
		}
		h.redirectToList(w, r, cfg, q)
		return
	}

	h.logger.Info("bulk delete complete", "deleted", len(result.Deleted))
	sel.Clear()

	next, _ := application.NextQueryAfterDelete(q, len(ids), loaded)
	h.redirectToList(w, r, cfg, next)
}

// DismissError clears the session's pending deletion error and redirects
// back to the list.
func (h *Handler) DismissError(w http.ResponseWriter, r *http.Request) {
	sid, cfg, q, ok := h.beginAction(w, r)
	if !ok {
		return
	}

	h.clearDeleteError(sid)
	h.redirectToList(w, r, cfg, q)
}

// sessionPage fetches the credentials on the page described by q, i.e. the
// rows the acting session is looking at. Mutation handlers resolve loaded
// rows this way; ListService.Current is a process-wide snapshot and may
// hold another session's page.
func (h *Handler) sessionPage(r *http.Request, q model.Query) ([]model.Credential, error) {
	view, err := h.listSvc.Fetch(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return view.Credentials, nil
}

// beginAction performs the shared preamble of every mutating handler:
// session resolution, CSRF validation, and decoding the list query the
// originating page carried in its form.
func (h *Handler) beginAction(w http.ResponseWriter, r *http.Request) (string, queryparams.Config, model.Query, bool) {
	sid := sessionID(w, r)

	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return "", queryparams.Config{}, model.Query{}, false
	}

	cfg := h.defaults.Config(r.Context())
	q := queryparams.ParseString(cfg, r.FormValue("q"))
	return sid, cfg, q, true
}

func (h *Handler) redirectToList(w http.ResponseWriter, r *http.Request, cfg queryparams.Config, q model.Query) {
	http.Redirect(w, r, listURL(cfg, q), http.StatusSeeOther)
}

func (h *Handler) pendingDeleteError(sid string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastDelete[sid]
}

func (h *Handler) setDeleteError(sid, detail string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastDelete[sid] = detail
}

func (h *Handler) clearDeleteError(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.lastDelete, sid)
}
