package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// The list lives at /app/credentials; / redirects there. Static assets
// are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, listPath, http.StatusFound)
	})

	// Page routes.
	mux.HandleFunc("GET /app/credentials", h.CredentialList)
	mux.HandleFunc("POST /app/credentials/select", h.ToggleSelect)
	mux.HandleFunc("POST /app/credentials/select-all", h.SelectAll)
	mux.HandleFunc("POST /app/credentials/delete", h.DeleteSelected)
	mux.HandleFunc("POST /app/credentials/dismiss-error", h.DismissError)
}
