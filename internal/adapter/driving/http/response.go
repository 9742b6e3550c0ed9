package httphandler

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/credpanel/credpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// CredentialResponse is the JSON representation of one credential row.
type CredentialResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at"`
}

// ViewResponse is the JSON representation of the credential list view model.
type ViewResponse struct {
	Credentials     []CredentialResponse `json:"credentials"`
	CredentialCount int                  `json:"credential_count"`
	Actions         []string             `json:"actions"`
	CanAdd          bool                 `json:"can_add"`
	Page            int                  `json:"page"`
	PageSize        int                  `json:"page_size"`
	OrderBy         string               `json:"order_by"`
}

// DeleteRequest is the JSON body for the bulk delete endpoint.
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteResponse is the JSON representation of a bulk delete outcome.
type DeleteResponse struct {
	Deleted []string              `json:"deleted"`
	Failed  []DeleteFailureDetail `json:"failed"`
	OK      bool                  `json:"ok"`
}

// DeleteFailureDetail names one credential that could not be deleted.
type DeleteFailureDetail struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// PreferencesRequest is the JSON body for the preferences endpoint.
type PreferencesRequest struct {
	PageSize int    `json:"page_size"`
	OrderBy  string `json:"order_by"`
}

// PreferencesResponse is the JSON representation of the view preferences.
type PreferencesResponse struct {
	PageSize int    `json:"page_size"`
	OrderBy  string `json:"order_by"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Busy   bool   `json:"busy"`
}

// toCredentialResponse converts a domain Credential to its JSON representation.
func toCredentialResponse(c model.Credential) CredentialResponse {
	return CredentialResponse{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        c.Kind,
		Description: c.Description,
		Notes:       c.Notes,
		CreatedAt:   formatTime(c.CreatedAt),
		ModifiedAt:  formatTime(c.ModifiedAt),
	}
}

// toViewResponse converts the merged view model plus its query descriptor
// to the JSON representation.
func toViewResponse(q model.Query, view *model.CredentialView) ViewResponse {
	creds := make([]CredentialResponse, 0, len(view.Credentials))
	for _, c := range view.Credentials {
		creds = append(creds, toCredentialResponse(c))
	}

	verbs := make([]string, 0, len(view.Actions))
	for verb := range view.Actions {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)

	return ViewResponse{
		Credentials:     creds,
		CredentialCount: view.Count,
		Actions:         verbs,
		CanAdd:          view.Actions.CanCreate(),
		Page:            q.Page,
		PageSize:        q.PageSize,
		OrderBy:         q.OrderBy,
	}
}

// toDeleteResponse converts a bulk delete result to its JSON representation.
func toDeleteResponse(r model.BulkDeleteResult) DeleteResponse {
	failed := make([]DeleteFailureDetail, 0, len(r.Failed))
	for _, f := range r.Failed {
		failed = append(failed, DeleteFailureDetail{ID: f.ID, Reason: f.Reason})
	}

	return DeleteResponse{
		Deleted: r.Deleted,
		Failed:  failed,
		OK:      r.OK(),
	}
}

// formatTime renders a timestamp as RFC3339, or empty for the zero value
// (the controller omits timestamps on some credential kinds).
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
