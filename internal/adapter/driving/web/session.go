package web

import "net/http"

const sessionCookieName = "credpanel_session"

// sessionID returns the request's session id, setting a new cookie when the
// request has none. Sessions only key per-browser UI state (selection, last
// deletion error); there is no authentication attached to them.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := generateToken()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
