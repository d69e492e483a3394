package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"typedrill/internal/utils/helpers"
)

// wantsHTML reports whether the client is a browser form submission
// rather than an API consumer. Browsers send Accept: text/html; fetch
// and API clients ask for JSON.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// respondAuthError answers with a JSON error envelope, or redirects a
// browser to the login page carrying the message as a query parameter.
func respondAuthError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?error="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}
	helpers.Error(w, status, msg)
}

// respondGuardError is respondAuthError's sibling for failures past
// authentication; browsers land back on the text list.
func respondGuardError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/texts?error="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}
	helpers.Error(w, status, msg)
}
