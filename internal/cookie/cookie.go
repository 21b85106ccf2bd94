// Package cookie stores bearer tokens in browser cookies.
//
// Both the identity provider and relying parties keep a raw token in an
// httpOnly cookie that lives exactly as long as the token does.
package cookie

import (
	"net/http"

	"github.com/gorilla/sessions"
	"hawx.me/code/sso-handshake/internal/token"
)

const (
	// Session is the identity provider's own login cookie.
	Session = "sso_session"

	// Auth is the cookie a relying party keeps its token in.
	Auth = "auth_token"
)

// Jar sets and clears token cookies. The zero value is ready to use.
type Jar struct {
	// Secure restricts cookies to https.
	Secure bool
}

func (j Jar) options(maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Set stores raw in the cookie called name.
func (j Jar) Set(w http.ResponseWriter, name, raw string) {
	http.SetCookie(w, sessions.NewCookie(name, raw, j.options(int(token.Lifetime.Seconds()))))
}

// Clear tells the browser to drop the cookie called name.
func (j Jar) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, sessions.NewCookie(name, "", j.options(-1)))
}

// Get returns the value of the cookie called name, or "" if it was not sent.
func Get(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	return c.Value
}
