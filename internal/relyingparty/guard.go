// Package relyingparty lets an application delegate sign in to the identity
// provider.
//
// An application never sees passwords and never decodes tokens itself. It
// sends browsers without a token to the identity provider, keeps the token that
// comes back on its callback in a cookie, and asks the identity provider about
// that token on every protected request. Any doubt, including the identity
// provider being unreachable, means the browser is signed out locally and sent
// to sign in again.
package relyingparty

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"hawx.me/code/sso-handshake/internal/cookie"
)

type tmpl interface {
	ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error
}

type verifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// Guard handles the application's side of the handshake.
type Guard struct {
	// IdPURL is the base URL of the identity provider, e.g.
	// "http://localhost:5000".
	IdPURL string

	// CallbackURL is the absolute URL of this application's Callback handler.
	CallbackURL string

	// DashboardPath is where browsers go after the callback, it defaults to
	// "/dashboard".
	DashboardPath string

	Verifier verifier
	Cookies  cookie.Jar
}

// NewGuard returns a Guard that verifies tokens with the identity provider at
// idpURL, giving up on each check after timeout.
func NewGuard(idpURL, callbackURL string, timeout time.Duration) *Guard {
	return &Guard{
		IdPURL:      idpURL,
		CallbackURL: callbackURL,
		Verifier:    NewVerifier(idpURL, nil, timeout),
	}
}

func (g *Guard) dashboard() string {
	if g.DashboardPath == "" {
		return "/dashboard"
	}
	return g.DashboardPath
}

// LoginURL is the identity provider's sign in page, set to return to the
// callback.
func (g *Guard) LoginURL() string {
	return strings.TrimRight(g.IdPURL, "/") + "/login?redirect_uri=" + url.QueryEscape(g.CallbackURL)
}

// LogoutURL is the identity provider's sign out page.
func (g *Guard) LogoutURL() string {
	return strings.TrimRight(g.IdPURL, "/") + "/logout"
}

// Root redirects to the dashboard.
func (g *Guard) Root() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, g.dashboard(), http.StatusFound)
	})
}

// Callback receives the token the identity provider redirects back with,
// stores it, and continues to the dashboard. The token is not checked here, it
// is checked when the dashboard is requested.
func (g *Guard) Callback() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.FormValue("token")
		if raw == "" {
			log.Info("relyingparty/callback no token, redirecting to sign in")
			http.Redirect(w, r, g.LoginURL(), http.StatusFound)
			return
		}

		g.Cookies.Set(w, cookie.Auth, raw)
		http.Redirect(w, r, g.dashboard(), http.StatusFound)
	})
}

// Protect only calls view for requests carrying a token the identity provider
// accepts, passing the user it belongs to. Other requests have their cookie
// cleared and are sent to sign in.
func (g *Guard) Protect(view func(w http.ResponseWriter, r *http.Request, user string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := cookie.Get(r, cookie.Auth)
		if raw == "" {
			http.Redirect(w, r, g.LoginURL(), http.StatusFound)
			return
		}

		user, err := g.Verifier.Verify(r.Context(), raw)
		if err != nil {
			log.WithError(err).Info("relyingparty/protect token not accepted, redirecting to sign in")
			g.Cookies.Clear(w, cookie.Auth)
			http.Redirect(w, r, g.LoginURL(), http.StatusFound)
			return
		}

		view(w, r, user)
	})
}

// Dashboard is the application's protected page. It shows who is signed in and
// links to the identity provider's sign out.
func (g *Guard) Dashboard(name string, templates tmpl) http.Handler {
	return g.Protect(func(w http.ResponseWriter, r *http.Request, user string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if err := templates.ExecuteTemplate(w, "dashboard.gotmpl", dashboardCtx{
			Name:      name,
			User:      user,
			LogoutURL: g.LogoutURL(),
		}); err != nil {
			log.WithError(err).Error("relyingparty/dashboard failed to write template")
		}
	})
}

type dashboardCtx struct {
	Name      string
	User      string
	LogoutURL string
}
