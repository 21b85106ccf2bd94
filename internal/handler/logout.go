package handler

import (
	"context"
	"net/http"

	"hawx.me/code/mux"
	"hawx.me/code/sso-handshake/internal/cookie"
)

type logoutService interface {
	Logout(ctx context.Context, sessionToken string) (user string, ok bool)
}

// Logout ends the session of whoever the session cookie belongs to, and clears
// the cookie. It always succeeds from the browser's point of view, even if the
// cookie was missing or unusable.
func Logout(service logoutService, cookies cookie.Jar, templates tmpl) http.Handler {
	return mux.Method{
		"GET": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			service.Logout(r.Context(), cookie.Get(r, cookie.Session))

			cookies.Clear(w, cookie.Session)
			render(w, templates, "logout.gotmpl", nil)
		}),
	}
}
