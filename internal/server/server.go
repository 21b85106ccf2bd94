package server

import (
	"io"
	"net/http"

	"hawx.me/code/sso-handshake/internal/auth"
	"hawx.me/code/sso-handshake/internal/cookie"
	"hawx.me/code/sso-handshake/internal/handler"
	"hawx.me/code/sso-handshake/internal/metrics"
	"hawx.me/code/route"
)

type Templates interface {
	ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error
}

// New registers the identity provider's routes with route.Default and returns
// it. It should only be called once per process.
func New(
	service *auth.Service,
	cookies cookie.Jar,
	templates Templates,
	m *metrics.Metrics,
) http.Handler {
	route.Handle("/login", handler.Login(service, cookies, templates))
	route.Handle("/verify", handler.Verify(service))
	route.Handle("/logout", handler.Logout(service, cookies, templates))

	if m != nil {
		route.Handle("/metrics", m.Handler())
	}

	return route.Default
}
