package handler

import (
	"context"
	"io"
	"net/http"

	"hawx.me/code/sso-handshake/internal/auth"
	"hawx.me/code/sso-handshake/internal/credentials"
	"hawx.me/code/sso-handshake/internal/session"
	"hawx.me/code/sso-handshake/internal/token"
)

var testKey = []byte("test-key")

type mockTemplate struct {
	Tmpl string
	Data interface{}
}

func (t *mockTemplate) ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error {
	t.Tmpl = tmpl
	t.Data = data
	return nil
}

func newService() (*auth.Service, session.Registry) {
	sessions := session.NewMemory()

	return auth.New(token.New(testKey), sessions, credentials.Static(credentials.Default()), nil), sessions
}

func isActive(sessions session.Registry, user string) bool {
	ok, _ := sessions.IsActive(context.Background(), user)
	return ok
}

var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func findCookie(resp *http.Response, name string) (*http.Cookie, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}
