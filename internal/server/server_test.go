package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hawx.me/code/assert"
	"hawx.me/code/sso-handshake/internal/auth"
	"hawx.me/code/sso-handshake/internal/cookie"
	"hawx.me/code/sso-handshake/internal/credentials"
	"hawx.me/code/sso-handshake/internal/metrics"
	"hawx.me/code/sso-handshake/internal/session"
	"hawx.me/code/sso-handshake/internal/token"
	"hawx.me/code/sso-handshake/web"
)

var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

type verifyResult struct {
	Valid bool    `json:"valid"`
	User  *string `json:"user"`
}

func verify(t *testing.T, base, raw string) verifyResult {
	body, _ := json.Marshal(map[string]string{"token": raw})

	resp, err := http.Post(base+"/verify", "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var v verifyResult
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

// route.Default is shared, so every check against the assembled server lives
// in this one test.
func TestServer(t *testing.T) {
	assert := assert.Wrap(t)

	templates, err := web.Templates()
	assert(err).Must.Nil()

	m := metrics.New()
	service := auth.New(token.New([]byte("test-key")), session.NewMemory(), credentials.Static(credentials.Default()), m)

	s := httptest.NewServer(New(service, cookie.Jar{}, templates, m))
	defer s.Close()

	// the form
	resp, err := http.Get(s.URL + "/login?redirect_uri=" + url.QueryEscape("http://app/callback"))
	assert(err).Must.Nil()
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert(resp.StatusCode).Equal(http.StatusOK)
	assert(strings.Contains(string(page), `value="http://app/callback"`)).True()

	// bad credentials
	resp, err = http.PostForm(s.URL+"/login", url.Values{
		"username":     {"alice"},
		"password":     {"wrong"},
		"redirect_uri": {"http://app/callback"},
	})
	assert(err).Must.Nil()
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert(strings.Contains(string(page), "Invalid credentials")).True()

	// login
	resp, err = noRedirectClient.PostForm(s.URL+"/login", url.Values{
		"username":     {"alice"},
		"password":     {"pass123"},
		"redirect_uri": {"http://app/callback"},
	})
	assert(err).Must.Nil()
	resp.Body.Close()
	assert(resp.StatusCode).Equal(http.StatusFound)

	location := resp.Header.Get("Location")
	assert(strings.HasPrefix(location, "http://app/callback?token=")).Must.True()

	redirect, _ := url.Parse(location)
	raw := redirect.Query().Get("token")
	assert(strings.Count(raw, ".")).Equal(2)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == cookie.Session {
			sessionCookie = c
		}
	}
	assert(sessionCookie != nil).Must.True()

	v := verify(t, s.URL, raw)
	assert(v.Valid).True()
	if assert(v.User != nil).True() {
		assert(*v.User).Equal("alice")
	}

	// logout
	req, _ := http.NewRequest("GET", s.URL+"/logout", nil)
	req.AddCookie(sessionCookie)
	resp, err = noRedirectClient.Do(req)
	assert(err).Must.Nil()
	resp.Body.Close()
	assert(resp.StatusCode).Equal(http.StatusOK)

	v = verify(t, s.URL, raw)
	assert(v.Valid).False()
	assert(v.User == nil).True()

	// metrics
	resp, err = http.Get(s.URL + "/metrics")
	assert(err).Must.Nil()
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert(strings.Contains(string(page), `sso_logins_total{outcome="success"} 1`)).True()
	assert(strings.Contains(string(page), `sso_verifications_total{outcome="revoked"} 1`)).True()
	assert(strings.Contains(string(page), `sso_logouts_total{outcome="logged_out"} 1`)).True()
}
