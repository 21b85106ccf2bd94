package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"hawx.me/code/assert"
)

func TestCounters(t *testing.T) {
	assert := assert.Wrap(t)

	m := New()
	m.Verify(Accepted)
	m.Verify(Accepted)
	m.Verify(Revoked)
	m.Login(BadPassword)
	m.Logout(LoggedOut)
	m.Resume(Resumed)

	assert(testutil.ToFloat64(m.Verifications.WithLabelValues(Accepted))).Equal(float64(2))
	assert(testutil.ToFloat64(m.Verifications.WithLabelValues(Revoked))).Equal(float64(1))
	assert(testutil.ToFloat64(m.Verifications.WithLabelValues(Expired))).Equal(float64(0))
	assert(testutil.ToFloat64(m.Logins.WithLabelValues(BadPassword))).Equal(float64(1))
	assert(testutil.ToFloat64(m.Logouts.WithLabelValues(LoggedOut))).Equal(float64(1))
	assert(testutil.ToFloat64(m.Resumes.WithLabelValues(Resumed))).Equal(float64(1))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	m.Login(LoginSuccess)
	m.Verify(Accepted)
	m.Resume(Resumed)
	m.Logout(LoggedOut)
}

func TestHandler(t *testing.T) {
	assert := assert.Wrap(t)

	m := New()
	m.Verify(Expired)

	s := httptest.NewServer(m.Handler())
	defer s.Close()

	resp, err := http.Get(s.URL)
	assert(err).Must.Nil()
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert(resp.StatusCode).Equal(http.StatusOK)
	assert(strings.Contains(string(body), `sso_verifications_total{outcome="expired"} 1`)).True()
}
