// Package metrics counts the outcomes of logins and token verifications.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	Accepted     = "accepted"
	NoToken      = "no_token"
	Invalid      = "invalid"
	Expired      = "expired"
	Revoked      = "revoked"
	Error        = "error"
	Resumed      = "resumed"
	LoggedOut    = "logged_out"
	NotLoggedIn  = "not_logged_in"
	BadPassword  = "bad_credentials"
	LoginSuccess = "success"
)

// Metrics holds the counters exported by the identity provider. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Logins        *prometheus.CounterVec
	Verifications *prometheus.CounterVec
	Resumes       *prometheus.CounterVec
	Logouts       *prometheus.CounterVec
}

// New creates the counters and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_logins_total",
				Help: "Credential checks by outcome",
			},
			[]string{"outcome"},
		),
		Verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_verifications_total",
				Help: "Token verifications by outcome",
			},
			[]string{"outcome"},
		),
		Resumes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_resumes_total",
				Help: "Returning browsers recognised by their session cookie",
			},
			[]string{"outcome"},
		),
		Logouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_logouts_total",
				Help: "Logout requests by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(m.Logins, m.Verifications, m.Resumes, m.Logouts)

	return m
}

// Login counts a credential check with outcome. It does nothing on a nil *Metrics.
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// Verify counts a token verification with outcome. It does nothing on a nil *Metrics.
func (m *Metrics) Verify(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

// Resume counts a returning browser with outcome. It does nothing on a nil *Metrics.
func (m *Metrics) Resume(outcome string) {
	if m == nil {
		return
	}
	m.Resumes.WithLabelValues(outcome).Inc()
}

// Logout counts a logout request with outcome. It does nothing on a nil *Metrics.
func (m *Metrics) Logout(outcome string) {
	if m == nil {
		return
	}
	m.Logouts.WithLabelValues(outcome).Inc()
}

// Handler serves the counters in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
