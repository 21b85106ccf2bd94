// Package auth implements the identity provider's side of the single sign-on
// handshake: checking credentials, issuing tokens, and deciding whether a
// presented token still identifies a logged in user.
//
// A token is accepted only when it is correctly signed, unexpired, and its user
// has an active session. Logging out removes the session, which revokes every
// token issued to that user without waiting for them to expire.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"hawx.me/code/sso-handshake/internal/credentials"
	"hawx.me/code/sso-handshake/internal/metrics"
	"hawx.me/code/sso-handshake/internal/session"
	"hawx.me/code/sso-handshake/internal/token"
)

var (
	// ErrCredentials is returned by Login when the username or password is wrong.
	ErrCredentials = errors.New("invalid credentials")

	// ErrNoToken is returned by Verify when no token was presented.
	ErrNoToken = errors.New("no token provided")

	// ErrSessionRevoked is returned by Verify for a valid token whose user has
	// logged out.
	ErrSessionRevoked = errors.New("session has been revoked")
)

// Service is the authentication service. It owns the session registry and the
// credential store passed to New.
type Service struct {
	codec    *token.Codec
	sessions session.Registry
	users    credentials.Store
	metrics  *metrics.Metrics
}

// New returns a Service. m may be nil.
func New(codec *token.Codec, sessions session.Registry, users credentials.Store, m *metrics.Metrics) *Service {
	return &Service{
		codec:    codec,
		sessions: sessions,
		users:    users,
		metrics:  m,
	}
}

// Login checks the credentials and, if they match, activates a session for
// username and returns a new token for them. ErrCredentials is returned when
// they do not match, in which case nothing is activated or issued.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.users.Check(username, password)
	if err != nil {
		s.metrics.Login(metrics.Error)
		return "", fmt.Errorf("checking credentials: %w", err)
	}
	if !ok {
		s.metrics.Login(metrics.BadPassword)
		log.WithField("user", username).Info("auth login failed")
		return "", ErrCredentials
	}

	if err := s.sessions.Activate(ctx, username); err != nil {
		s.metrics.Login(metrics.Error)
		return "", fmt.Errorf("activating session: %w", err)
	}

	raw, err := s.codec.Issue(username)
	if err != nil {
		s.metrics.Login(metrics.Error)
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.metrics.Login(metrics.LoginSuccess)
	log.WithField("user", username).Info("auth login successful")
	return raw, nil
}

// Resume recognises a browser that already logged in to the identity provider
// by the token held in its session cookie, and issues a fresh token for the
// same user.
//
// Only the signature and expiry of sessionToken are checked. Session
// membership is not, so a browser can resume after the user logged out
// elsewhere for as long as its cookie token has not expired.
func (s *Service) Resume(sessionToken string) (user, raw string, err error) {
	user, err = s.codec.Verify(sessionToken)
	if err != nil {
		s.metrics.Resume(outcome(err))
		return "", "", err
	}

	raw, err = s.codec.Issue(user)
	if err != nil {
		s.metrics.Resume(metrics.Error)
		return "", "", fmt.Errorf("issuing token: %w", err)
	}

	s.metrics.Resume(metrics.Resumed)
	log.WithField("user", user).Info("auth resumed existing login")
	return user, raw, nil
}

// Verify returns the user that raw was issued to, if it is valid and their
// session is still active.
//
// The error distinguishes why a token was refused (ErrNoToken, token.ErrInvalid,
// token.ErrExpired, ErrSessionRevoked, or a registry failure) for logging only;
// callers should treat any error as "not authenticated".
func (s *Service) Verify(ctx context.Context, raw string) (string, error) {
	user, err := s.verify(ctx, raw)

	entry := log.WithField("outcome", outcome(err))
	if user != "" {
		entry = entry.WithField("user", user)
	}
	if err != nil {
		entry.WithError(err).Info("auth token rejected")
		s.metrics.Verify(outcome(err))
		return "", err
	}

	entry.Info("auth token accepted")
	s.metrics.Verify(metrics.Accepted)
	return user, nil
}

func (s *Service) verify(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrNoToken
	}

	user, err := s.codec.Verify(raw)
	if err != nil {
		return "", err
	}

	active, err := s.sessions.IsActive(ctx, user)
	if err != nil {
		return user, fmt.Errorf("checking session: %w", err)
	}
	if !active {
		return user, ErrSessionRevoked
	}

	return user, nil
}

// Logout ends the session of the user named by sessionToken, returning that
// user. A missing or undecodable token is ignored, ok is then false.
func (s *Service) Logout(ctx context.Context, sessionToken string) (user string, ok bool) {
	if sessionToken == "" {
		s.metrics.Logout(metrics.NotLoggedIn)
		return "", false
	}

	user, err := s.codec.Verify(sessionToken)
	if err != nil {
		s.metrics.Logout(metrics.NotLoggedIn)
		log.WithError(err).Info("auth logout with unusable session token")
		return "", false
	}

	if err := s.sessions.Deactivate(ctx, user); err != nil {
		s.metrics.Logout(metrics.Error)
		log.WithError(err).WithField("user", user).Warn("auth could not deactivate session")
		return user, false
	}

	s.metrics.Logout(metrics.LoggedOut)
	log.WithField("user", user).Info("auth logged out")
	return user, true
}

// RedirectURL appends raw to redirectURI as the "token" query parameter,
// joining with "&" when redirectURI already has a query and "?" otherwise.
func RedirectURL(redirectURI, raw string) string {
	separator := "?"
	if strings.Contains(redirectURI, "?") {
		separator = "&"
	}

	return redirectURI + separator + "token=" + url.QueryEscape(raw)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.Accepted
	case errors.Is(err, ErrNoToken):
		return metrics.NoToken
	case errors.Is(err, token.ErrExpired):
		return metrics.Expired
	case errors.Is(err, token.ErrInvalid):
		return metrics.Invalid
	case errors.Is(err, ErrSessionRevoked):
		return metrics.Revoked
	default:
		return metrics.Error
	}
}
