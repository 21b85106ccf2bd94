package relyingparty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a call to the identity provider's verify endpoint.
const DefaultTimeout = 5 * time.Second

var (
	// ErrRejected is returned when the identity provider says a token is not
	// valid.
	ErrRejected = errors.New("token rejected by identity provider")

	// ErrUpstreamUnavailable is returned when the identity provider could not
	// be asked, or gave an answer that could not be understood.
	ErrUpstreamUnavailable = errors.New("identity provider unavailable")
)

// Verifier asks an identity provider whether a token is valid.
type Verifier struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewVerifier returns a Verifier for the identity provider at idpURL. Each
// request is abandoned after timeout, or DefaultTimeout if it is not positive.
func NewVerifier(idpURL string, client *http.Client, timeout time.Duration) *Verifier {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Verifier{
		endpoint: strings.TrimRight(idpURL, "/") + "/verify",
		client:   client,
		timeout:  timeout,
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	User  string `json:"user"`
}

// Verify returns the user raw identifies. The error is ErrRejected if the
// identity provider refused the token, otherwise it wraps
// ErrUpstreamUnavailable.
func (v *Verifier) Verify(ctx context.Context, raw string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	body, err := json.Marshal(verifyRequest{Token: raw})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", v.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: verify responded %s", ErrUpstreamUnavailable, resp.Status)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUpstreamUnavailable, err)
	}

	if !result.Valid || result.User == "" {
		return "", ErrRejected
	}

	return result.User, nil
}
