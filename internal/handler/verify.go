package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"hawx.me/code/mux"
)

type verifyService interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// Verify lets relying parties check a token. It accepts a JSON body of the form
// {"token": "..."} or a form with a "token" field, and always answers with
// {"valid": false} or {"valid": true, "user": "..."}. Why a token was refused
// is not revealed.
func Verify(service verifyService) http.Handler {
	return mux.Method{
		"POST": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := service.Verify(r.Context(), readToken(r))
			if err != nil {
				writeJSON(w, verifyResponse{Valid: false})
				return
			}

			writeJSON(w, verifyResponse{Valid: true, User: user})
		}),
	}
}

// readToken returns the token in the request body, or "" if there is none or
// the body cannot be read.
func readToken(r *http.Request) string {
	if isJSON(r) {
		var v struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			return ""
		}
		return v.Token
	}

	return r.PostFormValue("token")
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	User  string `json:"user,omitempty"`
}
