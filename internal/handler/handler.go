// Package handler implements the identity provider's HTTP endpoints.
package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
)

type tmpl interface {
	ExecuteTemplate(w io.Writer, tmpl string, data interface{}) error
}

// isJSON reports whether the request body is declared to be JSON.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))

	return err == nil && mediaType == "application/json"
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
