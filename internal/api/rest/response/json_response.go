// Package response holds the JSON response helpers shared by handlers and
// middleware.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape of every failure response. Error is a stable
// machine-readable kind; Message is for humans.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes a structured error response with the given status code.
func Error(w http.ResponseWriter, statusCode int, kind, message string) {
	JSON(w, statusCode, ErrorBody{Error: kind, Message: message})
}
