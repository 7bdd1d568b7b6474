package models

import (
	"encoding/json"
	"net/http"

	"huddle/internal/apperr"
)

// Envelope is the uniform response body: success flag plus either data
// or an error object, never both.
type Envelope struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// WriteError maps any error onto the envelope using the apperr taxonomy.
// Internal detail of unexpected errors never reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(e))
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Error:   &ErrorPayload{Message: e.Message, Kind: string(e.Kind)},
	})
}
