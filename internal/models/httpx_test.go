package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"huddle/internal/apperr"
)

func TestWriteJSONEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "42"})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Error != nil {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apperr.Unexpected(errors.New("pq: connection refused host=10.0.0.3")))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Success || env.Error == nil {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if env.Error.Kind != "unexpected" || env.Error.Message != "unexpected server error" {
		t.Fatalf("internal detail leaked: %s", w.Body.String())
	}
}

func TestWriteErrorTaxonomy(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apperr.Conflict("slot is already filled"))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Error == nil || env.Error.Kind != "conflict" || env.Error.Message != "slot is already filled" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}
