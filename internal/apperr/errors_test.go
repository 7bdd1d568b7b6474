package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad window"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("wrong role"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("slot is already filled"), http.StatusConflict},
		{Unexpected(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("some raw error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestFromWrapsUnknownAsUnexpected(t *testing.T) {
	cause := errors.New("connection refused")
	e := From(fmt.Errorf("query failed: %w", cause))
	if e.Kind != KindUnexpected {
		t.Fatalf("kind = %s, want unexpected", e.Kind)
	}
	// client-safe message, full cause retained for logging
	if e.Message != "unexpected server error" {
		t.Fatalf("message = %q", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Fatal("cause lost in wrapping")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	if !errors.Is(NotFound("booking not found"), NotFound("")) {
		t.Fatal("same-kind errors must match")
	}
	if errors.Is(NotFound("x"), Conflict("")) {
		t.Fatal("different kinds must not match")
	}
	wrapped := fmt.Errorf("op: %w", Conflict("slot is already filled"))
	if !errors.Is(wrapped, Conflict("")) {
		t.Fatal("wrapped taxonomy error must still match")
	}
}
