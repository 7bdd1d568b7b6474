package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGenerated(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == "" {
		t.Fatal("no request id in context")
	}
	if w.Header().Get("X-Request-Id") != got {
		t.Fatalf("header %q != context %q", w.Header().Get("X-Request-Id"), got)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r)
	}))

	upstream := "0b8f2d6e-4a9c-4f1d-9c3b-2a7e5d1f8c40"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", upstream)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != upstream {
		t.Fatalf("request id = %q, want %q", got, upstream)
	}
}

func TestRequestIDReplacesMalformedUpstream(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid\n\x1b[31m")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == "" || got == "not-a-uuid\n\x1b[31m" {
		t.Fatalf("malformed upstream id should be replaced, got %q", got)
	}
}
