package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"huddle/internal/apperr"
	"huddle/internal/logs"
	"huddle/internal/models"
)

// Recoverer intercepts handler panics, logs the stack and answers 500 in
// the standard envelope. The X-Request-Id header ties the response to the
// log line.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				reqid := GetRequestID(r)
				logs.Logger.Errorf("panic: %v reqid=%s uri=%s method=%s\nstack:\n%s",
					rec, reqid, r.RequestURI, r.Method, string(debug.Stack()))
				models.WriteError(w, apperr.Unexpected(fmt.Errorf("panic: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
