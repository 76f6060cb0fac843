package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/text2kv"
)

// AuthMiddleware rejects requests whose presented credential does not match
// the gate's token. Rejected requests never reach the store.
func AuthMiddleware(gate *text2kv.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := gate.Presented(r.URL.Path, r.URL.Query())
			if err := gate.Authorize(presented); err != nil {
				HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StoreBoundMiddleware fails every request with ErrStoreUnbound when no
// store is bound.
func StoreBoundMiddleware(bound bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if bound {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			HandleError(w, text2kv.ErrStoreUnbound)
		})
	}
}

// RecoverMiddleware turns a panic into a 500 response.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			HandleError(w, fmt.Errorf("%v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}

// RequestLogMiddleware logs one line per request. The query string is never
// logged, and the token's own path is redacted.
func RequestLogMiddleware(gate *text2kv.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			slog.Info("request",
				"method", r.Method,
				"path", redactPath(r.URL.Path, gate.Token()),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func redactPath(path, token string) string {
	if strings.EqualFold(strings.TrimPrefix(path, "/"), token) {
		return "/[token]"
	}
	return path
}
