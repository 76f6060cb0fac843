package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/text2kv"
)

// Fixed client-facing messages.
const (
	MessageUnauthorized = "invalid token"
	MessageNotFound     = "File not found"
	MessageInvalidName  = "Invalid object name"
)

var epoch = time.Unix(0, 0).UTC().Format(http.TimeFormat)

// NoCacheHeaders sets the headers every response carries: caching is
// disabled, and the ETag and Last-Modified values change on each response.
func NoCacheHeaders(h http.Header) {
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", epoch)
	h.Set("ETag", `"`+uuid.NewString()+`"`)
	h.Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
}

// WriteResponse writes body with the no-cache headers plus extra, which
// override the defaults.
func WriteResponse(w http.ResponseWriter, code int, body string, extra map[string]string) {
	NoCacheHeaders(w.Header())
	for k, v := range extra {
		w.Header().Set(k, v)
	}
	w.WriteHeader(code)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Debug("failed to write response body", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, text2kv.ErrUnauthorized):
		slog.Warn("request rejected", "error", err)
		WriteResponse(w, http.StatusForbidden, MessageUnauthorized, nil)
	case errors.Is(err, text2kv.ErrNotFound):
		WriteResponse(w, http.StatusNotFound, MessageNotFound, nil)
	case errors.Is(err, text2kv.ErrInvalidInput):
		slog.Warn("invalid request", "error", err)
		WriteResponse(w, http.StatusBadRequest, MessageInvalidName, nil)
	default:
		slog.Error("request error", "error", err)
		WriteResponse(w, http.StatusInternalServerError, "Error: "+err.Error(), nil)
	}
}
