package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/sportsdesk/teamhub/internal/usecase"
)

const internalErrorMessage = "internal server error"

type responseEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
	// Client reports whether err.Error() is safe to return as is.
	Client bool
}

var responseBuffers bytebufferpool.Pool

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := responseBuffers.Get()
	defer responseBuffers.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_, _ = buf.WriteString(`{"success":false,"message":"internal server error","timestamp":"` + nowRFC3339() + `"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	if id := requestIDFromContext(ctx); id != "" {
		w.Header().Set(requestIDHeader, id)
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: nowRFC3339(),
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	body := responseEnvelope{
		Success:   false,
		Message:   mapped.Message,
		Timestamp: nowRFC3339(),
	}
	if mapped.Client || errorsExposed(ctx) {
		body.Error = err.Error()
	}
	writeJSON(ctx, w, mapped.HTTPStatus, body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success:   false,
		Message:   internalErrorMessage,
		Timestamp: nowRFC3339(),
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: "validation failed", Client: true}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Message: "authentication required", Client: true}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Message: "permission denied", Client: true}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Message: "resource not found", Client: true}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Message: "conflict", Client: true}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Message: "service temporarily unavailable"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: internalErrorMessage}
	}
}
