package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/sportsdesk/teamhub/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, "ok", map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != true || body["message"] != "ok" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
	if ts, _ := body["timestamp"].(string); ts == "" {
		t.Fatalf("expected timestamp")
	}
}

func TestWriteError_ClientErrorsCarryDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("expected success=false")
	}
	if got, _ := body["error"].(string); got != "invalid input: bad payload" {
		t.Fatalf("unexpected error detail %q", got)
	}
}

func TestWriteError_InternalDetailHiddenUnlessExposed(t *testing.T) {
	cause := errors.New("pq: connection refused")

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, cause)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if _, ok := body["error"]; ok {
		t.Fatalf("internal detail leaked: %v", body["error"])
	}
	if body["message"] != internalErrorMessage {
		t.Fatalf("unexpected message %v", body["message"])
	}

	rec = httptest.NewRecorder()
	writeError(withErrorExposure(context.Background(), true), rec, cause)
	body = decodeEnvelope(t, rec)
	if got, _ := body["error"].(string); got != cause.Error() {
		t.Fatalf("expected exposed detail, got %q", got)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: fmt.Errorf("%w: x", usecase.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "unauthorized", err: usecase.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", err: usecase.ErrForbidden, want: http.StatusForbidden},
		{name: "not found", err: fmt.Errorf("%w: team=1", usecase.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("%w: dup", usecase.ErrConflict), want: http.StatusConflict},
		{name: "unavailable", err: fmt.Errorf("%w: store", usecase.ErrDependencyUnavailable), want: http.StatusServiceUnavailable},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.want {
				t.Fatalf("mapError(%v)=%d want=%d", tt.err, got.HTTPStatus, tt.want)
			}
		})
	}
}
