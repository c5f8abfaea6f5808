package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

type stubVerifier struct {
	principals map[string]admin.Principal
}

func (s stubVerifier) Authenticate(_ context.Context, token string) (admin.Principal, error) {
	p, ok := s.principals[token]
	if !ok {
		return admin.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://scores.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cricket/teams", nil)
	req.Header.Set("Origin", "https://scores.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://scores.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/cricket/teams", nil)
	req.Header.Set("Origin", "https://scores.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://allowed.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cricket/teams", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/api/cricket/teams", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	verifier := stubVerifier{principals: map[string]admin.Principal{
		"good": {ID: "admin-1", Role: admin.RoleSuperAdmin, Permissions: admin.AllPermissions()},
	}}
	var seen admin.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid", header: "bearer good", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/superadmin/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
	if seen.ID != "admin-1" {
		t.Fatalf("expected principal in context, got %+v", seen)
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name      string
		principal *admin.Principal
		want      int
	}{
		{name: "no principal", want: http.StatusUnauthorized},
		{
			name:      "super admin",
			principal: &admin.Principal{ID: "s", Role: admin.RoleSuperAdmin, Permissions: admin.AllPermissions()},
			want:      http.StatusOK,
		},
		{
			name: "sub admin with permission",
			principal: &admin.Principal{ID: "a", Role: admin.RoleSubAdmin, Sport: admin.SportCricket,
				Permissions: admin.Permissions{ManageTeams: true}},
			want: http.StatusOK,
		},
		{
			name: "sub admin without permission",
			principal: &admin.Principal{ID: "b", Role: admin.RoleSubAdmin, Sport: admin.SportCricket,
				Permissions: admin.Permissions{ViewReports: true}},
			want: http.StatusForbidden,
		},
		{
			name: "sub admin of another sport",
			principal: &admin.Principal{ID: "c", Role: admin.RoleSubAdmin, Sport: admin.SportFootball,
				Permissions: admin.AllPermissions()},
			want: http.StatusForbidden,
		},
	}

	handler := RequirePermission(admin.CapManageTeams, admin.SportCricket, okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cricket/teams", nil)
			if tt.principal != nil {
				req = req.WithContext(withPrincipal(req.Context(), *tt.principal))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	handler := RequireSuperAdmin(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/superadmin/subadmins", nil)
	req = req.WithContext(withPrincipal(req.Context(), admin.Principal{
		ID: "a", Role: admin.RoleSubAdmin, Sport: admin.SportCricket, Permissions: admin.AllPermissions(),
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "req-123" || rec.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("expected propagated request id, ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if seen == "" || seen == "req-123" {
		t.Fatalf("expected generated request id, got %q", seen)
	}
}

func TestLimitBody(t *testing.T) {
	var readErr error
	handler := LimitBody(8, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/cricket/teams", strings.NewReader(strings.Repeat("x", 64)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if readErr == nil {
		t.Fatalf("expected oversized body to fail")
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cricket/teams", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != internalErrorMessage {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestRequestLogging_CapturesStatus(t *testing.T) {
	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	verifier := stubVerifier{principals: map[string]admin.Principal{
		"root-token": {ID: "root", Role: admin.RoleSuperAdmin},
	}}
	var seen admin.Principal
	handler := OptionalAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{name: "anonymous", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer root-token", wantStatus: http.StatusOK, wantID: "root"},
		{name: "unknown token", header: "Bearer other", wantStatus: http.StatusUnauthorized},
		{name: "bad scheme", header: "Basic root-token", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = admin.Principal{}
			req := httptest.NewRequest(http.MethodPost, "/api/superadmin/register", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if seen.ID != tc.wantID {
				t.Fatalf("expected principal %q, got %q", tc.wantID, seen.ID)
			}
		})
	}
}
