package httpapi

import (
	"context"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

type contextKey string

const (
	principalContextKey    contextKey = "auth_principal"
	exposeErrorsContextKey contextKey = "expose_errors"
)

func withPrincipal(ctx context.Context, p admin.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (admin.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(admin.Principal)
	return p, ok
}

// The request id lives in the logging context so every log line carries it.
func withRequestID(ctx context.Context, id string) context.Context {
	return logging.WithRequestID(ctx, id)
}

func requestIDFromContext(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

func withErrorExposure(ctx context.Context, expose bool) context.Context {
	return context.WithValue(ctx, exposeErrorsContextKey, expose)
}

// errorsExposed reports whether internal error detail may reach clients.
func errorsExposed(ctx context.Context) bool {
	expose, _ := ctx.Value(exposeErrorsContextKey).(bool)
	return expose
}
