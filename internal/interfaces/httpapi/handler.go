package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

// LiveFeed upgrades a request to a websocket that streams one match.
type LiveFeed interface {
	ServeMatch(w http.ResponseWriter, r *http.Request, initial match.Match)
}

type Handler struct {
	teamService     *usecase.TeamService
	matchService    *usecase.MatchService
	scoringService  *usecase.ScoringService
	authService     *usecase.AuthService
	subAdminService *usecase.SubAdminService
	liveFeed        LiveFeed
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	scoringService *usecase.ScoringService,
	authService *usecase.AuthService,
	subAdminService *usecase.SubAdminService,
	liveFeed LiveFeed,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:     teamService,
		matchService:    matchService,
		scoringService:  scoringService,
		authService:     authService,
		subAdminService: subAdminService,
		liveFeed:        liveFeed,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeStrict rejects unknown fields. Create endpoints use it.
func decodeStrict(r *http.Request, dst any) error {
	return decodeBody(r, dst, true)
}

// decodeLenient drops unknown fields, so clients cannot smuggle
// server-owned fields into partial updates.
func decodeLenient(r *http.Request, dst any) error {
	return decodeBody(r, dst, false)
}

func decodeBody(r *http.Request, dst any, strict bool) error {
	decoder := jsoniter.NewDecoder(r.Body)
	if strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		default:
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return nil
}

func requirePrincipal(ctx context.Context) (admin.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return admin.Principal{}, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathID(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}
