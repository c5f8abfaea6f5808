package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

const dateOnlyLayout = "2006-01-02"

type createMatchRequest struct {
	TeamA string  `json:"teamA" validate:"required"`
	TeamB string  `json:"teamB" validate:"required"`
	Date  string  `json:"date" validate:"required"`
	Venue string  `json:"venue"`
	Overs flexInt `json:"overs"`
}

type sideScoreRequest struct {
	Runs    flexInt `json:"runs"`
	Wickets flexInt `json:"wickets"`
}

type scoreRequest struct {
	TeamA sideScoreRequest `json:"teamA"`
	TeamB sideScoreRequest `json:"teamB"`
	Overs flexString       `json:"overs"`
}

type resultRequest struct {
	WinnerTeamID string `json:"winner"`
	IsDraw       bool   `json:"isDraw"`
}

type updateScoreRequest struct {
	Score  *scoreRequest  `json:"score"`
	Status *string        `json:"status"`
	Result *resultRequest `json:"result"`
}

func parseMatchDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD", usecase.ErrInvalidInput)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	items, err := h.matchService.List(ctx, usecase.ListMatchesInput{
		Status: query.Get("status"),
		TeamID: query.Get("teamId"),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "matches retrieved", toMatchDTOs(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	item, err := h.matchService.Get(ctx, pathID(r, "matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match retrieved", toMatchDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseMatchDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TeamA: req.TeamA,
		TeamB: req.TeamB,
		Date:  date,
		Venue: req.Venue,
		Overs: int(req.Overs),
	}, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "match created", toMatchDTO(item))
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore")
	defer span.End()

	var req updateScoreRequest
	if err := decodeLenient(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateScoreInput{Status: req.Status}
	if req.Score != nil {
		input.Score = &match.Score{
			TeamA: match.SideScore{Runs: int(req.Score.TeamA.Runs), Wickets: int(req.Score.TeamA.Wickets)},
			TeamB: match.SideScore{Runs: int(req.Score.TeamB.Runs), Wickets: int(req.Score.TeamB.Wickets)},
			Overs: strings.TrimSpace(string(req.Score.Overs)),
		}
	}
	if req.Result != nil {
		input.Result = &match.Result{
			WinnerTeamID: strings.TrimSpace(req.Result.WinnerTeamID),
			IsDraw:       req.Result.IsDraw,
		}
	}

	item, err := h.matchService.UpdateScore(ctx, pathID(r, "matchID"), input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match updated", toMatchDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	if err := h.matchService.Delete(ctx, pathID(r, "matchID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match deleted", nil)
}

func (h *Handler) MatchLiveFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchLiveFeed")
	defer span.End()

	if h.liveFeed == nil {
		writeError(ctx, w, fmt.Errorf("%w: live feed is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	item, err := h.matchService.Get(ctx, pathID(r, "matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.liveFeed.ServeMatch(w, r.WithContext(ctx), item)
}
