package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/usecase"
)

type playerStatsRequest struct {
	Matches    flexInt   `json:"matches"`
	Runs       flexInt   `json:"runs"`
	Wickets    flexInt   `json:"wickets"`
	Catches    flexInt   `json:"catches"`
	Stumps     flexInt   `json:"stumps"`
	Average    flexFloat `json:"average"`
	StrikeRate flexFloat `json:"strikeRate"`
	Economy    flexFloat `json:"economy"`
}

// Counters are read at the top level of the player body. The nested "stats"
// object is still accepted and fills any counter the top level leaves at zero.
type addPlayerRequest struct {
	playerStatsRequest
	Name         string             `json:"name" validate:"required"`
	Role         string             `json:"role" validate:"required"`
	Age          flexInt            `json:"age"`
	JerseyNumber flexInt            `json:"jerseyNumber"`
	Experience   flexString         `json:"experience" validate:"required"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Stats        playerStatsRequest `json:"stats"`
}

type updatePlayerStatsRequest struct {
	Matches    *flexInt   `json:"matches"`
	Runs       *flexInt   `json:"runs"`
	Wickets    *flexInt   `json:"wickets"`
	Catches    *flexInt   `json:"catches"`
	Stumps     *flexInt   `json:"stumps"`
	Average    *flexFloat `json:"average"`
	StrikeRate *flexFloat `json:"strikeRate"`
	Economy    *flexFloat `json:"economy"`
}

type updatePlayerRequest struct {
	updatePlayerStatsRequest
	Name         *string                  `json:"name"`
	Role         *string                  `json:"role"`
	Age          *flexInt                 `json:"age"`
	JerseyNumber *flexInt                 `json:"jerseyNumber"`
	Experience   *flexString              `json:"experience"`
	Email        *string                  `json:"email"`
	Phone        *string                  `json:"phone"`
	Stats        updatePlayerStatsRequest `json:"stats"`
}

func (s playerStatsRequest) orNested(nested playerStatsRequest) usecase.PlayerStatsInput {
	return usecase.PlayerStatsInput{
		Matches:    int(firstNonZero(s.Matches, nested.Matches)),
		Runs:       int(firstNonZero(s.Runs, nested.Runs)),
		Wickets:    int(firstNonZero(s.Wickets, nested.Wickets)),
		Catches:    int(firstNonZero(s.Catches, nested.Catches)),
		Stumps:     int(firstNonZero(s.Stumps, nested.Stumps)),
		Average:    float64(firstNonZero(s.Average, nested.Average)),
		StrikeRate: float64(firstNonZero(s.StrikeRate, nested.StrikeRate)),
		Economy:    float64(firstNonZero(s.Economy, nested.Economy)),
	}
}

func firstNonZero[T flexInt | flexFloat](values ...T) T {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstSet[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req addPlayerRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	player, err := h.teamService.AddPlayer(ctx, pathID(r, "teamID"), usecase.AddPlayerInput{
		Name:         req.Name,
		Role:         req.Role,
		Age:          int(req.Age),
		JerseyNumber: int(req.JerseyNumber),
		Experience:   string(req.Experience),
		Email:        req.Email,
		Phone:        req.Phone,
		Stats:        req.playerStatsRequest.orNested(req.Stats),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "player added", toPlayerDTO(player))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req updatePlayerRequest
	if err := decodeLenient(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.teamService.UpdatePlayer(ctx, pathID(r, "teamID"), pathID(r, "playerID"), usecase.UpdatePlayerInput{
		Name:         req.Name,
		Role:         req.Role,
		Age:          req.Age.intPtr(),
		JerseyNumber: req.JerseyNumber.intPtr(),
		Experience:   req.Experience.stringPtr(),
		Email:        req.Email,
		Phone:        req.Phone,
		Matches:      firstSet(req.Matches, req.Stats.Matches).intPtr(),
		Runs:         firstSet(req.Runs, req.Stats.Runs).intPtr(),
		Wickets:      firstSet(req.Wickets, req.Stats.Wickets).intPtr(),
		Catches:      firstSet(req.Catches, req.Stats.Catches).intPtr(),
		Stumps:       firstSet(req.Stumps, req.Stats.Stumps).intPtr(),
		Average:      firstSet(req.Average, req.Stats.Average).floatPtr(),
		StrikeRate:   firstSet(req.StrikeRate, req.Stats.StrikeRate).floatPtr(),
		Economy:      firstSet(req.Economy, req.Stats.Economy).floatPtr(),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player updated", playerUpdateDTO{
		Player: toPlayerDTO(result.Player),
		Team:   toTeamDTO(result.Team),
	})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	if err := h.teamService.DeletePlayer(ctx, pathID(r, "teamID"), pathID(r, "playerID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player removed", nil)
}
