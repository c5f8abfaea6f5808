package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/usecase"
)

type createTeamRequest struct {
	Name         string     `json:"name" validate:"required"`
	ShortName    string     `json:"shortName" validate:"required"`
	Captain      string     `json:"captain" validate:"required"`
	Coach        string     `json:"coach" validate:"required"`
	Established  flexString `json:"established" validate:"required"`
	HomeGround   string     `json:"homeGround" validate:"required"`
	ContactEmail string     `json:"contactEmail" validate:"required"`
	ContactPhone string     `json:"contactPhone" validate:"required"`
	Logo         string     `json:"logo"`
}

type updateTeamRequest struct {
	Name         *string     `json:"name"`
	ShortName    *string     `json:"shortName"`
	Captain      *string     `json:"captain"`
	Coach        *string     `json:"coach"`
	Established  *flexString `json:"established"`
	HomeGround   *string     `json:"homeGround"`
	ContactEmail *string     `json:"contactEmail"`
	ContactPhone *string     `json:"contactPhone"`
	Logo         *string     `json:"logo"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.ListActive(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "teams retrieved", toTeamDTOs(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx, pathID(r, "teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team retrieved", toTeamDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:         req.Name,
		ShortName:    req.ShortName,
		Captain:      req.Captain,
		Coach:        req.Coach,
		Established:  string(req.Established),
		HomeGround:   req.HomeGround,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Logo:         req.Logo,
	}, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "team created", toTeamDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	var req updateTeamRequest
	if err := decodeLenient(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, pathID(r, "teamID"), usecase.UpdateTeamInput{
		Name:         req.Name,
		ShortName:    req.ShortName,
		Captain:      req.Captain,
		Coach:        req.Coach,
		Established:  req.Established.stringPtr(),
		HomeGround:   req.HomeGround,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Logo:         req.Logo,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team updated", toTeamDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	if err := h.teamService.SoftDelete(ctx, pathID(r, "teamID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team deleted", nil)
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	stats, err := h.teamService.Stats(ctx, pathID(r, "teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team stats retrieved", toTeamStatsDTO(stats))
}

func (h *Handler) GetTeamsOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamsOverview")
	defer span.End()

	overview, err := h.teamService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "team overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team overview retrieved", toOverviewDTO(overview))
}
