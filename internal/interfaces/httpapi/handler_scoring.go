package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/usecase"
)

type recordDeliveryRequest struct {
	Innings       flexInt `json:"innings"`
	BattingTeamID string  `json:"battingTeamId" validate:"required"`
	Runs          flexInt `json:"runs"`
	Extras        flexInt `json:"extras"`
	ExtraType     string  `json:"extraType"`
	IsWicket      bool    `json:"isWicket"`
	DismissalType string  `json:"dismissalType"`
	BatsmanID     string  `json:"batsmanId"`
	BowlerID      string  `json:"bowlerId"`
	Commentary    string  `json:"commentary"`
}

func (h *Handler) RecordDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordDelivery")
	defer span.End()

	var req recordDeliveryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.RecordDelivery(ctx, pathID(r, "matchID"), usecase.RecordDeliveryInput{
		Innings:       int(req.Innings),
		BattingTeamID: req.BattingTeamID,
		Runs:          int(req.Runs),
		Extras:        int(req.Extras),
		ExtraType:     req.ExtraType,
		IsWicket:      req.IsWicket,
		DismissalType: req.DismissalType,
		BatsmanID:     req.BatsmanID,
		BowlerID:      req.BowlerID,
		Commentary:    req.Commentary,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "delivery recorded", toDeliveryResultDTO(result))
}

func (h *Handler) UndoLastDelivery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastDelivery")
	defer span.End()

	result, err := h.scoringService.UndoLastDelivery(ctx, pathID(r, "matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "delivery undone", toDeliveryResultDTO(result))
}

func (h *Handler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDeliveries")
	defer span.End()

	items, err := h.scoringService.ListDeliveries(ctx, pathID(r, "matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "deliveries retrieved", toDeliveryDTOs(items))
}

func (h *Handler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchSummary")
	defer span.End()

	summary, err := h.scoringService.Summary(ctx, pathID(r, "matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match summary retrieved", toMatchSummaryDTO(summary))
}
