package httpapi

import (
	"net/http"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

type createSubAdminRequest struct {
	Name           string          `json:"name" validate:"required"`
	Email          string          `json:"email" validate:"required"`
	Password       string          `json:"password" validate:"required"`
	Sport          string          `json:"sport"`
	Specialization string          `json:"specialization" validate:"required"`
	Permissions    *permissionsDTO `json:"permissions"`
}

type updateSubAdminRequest struct {
	Name           *string         `json:"name"`
	Password       *string         `json:"password"`
	Specialization *string         `json:"specialization"`
	Permissions    *permissionsDTO `json:"permissions"`
	IsActive       *bool           `json:"isActive"`
}

func (p *permissionsDTO) toDomainPtr() *admin.Permissions {
	if p == nil {
		return nil
	}
	out := p.toDomain()
	return &out
}

func (h *Handler) CreateSubAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSubAdmin")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSubAdminRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.subAdminService.Create(ctx, usecase.CreateSubAdminInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Sport:          req.Sport,
		Specialization: req.Specialization,
		Permissions:    req.Permissions.toDomainPtr(),
	}, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "sub-admin created", toSubAdminDTO(account))
}

func (h *Handler) ListSubAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSubAdmins")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.subAdminService.List(ctx, r.URL.Query().Get("sport"), principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "sub-admins retrieved", toSubAdminDTOs(items))
}

func (h *Handler) UpdateSubAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSubAdmin")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateSubAdminRequest
	if err := decodeLenient(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.subAdminService.Update(ctx, pathID(r, "adminID"), usecase.UpdateSubAdminInput{
		Name:           req.Name,
		Password:       req.Password,
		Specialization: req.Specialization,
		Permissions:    req.Permissions.toDomainPtr(),
		IsActive:       req.IsActive,
	}, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "sub-admin updated", toSubAdminDTO(account))
}

func (h *Handler) DeactivateSubAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeactivateSubAdmin")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.subAdminService.Deactivate(ctx, pathID(r, "adminID"), principal); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "sub-admin deactivated", nil)
}
