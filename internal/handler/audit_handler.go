package handler

import (
	"net/http"
	"strconv"
	"strings"

	"building-portal/internal/middleware"
	"building-portal/internal/model"
	"building-portal/internal/repository"
	"building-portal/pkg/apierror"
)

type AuditHandler struct {
	audits *repository.AuditRepository
}

func NewAuditHandler(audits *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// List returns recorded mutation history, administrators only.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) error {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return apierror.Unauthorized("authentication required")
	}
	if err := apierror.Assert(session.ProfileType == model.ProfileAdmin,
		apierror.Forbidden("administrator access required")); err != nil {
		return err
	}

	query := model.AuditQuery{
		Action: strings.TrimSpace(r.URL.Query().Get("action")),
		Actor:  strings.TrimSpace(r.URL.Query().Get("actor")),
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return apierror.Validation("invalid audit query",
				apierror.FieldError{Field: "page", Message: "page must be a positive integer"})
		}
		query.Page = page
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return apierror.Validation("invalid audit query",
				apierror.FieldError{Field: "limit", Message: "limit must be a positive integer"})
		}
		query.Limit = limit
	}

	entries, meta, err := h.audits.Query(r.Context(), query)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, model.APIResponse{Success: true, Data: entries, Meta: &meta})
	return nil
}
