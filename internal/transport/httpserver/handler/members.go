package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	memberdomain "kinship-app-go/internal/domain/member"
	"kinship-app-go/internal/transport/httpserver/middleware"
)

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	m, err := h.Members.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get: lookup failed", err, "code", code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

func (h *Handlers) SetMemberActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	code := chi.URLParam(r, "code")
	m, err := h.Members.SetActive(r.Context(), actor, code, req.Active)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrNotAdmin):
			h.log.BusinessError("members.set_active: not admin", err, "actor", actor.Code)
			writeError(w, http.StatusForbidden, "forbidden", "not permitted")
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("members.set_active: update failed", err, "code", code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(m))
}
