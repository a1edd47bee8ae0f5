package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	treedomain "kinship-app-go/internal/domain/tree"
	"kinship-app-go/internal/transport/httpserver/middleware"
)

type createConfirmationRequest struct {
	ClaimedParentCode string `json:"claimed_parent_code"`
	ParentRole        string `json:"parent_role"`
	Notes             string `json:"notes"`
}

func (h *Handlers) CreateConfirmation(w http.ResponseWriter, r *http.Request) {
	var req createConfirmationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Confirmations.Request(r.Context(), actor, req.ClaimedParentCode, req.ParentRole, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, treedomain.ErrInvalidParentRole):
			writeError(w, http.StatusBadRequest, "invalid_parent_role", "parent role must be father or mother")
		case errors.Is(err, treedomain.ErrSelfParent):
			writeError(w, http.StatusBadRequest, "invalid_request", "cannot claim yourself as parent")
		case errors.Is(err, confirmationdomain.ErrDuplicatePending):
			h.log.BusinessError("confirmations.create: duplicate pending", err, "child", actor.Code, "role", req.ParentRole)
			writeError(w, http.StatusConflict, "duplicate_pending", "a pending request already exists for this slot")
		case errors.Is(err, treedomain.ErrSlotOccupied):
			h.log.BusinessError("confirmations.create: slot occupied", err, "child", actor.Code, "role", req.ParentRole)
			writeError(w, http.StatusConflict, "slot_occupied", "a confirmed parent already occupies this slot")
		default:
			h.log.InternalError("confirmations.create: request failed", err, "child", actor.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toConfirmationResponse(result))
}

func (h *Handlers) ListPendingConfirmations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	requests, err := h.Confirmations.ListResolvable(r.Context(), actor)
	if err != nil {
		h.log.InternalError("confirmations.pending: list failed", err, "actor", actor.Code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]confirmationResponse, 0, len(requests))
	for i := range requests {
		response = append(response, toConfirmationResponse(&requests[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) ConfirmRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, confirmationdomain.DecisionConfirm)
}

func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, confirmationdomain.DecisionReject)
}

func (h *Handlers) resolve(w http.ResponseWriter, r *http.Request, decision string) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	requestID := chi.URLParam(r, "id")
	result, err := h.Confirmations.Resolve(r.Context(), actor, requestID, decision)
	if err != nil {
		switch {
		case errors.Is(err, confirmationdomain.ErrRequestNotFound):
			writeError(w, http.StatusNotFound, "request_not_found", "confirmation request not found")
		case errors.Is(err, confirmationdomain.ErrForbidden):
			// Never explain which policy rule failed.
			h.log.BusinessError("confirmations.resolve: forbidden", err, "actor", actor.Code, "request_id", requestID)
			writeError(w, http.StatusForbidden, "forbidden", "not permitted")
		case errors.Is(err, confirmationdomain.ErrAlreadyResolved):
			h.log.BusinessError("confirmations.resolve: already resolved", err, "request_id", requestID)
			writeError(w, http.StatusConflict, "already_resolved", "request already resolved")
		case errors.Is(err, confirmationdomain.ErrConflict):
			h.log.BusinessError("confirmations.resolve: conflict", err, "request_id", requestID)
			writeError(w, http.StatusConflict, "conflict", "conflicting resolution, re-fetch and retry")
		case errors.Is(err, treedomain.ErrUnknownMember):
			writeError(w, http.StatusNotFound, "unknown_member", "claimed parent is not a registered member")
		default:
			h.log.InternalError("confirmations.resolve: resolve failed", err, "request_id", requestID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toConfirmationResponse(result))
}
