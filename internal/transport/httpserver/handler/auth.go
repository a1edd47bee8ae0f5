package handler

import (
	"errors"
	"net/http"

	memberdomain "kinship-app-go/internal/domain/member"
	"kinship-app-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Member memberResponse `json:"member"`
	Token  string         `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	m, err := h.Members.Register(r.Context(), memberdomain.RegisterInput{
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_role", "invalid role")
		case errors.Is(err, memberdomain.ErrEmailTaken):
			h.log.BusinessError("auth.register: email taken", err)
			writeError(w, http.StatusConflict, "email_taken", "email already in use")
		case errors.Is(err, memberdomain.ErrGenerationExhausted):
			h.log.Critical("auth.register: numeroh generation exhausted", "role", req.Role)
			writeError(w, http.StatusServiceUnavailable, "generation_exhausted", "could not issue a member code, retry later")
		case errors.Is(err, memberdomain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("auth.register: register failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	token, err := h.tokens.Generate(m)
	if err != nil {
		h.log.InternalError("auth.register: token generation failed", err, "code", m.Code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Member: toMemberResponse(m), Token: token})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Code == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code and password are required")
		return
	}

	m, err := h.Members.Authenticate(r.Context(), req.Code, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrInvalidCredentials), errors.Is(err, memberdomain.ErrMemberInactive):
			h.log.BusinessError("auth.login: rejected", err, "code", req.Code)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		default:
			h.log.InternalError("auth.login: authenticate failed", err, "code", req.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	token, err := h.tokens.Generate(m)
	if err != nil {
		h.log.InternalError("auth.login: token generation failed", err, "code", m.Code)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Member: toMemberResponse(m), Token: token})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}
