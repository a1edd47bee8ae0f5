package handler

import (
	"encoding/json"
	"net/http"
	"time"

	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	memberdomain "kinship-app-go/internal/domain/member"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type memberResponse struct {
	Code      string    `json:"code"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toMemberResponse(m *memberdomain.Member) memberResponse {
	return memberResponse{
		Code:      m.Code,
		Role:      m.Role,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

type confirmationResponse struct {
	ID                string     `json:"id"`
	ChildCode         string     `json:"child_code"`
	ClaimedParentCode string     `json:"claimed_parent_code"`
	ParentRole        string     `json:"parent_role"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
}

func toConfirmationResponse(req *confirmationdomain.ConfirmationRequest) confirmationResponse {
	return confirmationResponse{
		ID:                req.ID,
		ChildCode:         req.ChildCode,
		ClaimedParentCode: req.ClaimedParentCode,
		ParentRole:        req.ParentRole,
		Status:            req.Status,
		Notes:             req.Notes,
		CreatedAt:         req.CreatedAt,
		ResolvedAt:        req.ResolvedAt,
	}
}
