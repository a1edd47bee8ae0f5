package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kinship-app-go/internal/auth"
	memberdomain "kinship-app-go/internal/domain/member"
	"kinship-app-go/pkg/logger"
)

type contextKey int

const memberKey contextKey = iota

// MemberLoader resolves a NumeroH to a member; implemented by the member
// service (with its cache in front).
type MemberLoader interface {
	GetByCode(ctx context.Context, code string) (*memberdomain.Member, error)
}

type JWTAuth struct {
	tokens  *auth.TokenService
	members MemberLoader
	log     logger.Logger
}

func NewJWTAuth(tokens *auth.TokenService, members MemberLoader, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, members: members, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			unauthorized(w)
			return
		}

		m, err := a.members.GetByCode(r.Context(), claims.Code)
		if err != nil {
			a.log.BusinessError("auth: member lookup failed", err, "code", claims.Code)
			unauthorized(w)
			return
		}
		if !m.Active {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), m)))
	})
}

func WithMember(ctx context.Context, m *memberdomain.Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

func MemberFromContext(ctx context.Context) (*memberdomain.Member, bool) {
	m, ok := ctx.Value(memberKey).(*memberdomain.Member)
	return m, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": "invalid_token", "message": "invalid token"},
	})
}
