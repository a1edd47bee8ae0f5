package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	memberdomain "kinship-app-go/internal/domain/member"
)

const issuer = "kinship-app"

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the member's NumeroH and role, same shape the legacy
// tokens had.
type Claims struct {
	Code string `json:"numeroH"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{signingKey: []byte(secret), ttl: ttl}
}

func (s *TokenService) Generate(m *memberdomain.Member) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Code: m.Code,
		Role: m.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.signingKey)
}

func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Code == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
