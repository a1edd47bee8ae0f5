package member

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMemberNotFound      = errors.New("member not found")
	ErrCodeTaken           = errors.New("code already taken")
	ErrEmailTaken          = errors.New("email already taken")
	ErrGenerationExhausted = errors.New("numeroh generation exhausted")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMemberInactive      = errors.New("member inactive")
	ErrNotAdmin            = errors.New("not an administrator")
)
