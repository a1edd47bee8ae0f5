package confirmation

import "errors"

var (
	ErrRequestNotFound  = errors.New("confirmation request not found")
	ErrDuplicatePending = errors.New("pending request already exists for this slot")
	ErrForbidden        = errors.New("not permitted")
	ErrAlreadyResolved  = errors.New("request already resolved")
	ErrConflict         = errors.New("conflicting resolution, re-fetch and retry")
	ErrInvalidDecision  = errors.New("invalid decision")
)
