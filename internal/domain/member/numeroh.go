package member

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	defaultIssueAttempts = 100
	adminCodeMax         = 999
)

// candidateCode builds a NumeroH candidate for a non-admin role:
// prefix + last six digits of unix time in milliseconds + three random digits.
func candidateCode(role string, now time.Time) (string, error) {
	prefix, ok := rolePrefixes[role]
	if !ok {
		return "", ErrInvalidRole
	}

	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%s%03d", prefix, millis, n.Int64()), nil
}

func adminCode(counter int) string {
	return fmt.Sprintf("ADMIN%03d", counter)
}

// createWithCode issues a code and inserts the member in one loop. The
// existence pre-check keeps the common path cheap; a duplicate-key error from
// the insert is treated as a collision and retried, so concurrent issuers
// converge without any in-process lock.
func (s *Service) createWithCode(ctx context.Context, repo Repository, m *Member) error {
	if m.Role == RoleAdmin {
		return s.createAdmin(ctx, repo, m)
	}

	for i := 0; i < s.issueAttempts; i++ {
		code, err := candidateCode(m.Role, time.Now())
		if err != nil {
			return err
		}

		taken, err := repo.CodeExists(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			s.metrics.CodeCollision()
			continue
		}

		m.Code = code
		err = repo.Create(ctx, m)
		if err == nil {
			s.metrics.CodeIssued(m.Role)
			return nil
		}
		if errors.Is(err, ErrCodeTaken) {
			s.metrics.CodeCollision()
			continue
		}
		return err
	}

	return ErrGenerationExhausted
}

// createAdmin probes the fixed-width admin namespace forward from ADMIN001.
// The namespace is sequential and tiny, so linear probing is fine.
func (s *Service) createAdmin(ctx context.Context, repo Repository, m *Member) error {
	for counter := 1; counter <= adminCodeMax; counter++ {
		code := adminCode(counter)

		taken, err := repo.CodeExists(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		m.Code = code
		err = repo.Create(ctx, m)
		if err == nil {
			s.metrics.CodeIssued(m.Role)
			return nil
		}
		if errors.Is(err, ErrCodeTaken) {
			s.metrics.CodeCollision()
			continue
		}
		return err
	}

	return ErrGenerationExhausted
}
