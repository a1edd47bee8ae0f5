package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultCacheTTL = time.Minute

type Service struct {
	repo          Repository
	cache         Cache
	metrics       Metrics
	issueAttempts int
	bcryptCost    int
	cacheTTL      time.Duration
}

type Option func(*Service)

func WithCache(cache Cache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

func WithIssueAttempts(attempts int) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.issueAttempts = attempts
		}
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		cache:         noopCache{},
		metrics:       noopMetrics{},
		issueAttempts: defaultIssueAttempts,
		bcryptCost:    bcrypt.DefaultCost,
		cacheTTL:      defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Role      string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register issues a fresh NumeroH for the role and creates the member.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Member, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if !ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	m := Member{
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Active:       true,
	}

	if _, err := s.repo.GetByEmail(ctx, m.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	// No surrounding transaction on purpose: each insert attempt must be its
	// own statement so a unique violation can be retried with a fresh code
	// instead of aborting everything.
	if err := s.createWithCode(ctx, s.repo, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Authenticate verifies a NumeroH/password pair. Inactive members cannot
// authenticate.
func (s *Service) Authenticate(ctx context.Context, code, password string) (*Member, error) {
	m, err := s.repo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !m.Active {
		return nil, ErrMemberInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return m, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Member, error) {
	code = strings.TrimSpace(code)
	if m, ok := s.cache.Get(code); ok {
		return m, nil
	}

	m, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	s.cache.Set(code, m, s.cacheTTL)
	return m, nil
}

// SetActive toggles a member's active flag. Only administrators may do this;
// an inactive member can no longer authenticate or approve confirmations.
func (s *Service) SetActive(ctx context.Context, actor *Member, code string, active bool) (*Member, error) {
	if actor == nil || actor.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}

	code = strings.TrimSpace(code)
	m, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if m.Active != active {
		if err := s.repo.UpdateActive(ctx, code, active); err != nil {
			return nil, err
		}
		m.Active = active
	}

	s.cache.Delete(code)
	return m, nil
}
