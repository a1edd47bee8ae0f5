package confirmation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"kinship-app-go/internal/domain/member"
	"kinship-app-go/internal/domain/tree"
)

type Service struct {
	repo     Repository
	gate     *Gate
	notifier Notifier
	metrics  Metrics
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewService(repo Repository, gate *Gate, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		gate:     gate,
		notifier: NopNotifier{},
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request records a child's claim that claimedParent occupies one of their
// parent slots. The claim becomes an edge only through Resolve.
func (s *Service) Request(ctx context.Context, child *member.Member, claimedParentCode, parentRole, notes string) (*ConfirmationRequest, error) {
	claimedParentCode = strings.TrimSpace(claimedParentCode)

	if !tree.ValidParentRole(parentRole) {
		return nil, tree.ErrInvalidParentRole
	}
	if claimedParentCode == "" {
		return nil, fmt.Errorf("claimed parent code is required")
	}
	if child == nil {
		return nil, member.ErrMemberNotFound
	}
	if claimedParentCode == child.Code {
		return nil, tree.ErrSelfParent
	}

	req := ConfirmationRequest{
		ID:                uuid.NewString(),
		ChildCode:         child.Code,
		ClaimedParentCode: claimedParentCode,
		ParentRole:        parentRole,
		Status:            StatusPending,
		Notes:             strings.TrimSpace(notes),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		// A confirmed edge already filling the slot is a hard conflict, not
		// something to queue behind.
		if _, err := tx.Edges().GetEdge(ctx, child.Code, parentRole); err == nil {
			return tree.ErrSlotOccupied
		} else if !errors.Is(err, tree.ErrEdgeNotFound) {
			return err
		}

		if _, err := tx.FindPending(ctx, child.Code, parentRole); err == nil {
			return ErrDuplicatePending
		} else if !errors.Is(err, ErrRequestNotFound) {
			return err
		}

		return tx.Create(ctx, &req)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RequestCreated()
	if approvers, err := s.gate.Approvers(ctx, &req); err == nil {
		s.notifier.RequestCreated(ctx, &req, approvers)
	}

	return &req, nil
}

// Resolve applies an approver's decision. Status update and edge creation
// share one transaction: if the slot was taken by a racing approval, the
// whole resolution rolls back, the request stays pending and the caller gets
// ErrConflict. Repeating a resolve on a terminal request is
// ErrAlreadyResolved, never a second edge.
func (s *Service) Resolve(ctx context.Context, actor *member.Member, requestID, decision string) (*ConfirmationRequest, error) {
	if decision != DecisionConfirm && decision != DecisionReject {
		return nil, ErrInvalidDecision
	}

	var result *ConfirmationRequest
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		req, err := tx.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		allowed, err := s.gate.CanResolve(ctx, req, actor)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrForbidden
		}

		if req.Terminal() {
			return ErrAlreadyResolved
		}

		now := time.Now().UTC()
		status := StatusRejected
		if decision == DecisionConfirm {
			status = StatusConfirmed
			err := tree.Link(ctx, tx.Edges(), req.ChildCode, req.ClaimedParentCode, req.ParentRole)
			if errors.Is(err, tree.ErrSlotOccupied) {
				return ErrConflict
			}
			if err != nil {
				return err
			}
		}

		if err := tx.SetStatus(ctx, req.ID, status, now); err != nil {
			return err
		}

		req.Status = status
		req.ResolvedAt = &now
		result = req
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			s.metrics.ResolveConflict()
		}
		return nil, err
	}

	s.metrics.RequestResolved(decision)
	s.notifier.RequestResolved(ctx, result)
	return result, nil
}

// Get returns a request by id.
func (s *Service) Get(ctx context.Context, id string) (*ConfirmationRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// ListResolvable returns the pending requests the actor may currently
// decide, per the gate's ordered policy.
func (s *Service) ListResolvable(ctx context.Context, actor *member.Member) ([]ConfirmationRequest, error) {
	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ConfirmationRequest, 0, len(pending))
	for i := range pending {
		allowed, err := s.gate.CanResolve(ctx, &pending[i], actor)
		if err != nil {
			return nil, err
		}
		if allowed {
			result = append(result, pending[i])
		}
	}
	return result, nil
}
