package confirmation

import (
	"context"
	"errors"

	"kinship-app-go/internal/domain/member"
)

// MemberDirectory resolves member codes; implemented by the member service.
type MemberDirectory interface {
	GetByCode(ctx context.Context, code string) (*member.Member, error)
}

// HeadFinder returns the designated family heads for the tree containing a
// member; implemented by the tree service.
type HeadFinder interface {
	HeadsOf(ctx context.Context, memberCode string) ([]string, error)
}

// Gate decides who may resolve a confirmation request. The policy is an
// ordered list, first match wins:
//
//  1. the claimed parent, while active, decides their own claims
//  2. if the claimed parent is no active member, a designated head of the
//     child's tree decides
//  3. an active administrator always may
//  4. nobody else
type Gate struct {
	members MemberDirectory
	heads   HeadFinder
}

func NewGate(members MemberDirectory, heads HeadFinder) *Gate {
	return &Gate{members: members, heads: heads}
}

func (g *Gate) CanResolve(ctx context.Context, req *ConfirmationRequest, actor *member.Member) (bool, error) {
	if actor == nil || !actor.Active {
		return false, nil
	}

	if actor.Code == req.ClaimedParentCode {
		return true, nil
	}

	parentAbsent, err := g.claimedParentAbsent(ctx, req.ClaimedParentCode)
	if err != nil {
		return false, err
	}
	if parentAbsent {
		heads, err := g.heads.HeadsOf(ctx, req.ChildCode)
		if err != nil {
			return false, err
		}
		for _, head := range heads {
			if head == actor.Code {
				return true, nil
			}
		}
	}

	if actor.Role == member.RoleAdmin {
		return true, nil
	}

	return false, nil
}

func (g *Gate) claimedParentAbsent(ctx context.Context, code string) (bool, error) {
	parent, err := g.members.GetByCode(ctx, code)
	if errors.Is(err, member.ErrMemberNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !parent.Active, nil
}

// Approvers lists who should be notified of a fresh request: the claimed
// parent when they can act, the child's tree heads otherwise.
func (g *Gate) Approvers(ctx context.Context, req *ConfirmationRequest) ([]string, error) {
	absent, err := g.claimedParentAbsent(ctx, req.ClaimedParentCode)
	if err != nil {
		return nil, err
	}
	if !absent {
		return []string{req.ClaimedParentCode}, nil
	}
	return g.heads.HeadsOf(ctx, req.ChildCode)
}
