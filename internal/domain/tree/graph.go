package tree

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// cycleWalkDepth bounds the upward walk used to reject cycles. Legitimate
// ancestries never come close; malformed data must not loop forever.
const cycleWalkDepth = 64

// Link adds a parent edge for a child after enforcing the structural
// invariants: valid slot, both endpoints known, no self-parenting, no cycle.
// It runs against whatever Repository it is given, so the confirmation
// workflow can call it inside its own transaction.
func Link(ctx context.Context, repo Repository, childCode, parentCode, parentRole string) error {
	if !ValidParentRole(parentRole) {
		return ErrInvalidParentRole
	}
	if childCode == parentCode {
		return ErrSelfParent
	}

	for _, code := range []string{childCode, parentCode} {
		exists, err := repo.MemberExists(ctx, code)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUnknownMember
		}
	}

	if _, err := repo.GetEdge(ctx, childCode, parentRole); err == nil {
		return ErrSlotOccupied
	} else if !errors.Is(err, ErrEdgeNotFound) {
		return err
	}

	// Walking up from the proposed parent must never reach the child.
	onPath, err := hasAncestor(ctx, repo, parentCode, childCode, cycleWalkDepth)
	if err != nil {
		return err
	}
	if onPath {
		return ErrCycle
	}

	err = repo.CreateEdge(ctx, &FamilyEdge{
		ChildCode:  childCode,
		ParentRole: parentRole,
		ParentCode: parentCode,
	})
	if err != nil {
		return err
	}

	return attachToTree(ctx, repo, childCode, parentCode)
}

// hasAncestor reports whether target appears among code's ancestors within
// the given depth.
func hasAncestor(ctx context.Context, repo Repository, code, target string, depth int) (bool, error) {
	frontier := []string{code}
	seen := map[string]bool{code: true}

	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, current := range frontier {
			edges, err := repo.ListParentEdges(ctx, current)
			if err != nil {
				return false, err
			}
			for _, edge := range edges {
				if edge.ParentCode == target {
					return true, nil
				}
				if !seen[edge.ParentCode] {
					seen[edge.ParentCode] = true
					next = append(next, edge.ParentCode)
				}
			}
		}
		frontier = next
	}

	return false, nil
}

// attachToTree ensures the parent's family tree exists and adds the child to
// it. Trees start headless; heads are designated later by set-heads.
func attachToTree(ctx context.Context, repo Repository, childCode, parentCode string) error {
	t, err := repo.GetTreeByMember(ctx, parentCode)
	if errors.Is(err, ErrTreeNotFound) {
		t = &FamilyTree{
			ID:       uuid.NewString(),
			RootCode: parentCode,
		}
		if err := repo.CreateTree(ctx, t); err != nil {
			return err
		}
		if err := repo.AddTreeMember(ctx, t.ID, parentCode); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	inTree, err := repo.IsInAnyTree(ctx, childCode)
	if err != nil {
		return err
	}
	if inTree {
		return nil
	}

	return repo.AddTreeMember(ctx, t.ID, childCode)
}
