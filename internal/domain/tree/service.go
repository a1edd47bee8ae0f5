package tree

import (
	"context"
	"errors"
	"strings"

	"kinship-app-go/internal/domain/member"
)

const defaultTraversalDepth = 32

type Service struct {
	repo           Repository
	traversalDepth int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, traversalDepth: defaultTraversalDepth}
}

func (s *Service) SetTraversalDepth(depth int) {
	if depth > 0 {
		s.traversalDepth = depth
	}
}

// EdgesOf returns the child's father and mother slots; either may be empty.
func (s *Service) EdgesOf(ctx context.Context, childCode string) (Edges, error) {
	edges, err := s.repo.ListParentEdges(ctx, childCode)
	if err != nil {
		return Edges{}, err
	}

	var result Edges
	for i := range edges {
		switch edges[i].ParentRole {
		case ParentRoleFather:
			result.Father = &edges[i]
		case ParentRoleMother:
			result.Mother = &edges[i]
		}
	}
	return result, nil
}

// AddEdge enforces the structural invariants and creates the edge. The
// confirmation workflow is the only production caller; it goes through Link
// inside its own transaction, so this path mostly serves operators and tests.
func (s *Service) AddEdge(ctx context.Context, childCode, parentCode, parentRole string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		return Link(ctx, tx, childCode, parentCode, parentRole)
	})
}

func (s *Service) RemoveEdge(ctx context.Context, childCode, parentRole string) error {
	if !ValidParentRole(parentRole) {
		return ErrInvalidParentRole
	}
	if _, err := s.repo.GetEdge(ctx, childCode, parentRole); err != nil {
		return err
	}
	return s.repo.DeleteEdge(ctx, childCode, parentRole)
}

// Ancestors walks upward from code, at most depth generations (capped by the
// configured bound).
func (s *Service) Ancestors(ctx context.Context, code string, depth int) ([]Relative, error) {
	return s.walk(ctx, code, depth, s.repo.ListParentEdges, func(e FamilyEdge) string { return e.ParentCode })
}

// Descendants walks downward from code, at most depth generations.
func (s *Service) Descendants(ctx context.Context, code string, depth int) ([]Relative, error) {
	return s.walk(ctx, code, depth, s.repo.ListChildEdges, func(e FamilyEdge) string { return e.ChildCode })
}

func (s *Service) walk(
	ctx context.Context,
	code string,
	depth int,
	expand func(context.Context, string) ([]FamilyEdge, error),
	pick func(FamilyEdge) string,
) ([]Relative, error) {
	if depth <= 0 || depth > s.traversalDepth {
		depth = s.traversalDepth
	}

	var result []Relative
	frontier := []string{code}
	seen := map[string]bool{code: true}

	for level := 1; level <= depth && len(frontier) > 0; level++ {
		var next []string
		for _, current := range frontier {
			edges, err := expand(ctx, current)
			if err != nil {
				return nil, err
			}
			for _, edge := range edges {
				other := pick(edge)
				if seen[other] {
					continue
				}
				seen[other] = true
				result = append(result, Relative{Code: other, Role: edge.ParentRole, Depth: level})
				next = append(next, other)
			}
		}
		frontier = next
	}

	return result, nil
}

// TreeOf returns the family tree containing the member.
func (s *Service) TreeOf(ctx context.Context, memberCode string) (*FamilyTree, error) {
	return s.repo.GetTreeByMember(ctx, memberCode)
}

// HeadsOf returns the designated head codes for the tree containing
// memberCode. No tree or no designation yields an empty slice.
func (s *Service) HeadsOf(ctx context.Context, memberCode string) ([]string, error) {
	t, err := s.repo.GetTreeByMember(ctx, memberCode)
	if err != nil {
		if errors.Is(err, ErrTreeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var heads []string
	if t.HeadA != nil && *t.HeadA != "" {
		heads = append(heads, *t.HeadA)
	}
	if t.HeadB != nil && *t.HeadB != "" {
		heads = append(heads, *t.HeadB)
	}
	return heads, nil
}

// SetHeads reassigns the two head slots of the actor's tree. Only a current
// head or an administrator may do so, and every nominated head must already
// be a member of the tree. A nil slot keeps its current value; an empty
// string clears it.
func (s *Service) SetHeads(ctx context.Context, actor *member.Member, headA, headB *string) (*FamilyTree, error) {
	if actor == nil {
		return nil, ErrNotHead
	}

	var result *FamilyTree
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		t, err := tx.GetTreeByMember(ctx, actor.Code)
		if err != nil {
			return err
		}

		isHead := (t.HeadA != nil && *t.HeadA == actor.Code) || (t.HeadB != nil && *t.HeadB == actor.Code)
		if !isHead && actor.Role != member.RoleAdmin {
			return ErrNotHead
		}

		newA := resolveHead(t.HeadA, headA)
		newB := resolveHead(t.HeadB, headB)

		for _, head := range []*string{newA, newB} {
			if head == nil || *head == "" {
				continue
			}
			isMember, err := tx.IsTreeMember(ctx, t.ID, *head)
			if err != nil {
				return err
			}
			if !isMember {
				return ErrHeadNotMember
			}
		}

		if err := tx.UpdateHeads(ctx, t.ID, newA, newB); err != nil {
			return err
		}

		t.HeadA = newA
		t.HeadB = newB
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func resolveHead(current, requested *string) *string {
	if requested == nil {
		return current
	}
	trimmed := strings.TrimSpace(*requested)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
