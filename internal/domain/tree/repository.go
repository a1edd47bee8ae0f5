package tree

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetEdge(ctx context.Context, childCode, parentRole string) (*FamilyEdge, error)
	ListParentEdges(ctx context.Context, childCode string) ([]FamilyEdge, error)
	ListChildEdges(ctx context.Context, parentCode string) ([]FamilyEdge, error)
	// CreateEdge returns ErrSlotOccupied when the (child, role) slot is
	// already filled; the unique index decides, not the caller's read.
	CreateEdge(ctx context.Context, edge *FamilyEdge) error
	DeleteEdge(ctx context.Context, childCode, parentRole string) error

	MemberExists(ctx context.Context, code string) (bool, error)

	GetTreeByMember(ctx context.Context, memberCode string) (*FamilyTree, error)
	GetTreeByRoot(ctx context.Context, rootCode string) (*FamilyTree, error)
	CreateTree(ctx context.Context, t *FamilyTree) error
	AddTreeMember(ctx context.Context, treeID, memberCode string) error
	IsTreeMember(ctx context.Context, treeID, memberCode string) (bool, error)
	IsInAnyTree(ctx context.Context, memberCode string) (bool, error)
	UpdateHeads(ctx context.Context, treeID string, headA, headB *string) error
}
