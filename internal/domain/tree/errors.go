package tree

import "errors"

var (
	ErrSlotOccupied      = errors.New("parent slot already occupied")
	ErrUnknownMember     = errors.New("unknown member")
	ErrSelfParent        = errors.New("cannot be own parent")
	ErrCycle             = errors.New("edge would create a cycle")
	ErrEdgeNotFound      = errors.New("edge not found")
	ErrTreeNotFound      = errors.New("tree not found")
	ErrNotHead           = errors.New("not a family head")
	ErrHeadNotMember     = errors.New("head must be a tree member")
	ErrInvalidParentRole = errors.New("invalid parent role")
)
