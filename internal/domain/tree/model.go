package tree

import "time"

const (
	ParentRoleFather = "father"
	ParentRoleMother = "mother"
)

func ValidParentRole(role string) bool {
	return role == ParentRoleFather || role == ParentRoleMother
}

// FamilyTree groups the members descending from a root and carries up to two
// delegated family heads. An empty head slot means undesignated, not anyone.
type FamilyTree struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	RootCode  string    `gorm:"not null;uniqueIndex"`
	HeadA     *string   `gorm:"column:head_a"`
	HeadB     *string   `gorm:"column:head_b"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type TreeMember struct {
	TreeID     string    `gorm:"type:uuid;primaryKey"`
	MemberCode string    `gorm:"primaryKey"`
	JoinedAt   time.Time `gorm:"autoCreateTime"`
}

// FamilyEdge is a confirmed child→parent link. At most one edge per
// (child, parent_role); only the confirmation workflow creates them.
type FamilyEdge struct {
	ChildCode  string    `gorm:"primaryKey" json:"child_code"`
	ParentRole string    `gorm:"primaryKey;type:varchar(8)" json:"parent_role"`
	ParentCode string    `gorm:"not null;index" json:"parent_code"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Edges holds a child's parent slots.
type Edges struct {
	Father *FamilyEdge `json:"father,omitempty"`
	Mother *FamilyEdge `json:"mother,omitempty"`
}

// Relative is one hop of an ancestor or descendant walk.
type Relative struct {
	Code  string `json:"code"`
	Role  string `json:"role"`
	Depth int    `json:"depth"`
}
