package tree

import (
	"context"
	"errors"

	"gorm.io/gorm"
	memberdomain "kinship-app-go/internal/domain/member"
	treedomain "kinship-app-go/internal/domain/tree"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(treedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetEdge(ctx context.Context, childCode, parentRole string) (*treedomain.FamilyEdge, error) {
	var edge treedomain.FamilyEdge
	err := r.db.WithContext(ctx).
		Where("child_code = ? AND parent_role = ?", childCode, parentRole).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, treedomain.ErrEdgeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *PostgresRepository) ListParentEdges(ctx context.Context, childCode string) ([]treedomain.FamilyEdge, error) {
	var edges []treedomain.FamilyEdge
	if err := r.db.WithContext(ctx).
		Where("child_code = ?", childCode).
		Order("parent_role asc").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *PostgresRepository) ListChildEdges(ctx context.Context, parentCode string) ([]treedomain.FamilyEdge, error) {
	var edges []treedomain.FamilyEdge
	if err := r.db.WithContext(ctx).
		Where("parent_code = ?", parentCode).
		Order("created_at asc").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *PostgresRepository) CreateEdge(ctx context.Context, edge *treedomain.FamilyEdge) error {
	err := r.db.WithContext(ctx).Create(edge).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return treedomain.ErrSlotOccupied
	}
	return err
}

func (r *PostgresRepository) DeleteEdge(ctx context.Context, childCode, parentRole string) error {
	return r.db.WithContext(ctx).
		Delete(&treedomain.FamilyEdge{}, "child_code = ? AND parent_role = ?", childCode, parentRole).Error
}

func (r *PostgresRepository) MemberExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetTreeByMember(ctx context.Context, memberCode string) (*treedomain.FamilyTree, error) {
	var t treedomain.FamilyTree
	err := r.db.WithContext(ctx).
		Table("family_trees").
		Joins("join tree_members on tree_members.tree_id = family_trees.id").
		Where("tree_members.member_code = ?", memberCode).
		Limit(1).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, treedomain.ErrTreeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) GetTreeByRoot(ctx context.Context, rootCode string) (*treedomain.FamilyTree, error) {
	var t treedomain.FamilyTree
	err := r.db.WithContext(ctx).Where("root_code = ?", rootCode).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, treedomain.ErrTreeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTree(ctx context.Context, t *treedomain.FamilyTree) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PostgresRepository) AddTreeMember(ctx context.Context, treeID, memberCode string) error {
	return r.db.WithContext(ctx).Create(&treedomain.TreeMember{TreeID: treeID, MemberCode: memberCode}).Error
}

func (r *PostgresRepository) IsTreeMember(ctx context.Context, treeID, memberCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&treedomain.TreeMember{}).
		Where("tree_id = ? AND member_code = ?", treeID, memberCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsInAnyTree(ctx context.Context, memberCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&treedomain.TreeMember{}).
		Where("member_code = ?", memberCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) UpdateHeads(ctx context.Context, treeID string, headA, headB *string) error {
	return r.db.WithContext(ctx).Model(&treedomain.FamilyTree{}).
		Where("id = ?", treeID).
		Updates(map[string]interface{}{"head_a": headA, "head_b": headB}).Error
}
