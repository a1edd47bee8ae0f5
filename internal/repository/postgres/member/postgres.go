package member

import (
	"context"
	"errors"

	"gorm.io/gorm"
	memberdomain "kinship-app-go/internal/domain/member"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The violation may come from the code PK or the email index; tell
		// them apart so the issuance loop only retries real code collisions.
		var count int64
		if lookupErr := r.db.WithContext(ctx).Model(&memberdomain.Member{}).
			Where("email = ? AND code <> ?", m.Email, m.Code).
			Count(&count).Error; lookupErr == nil && count > 0 {
			return memberdomain.ErrEmailTaken
		}
		return memberdomain.ErrCodeTaken
	}
	return err
}

func (r *PostgresRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) UpdateActive(ctx context.Context, code string, active bool) error {
	return r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("code = ?", code).Update("active", active).Error
}
