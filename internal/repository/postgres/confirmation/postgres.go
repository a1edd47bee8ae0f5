package confirmation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	treedomain "kinship-app-go/internal/domain/tree"
	treerepo "kinship-app-go/internal/repository/postgres/tree"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(confirmationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// Edges returns the family graph bound to the same gorm handle, so edge
// writes during a resolution join the resolution's transaction.
func (r *PostgresRepository) Edges() treedomain.Repository {
	return treerepo.NewPostgres(r.db)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*confirmationdomain.ConfirmationRequest, error) {
	var req confirmationdomain.ConfirmationRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, confirmationdomain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*confirmationdomain.ConfirmationRequest, error) {
	var req confirmationdomain.ConfirmationRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, confirmationdomain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) FindPending(ctx context.Context, childCode, parentRole string) (*confirmationdomain.ConfirmationRequest, error) {
	var req confirmationdomain.ConfirmationRequest
	err := r.db.WithContext(ctx).
		Where("child_code = ? AND parent_role = ? AND status = ?", childCode, parentRole, confirmationdomain.StatusPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, confirmationdomain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req *confirmationdomain.ConfirmationRequest) error {
	err := r.db.WithContext(ctx).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The partial unique index on pending (child_code, parent_role)
		// closes the race between two simultaneous claims.
		return confirmationdomain.ErrDuplicatePending
	}
	return err
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string, resolvedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&confirmationdomain.ConfirmationRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "resolved_at": resolvedAt}).Error
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]confirmationdomain.ConfirmationRequest, error) {
	var requests []confirmationdomain.ConfirmationRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", confirmationdomain.StatusPending).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
