package repository

import (
	"context"

	"gorm.io/gorm"

	"checkwise/internal/model"
)

// CheckRepository defines check persistence operations. Checks are immutable:
// there is no update or delete.
type CheckRepository interface {
	Create(ctx context.Context, check *model.Check) error
	FindByID(ctx context.Context, id string) (*model.Check, error)
	// FindByUserID returns the user's checks newest first. A limit <= 0
	// returns the full history.
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.Check, error)
}

type checkRepository struct {
	db *gorm.DB
}

// NewCheckRepository creates a new check repository.
func NewCheckRepository(db *gorm.DB) CheckRepository {
	return &checkRepository{db: db}
}

// Create creates a new check record.
func (r *checkRepository) Create(ctx context.Context, check *model.Check) error {
	return r.db.WithContext(ctx).Create(check).Error
}

// FindByID finds a check by ID.
func (r *checkRepository) FindByID(ctx context.Context, id string) (*model.Check, error) {
	var check model.Check
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&check).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

// FindByUserID finds checks owned by a user, newest first.
func (r *checkRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Check, error) {
	var checks []model.Check
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
