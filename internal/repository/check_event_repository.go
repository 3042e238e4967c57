package repository

import (
	"context"

	"gorm.io/gorm"

	"checkwise/internal/model"
)

// CheckEventRepository defines audit log persistence operations.
type CheckEventRepository interface {
	Create(ctx context.Context, event *model.CheckEvent) error
	CreateBatch(ctx context.Context, events []model.CheckEvent) error
}

type checkEventRepository struct {
	db *gorm.DB
}

// NewCheckEventRepository creates a new check event repository.
func NewCheckEventRepository(db *gorm.DB) CheckEventRepository {
	return &checkEventRepository{db: db}
}

// Create creates a new audit entry.
func (r *checkEventRepository) Create(ctx context.Context, event *model.CheckEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CreateBatch creates multiple audit entries in a single statement.
func (r *checkEventRepository) CreateBatch(ctx context.Context, events []model.CheckEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(events, 100).Error
}
