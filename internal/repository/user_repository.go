package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"checkwise/internal/errors"
	"checkwise/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Upsert inserts the user or, when the id already exists, refreshes the
	// identity fields without touching plan or credit columns.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	// DecrementCredits atomically consumes one credit. The conditional update
	// guarantees credits_remaining never goes negative even under concurrent
	// requests from the same user.
	DecrementCredits(ctx context.Context, id string) (*model.User, error)
	UpdatePlan(ctx context.Context, id string, planType model.PlanType, creditsTotal, creditsRemaining int, resetDate time.Time) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, user.ID)
}

func (r *userRepository) DecrementCredits(ctx context.Context, id string) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND credits_remaining > 0", id).
		UpdateColumn("credits_remaining", gorm.Expr("credits_remaining - 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the user vanished between gate and settle, or a concurrent
		// request consumed the last credit first.
		if _, err := r.FindByID(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrUserNotFound
			}
			return nil, err
		}
		return nil, errors.ErrInsufficientCredits
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) UpdatePlan(ctx context.Context, id string, planType model.PlanType, creditsTotal, creditsRemaining int, resetDate time.Time) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"plan_type":          planType,
			"credits_total":      creditsTotal,
			"credits_remaining":  creditsRemaining,
			"credits_reset_date": resetDate,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}
