package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"checkwise/internal/cache"
	"checkwise/internal/errors"
	"checkwise/internal/model"
	"checkwise/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// creditsResetInterval is advisory metadata only: no scheduler resets credits
// automatically.
const creditsResetInterval = 30 * 24 * time.Hour

// UserService exposes user and credit-ledger operations.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	// ApplyPlan switches the user to a plan from the static table, resetting
	// both credit counters to the plan allotment.
	ApplyPlan(ctx context.Context, userID, planKey string) (*model.User, error)
	// SeedUsers creates or updates demo users.
	SeedUsers(ctx context.Context, users []model.User) (int, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ApplyPlan looks the plan up in the static table and resets the ledger.
func (s *userService) ApplyPlan(ctx context.Context, userID, planKey string) (*model.User, error) {
	plan, ok := model.PlanByKey(planKey)
	if !ok {
		return nil, errors.ErrInvalidPlan
	}

	resetDate := time.Now().Add(creditsResetInterval)
	user, err := s.repo.UpdatePlan(ctx, userID, plan.Key, plan.Credits, plan.Credits, resetDate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("apply plan: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(userID))
	return user, nil
}

// SeedUsers creates or updates demo users.
func (s *userService) SeedUsers(ctx context.Context, users []model.User) (int, error) {
	count := 0
	for i := range users {
		if _, err := s.repo.Upsert(ctx, &users[i]); err != nil {
			return count, fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
		_ = s.cache.Delete(ctx, userCacheKey(users[i].ID))
		count++
	}
	return count, nil
}
