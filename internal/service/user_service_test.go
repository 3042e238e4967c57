package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "checkwise/internal/errors"
	"checkwise/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "existing user",
			userID: "user-1",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByID", mock.Anything, "user-1").Return(&model.User{
					ID:    "user-1",
					Email: "test@example.com",
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:   "missing user",
			userID: "ghost",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.GetUser(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.userID, user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ApplyPlan(t *testing.T) {
	tests := []struct {
		name            string
		planKey         string
		setupMock       func(*MockUserRepository)
		expectedError   error
		expectedCredits int
	}{
		{
			name:    "upgrade to standard resets the ledger",
			planKey: "standard",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("UpdatePlan", mock.Anything, "user-1", model.PlanStandard, 30, 30, mock.AnythingOfType("time.Time")).
					Return(&model.User{
						ID:               "user-1",
						PlanType:         model.PlanStandard,
						CreditsTotal:     30,
						CreditsRemaining: 30,
					}, nil)
			},
			expectedError:   nil,
			expectedCredits: 30,
		},
		{
			name:          "unknown plan key",
			planKey:       "platinum",
			setupMock:     func(mRepo *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidPlan,
		},
		{
			name:    "missing user",
			planKey: "basic",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("UpdatePlan", mock.Anything, "user-1", model.PlanBasic, 10, 10, mock.AnythingOfType("time.Time")).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.ApplyPlan(context.Background(), "user-1", tt.planKey)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedCredits, user.CreditsTotal)
				assert.Equal(t, tt.expectedCredits, user.CreditsRemaining)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_SeedUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	users := []model.User{
		{ID: "seed-1", Email: "demo-free@checkwise.app"},
		{ID: "seed-2", Email: "demo-pro@checkwise.app"},
	}
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(&users[0], nil).Times(2)

	svc := NewUserService(mockRepo, nil)
	count, err := svc.SeedUsers(context.Background(), users)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	mockRepo.AssertExpectations(t)
}
