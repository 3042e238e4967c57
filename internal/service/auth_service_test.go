package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"checkwise/internal/auth"
	"checkwise/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) DecrementCredits(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePlan(ctx context.Context, id string, planType model.PlanType, creditsTotal, creditsRemaining int, resetDate time.Time) (*model.User, error) {
	args := m.Called(ctx, id, planType, creditsTotal, creditsRemaining, resetDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		firstName     string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "successful registration starts on the free plan",
			email:     "new@example.com",
			password:  "password123",
			firstName: "New",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "duplicate email",
			email:     "taken@example.com",
			password:  "password123",
			firstName: "Taken",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{
					ID:    "existing-id",
					Email: "taken@example.com",
				}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.email, tt.password, tt.firstName, "")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.Equal(t, model.PlanFree, user.PlanType)
				assert.Equal(t, 3, user.CreditsTotal)
				assert.Equal(t, 3, user.CreditsRemaining)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           "user-1",
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, "user-1", "test@example.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "invalid credentials - user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           "user-1",
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshTokenStr, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshTokenStr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshTokenStr)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}
