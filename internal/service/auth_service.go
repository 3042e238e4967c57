package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"checkwise/internal/auth"
	"checkwise/internal/model"
	"checkwise/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService plays the identity-provider role: it mints the claims from
// which the rest of the API resolves the requesting user.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with hashed password. New users start on the
// free plan with its trial credit allotment.
func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	freePlan, _ := model.PlanByKey(string(model.PlanFree))
	user := &model.User{
		Email:            email,
		PasswordHash:     string(hashedPassword),
		FirstName:        firstName,
		LastName:         lastName,
		PlanType:         freePlan.Key,
		CreditsTotal:     freePlan.Credits,
		CreditsRemaining: freePlan.Credits,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
