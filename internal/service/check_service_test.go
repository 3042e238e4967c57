package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "checkwise/internal/errors"
	"checkwise/internal/model"
	"checkwise/internal/scraper"
)

// MockCheckRepository is a mock implementation of CheckRepository.
type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) Create(ctx context.Context, check *model.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepository) FindByID(ctx context.Context, id string) (*model.Check, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Check), args.Error(1)
}

func (m *MockCheckRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Check, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Check), args.Error(1)
}

// MockCheckEventRepository is a mock implementation of CheckEventRepository.
type MockCheckEventRepository struct {
	mock.Mock
}

func (m *MockCheckEventRepository) Create(ctx context.Context, event *model.CheckEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCheckEventRepository) CreateBatch(ctx context.Context, events []model.CheckEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockFetcher is a mock implementation of scraper.Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, platform string) (*scraper.ProductData, error) {
	args := m.Called(ctx, url, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scraper.ProductData), args.Error(1)
}

// MockTrustAnalyzer is a mock implementation of TrustAnalyzer.
type MockTrustAnalyzer struct {
	mock.Mock
}

func (m *MockTrustAnalyzer) Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AnalysisResult), args.Error(1)
}

type checkServiceMocks struct {
	userRepo  *MockUserRepository
	checkRepo *MockCheckRepository
	eventRepo *MockCheckEventRepository
	fetcher   *MockFetcher
	analyzer  *MockTrustAnalyzer
}

func newCheckServiceWithMocks() (CheckService, *checkServiceMocks) {
	m := &checkServiceMocks{
		userRepo:  new(MockUserRepository),
		checkRepo: new(MockCheckRepository),
		eventRepo: new(MockCheckEventRepository),
		fetcher:   new(MockFetcher),
		analyzer:  new(MockTrustAnalyzer),
	}
	// The audit trail is written off the request path, so event expectations
	// stay optional.
	m.eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.eventRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := NewCheckService(m.userRepo, m.checkRepo, m.eventRepo, m.fetcher, m.analyzer, nil)
	return svc, m
}

func activeUser(credits int) *model.User {
	return &model.User{
		ID:               "user-1",
		Email:            "test@example.com",
		PlanType:         model.PlanFree,
		CreditsTotal:     3,
		CreditsRemaining: credits,
	}
}

func sampleProduct() *scraper.ProductData {
	return &scraper.ProductData{
		Name:           "Sample product - amazon",
		Price:          "$29.99",
		Image:          "https://placehold.co/400x400",
		ReviewsSummary: "Overall rating 4.3 out of 5 stars, across 2,341 reviews",
	}
}

func sampleAnalysis(score int) *AnalysisResult {
	return &AnalysisResult{
		TrustScore:     score,
		TrustLevel:     model.TrustLevelForScore(score),
		PositivePoints: []string{"good reviews"},
		NegativePoints: []string{"short warranty"},
		Recommendation: "Safe to buy.",
		AIAnalysis:     "Looks legitimate.",
		Alternatives:   []model.Alternative{},
	}
}

func TestCheckService_CreateCheck_Success(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)
	m.fetcher.On("Fetch", mock.Anything, "https://www.amazon.com/dp/B0TEST", "amazon").Return(sampleProduct(), nil)
	m.analyzer.On("Analyze", mock.Anything, mock.AnythingOfType("service.AnalysisInput")).Return(sampleAnalysis(85), nil)
	m.checkRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Check")).Return(nil)
	m.userRepo.On("DecrementCredits", mock.Anything, "user-1").Return(activeUser(2), nil)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.NoError(t, err)
	assert.NotNil(t, check)
	assert.Equal(t, "user-1", check.UserID)
	assert.Equal(t, "https://www.amazon.com/dp/B0TEST", check.ProductURL)
	assert.Equal(t, 85, check.TrustScore)
	assert.Equal(t, model.TrustLevelTrusted, check.TrustLevel)

	m.userRepo.AssertExpectations(t)
	m.checkRepo.AssertExpectations(t)
	m.fetcher.AssertExpectations(t)
	m.analyzer.AssertExpectations(t)
}

func TestCheckService_CreateCheck_NoCredits(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(0), nil)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)
	assert.Nil(t, check)

	// Nothing downstream of the gate runs.
	m.fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	m.analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	m.checkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.userRepo.AssertNotCalled(t, "DecrementCredits", mock.Anything, mock.Anything)
}

func TestCheckService_CreateCheck_UserNotFound(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	check, err := svc.CreateCheck(context.Background(), "ghost", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, check)
}

func TestCheckService_CreateCheck_InvalidLink(t *testing.T) {
	tests := []struct {
		name       string
		productURL string
		platform   string
	}{
		{name: "empty url", productURL: "", platform: "amazon"},
		{name: "no host", productURL: "not a url", platform: "amazon"},
		{name: "bad scheme", productURL: "ftp://example.com/item", platform: "amazon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCheckServiceWithMocks()
			m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)

			check, err := svc.CreateCheck(context.Background(), "user-1", tt.productURL, tt.platform)

			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Nil(t, check)
			m.userRepo.AssertNotCalled(t, "DecrementCredits", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckService_CreateCheck_DerivesPlatformFromURL(t *testing.T) {
	tests := []struct {
		name             string
		productURL       string
		expectedPlatform string
	}{
		{name: "known host", productURL: "https://www.amazon.com/dp/B0TEST", expectedPlatform: "amazon"},
		{name: "unknown host falls back to other", productURL: "https://store.example.com/p/1", expectedPlatform: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCheckServiceWithMocks()

			m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)
			m.fetcher.On("Fetch", mock.Anything, tt.productURL, tt.expectedPlatform).Return(sampleProduct(), nil)
			m.analyzer.On("Analyze", mock.Anything, mock.AnythingOfType("service.AnalysisInput")).Return(sampleAnalysis(85), nil)
			m.checkRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Check")).Return(nil)
			m.userRepo.On("DecrementCredits", mock.Anything, "user-1").Return(activeUser(2), nil)

			check, err := svc.CreateCheck(context.Background(), "user-1", tt.productURL, "")

			assert.NoError(t, err)
			assert.NotNil(t, check)
			assert.Equal(t, tt.expectedPlatform, check.Platform)
			m.fetcher.AssertExpectations(t)
		})
	}
}

func TestCheckService_CreateCheck_FetchFailure(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)
	m.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
	assert.Nil(t, check)

	// A failed fetch never costs a credit.
	m.userRepo.AssertNotCalled(t, "DecrementCredits", mock.Anything, mock.Anything)
	m.checkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckService_CreateCheck_AnalysisFailure(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)
	m.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(sampleProduct(), nil)
	m.analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAnalysisService)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAnalysisService)
	assert.Nil(t, check)
	m.userRepo.AssertNotCalled(t, "DecrementCredits", mock.Anything, mock.Anything)
}

func TestCheckService_CreateCheck_PersistFailureKeepsCredit(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(3), nil)
	m.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(sampleProduct(), nil)
	m.analyzer.On("Analyze", mock.Anything, mock.Anything).Return(sampleAnalysis(85), nil)
	m.checkRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.Nil(t, check)
	m.userRepo.AssertNotCalled(t, "DecrementCredits", mock.Anything, mock.Anything)
}

func TestCheckService_CreateCheck_SettleFailureIsSurfaced(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(1), nil)
	m.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(sampleProduct(), nil)
	m.analyzer.On("Analyze", mock.Anything, mock.Anything).Return(sampleAnalysis(85), nil)
	m.checkRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("DecrementCredits", mock.Anything, "user-1").Return(nil, apperrors.ErrInsufficientCredits)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)
	assert.Nil(t, check)
}

func TestCheckService_CreateCheck_UserVanishedAtSettle(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	m.userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser(1), nil)
	m.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(sampleProduct(), nil)
	m.analyzer.On("Analyze", mock.Anything, mock.Anything).Return(sampleAnalysis(85), nil)
	m.checkRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("DecrementCredits", mock.Anything, "user-1").Return(nil, apperrors.ErrUserNotFound)

	check, err := svc.CreateCheck(context.Background(), "user-1", "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, check)

	// The deleted-account case surfaces as a 404, not a generic 500.
	assert.Equal(t, http.StatusNotFound, apperrors.MapErrorToHTTP(err).StatusCode)
}

func TestCheckService_GetCheck(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		checkID       string
		setupMock     func(*MockCheckRepository)
		expectedError error
	}{
		{
			name:    "owner reads own check",
			userID:  "user-1",
			checkID: "check-1",
			setupMock: func(mRepo *MockCheckRepository) {
				mRepo.On("FindByID", mock.Anything, "check-1").Return(&model.Check{
					ID:     "check-1",
					UserID: "user-1",
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:    "non-owner is denied",
			userID:  "user-2",
			checkID: "check-1",
			setupMock: func(mRepo *MockCheckRepository) {
				mRepo.On("FindByID", mock.Anything, "check-1").Return(&model.Check{
					ID:     "check-1",
					UserID: "user-1",
				}, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:    "missing check",
			userID:  "user-1",
			checkID: "nope",
			setupMock: func(mRepo *MockCheckRepository) {
				mRepo.On("FindByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCheckNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCheckServiceWithMocks()
			tt.setupMock(m.checkRepo)

			check, err := svc.GetCheck(context.Background(), tt.userID, tt.checkID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, check)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, check)
				assert.Equal(t, tt.userID, check.UserID)
			}

			m.checkRepo.AssertExpectations(t)
		})
	}
}

func TestCheckService_ListChecks(t *testing.T) {
	svc, m := newCheckServiceWithMocks()

	stored := []model.Check{
		{ID: "check-2", UserID: "user-1"},
		{ID: "check-1", UserID: "user-1"},
	}
	m.checkRepo.On("FindByUserID", mock.Anything, "user-1", 10).Return(stored, nil)

	checks, err := svc.ListChecks(context.Background(), "user-1", 10)

	assert.NoError(t, err)
	assert.Len(t, checks, 2)
	assert.Equal(t, "check-2", checks[0].ID)
	m.checkRepo.AssertExpectations(t)
}
