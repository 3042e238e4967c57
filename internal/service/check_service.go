package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"checkwise/internal/cache"
	"checkwise/internal/errors"
	"checkwise/internal/model"
	"checkwise/internal/repository"
	"checkwise/internal/scraper"
)

const (
	recentChecksCacheTTL = 1 * time.Minute
	recentChecksLimit    = 10
)

// CheckService runs the check lifecycle: gate on credits, fetch product data,
// analyze, persist one immutable record, settle the credit ledger.
type CheckService interface {
	CreateCheck(ctx context.Context, userID, productURL, platform string) (*model.Check, error)
	GetCheck(ctx context.Context, userID, checkID string) (*model.Check, error)
	// ListChecks returns the user's checks newest first; limit <= 0 means all.
	ListChecks(ctx context.Context, userID string, limit int) ([]model.Check, error)
}

type checkService struct {
	userRepo  repository.UserRepository
	checkRepo repository.CheckRepository
	eventRepo repository.CheckEventRepository
	fetcher   scraper.Fetcher
	analyzer  TrustAnalyzer
	validator *LinkValidator
	cache     *cache.Client
	// Channel for async audit logging
	eventChannel chan model.CheckEvent
}

// NewCheckService creates a new check service.
func NewCheckService(
	userRepo repository.UserRepository,
	checkRepo repository.CheckRepository,
	eventRepo repository.CheckEventRepository,
	fetcher scraper.Fetcher,
	analyzer TrustAnalyzer,
	cache *cache.Client,
) CheckService {
	service := &checkService{
		userRepo:     userRepo,
		checkRepo:    checkRepo,
		eventRepo:    eventRepo,
		fetcher:      fetcher,
		analyzer:     analyzer,
		validator:    NewLinkValidator(),
		cache:        cache,
		eventChannel: make(chan model.CheckEvent, 100),
	}

	// Start async audit worker
	go service.eventWorker(context.Background())

	return service
}

// eventWorker flushes audit entries in batches.
func (s *checkService) eventWorker(ctx context.Context) {
	batch := make([]model.CheckEvent, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-s.eventChannel:
			if !ok {
				if len(batch) > 0 {
					_ = s.eventRepo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, event)
			if len(batch) >= 10 {
				_ = s.eventRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.eventRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// CreateCheck runs the full check-creation workflow for one request. The
// sequence is strictly sequential and aborts on the first failure; nothing is
// retried. The credit is settled only after the record is persisted, so a
// failed persist never costs a credit. A failed settle after a successful
// persist leaves the check in place with the credit unconsumed; that gap is
// surfaced to the caller rather than compensated.
func (s *checkService) CreateCheck(ctx context.Context, userID, productURL, platform string) (*model.Check, error) {
	// Authorize
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	// Gate on the credit ledger before any work is done
	if !user.HasCredit() {
		return nil, errors.ErrInsufficientCredits
	}

	// Validate input. A missing platform tag is derived from the URL host;
	// unknown hosts fall under "other".
	if strings.TrimSpace(platform) == "" {
		platform = s.validator.GuessPlatform(productURL)
	}
	if err := s.validator.ValidateProductLink(productURL, platform); err != nil {
		return nil, err
	}

	// Fetch product data
	product, err := s.fetcher.Fetch(ctx, productURL, platform)
	if err != nil {
		s.recordEvent(ctx, userID, "", model.CheckEventFailed, err.Error())
		return nil, fmt.Errorf("%w: %v", errors.ErrFetchFailed, err)
	}

	// Analyze
	analysis, err := s.analyzer.Analyze(ctx, AnalysisInput{
		ProductName:        product.Name,
		ProductPrice:       product.Price,
		Platform:           platform,
		ReviewsSummary:     product.ReviewsSummary,
		ProductDescription: product.Description,
	})
	if err != nil {
		s.recordEvent(ctx, userID, "", model.CheckEventFailed, err.Error())
		return nil, err
	}

	// Persist one immutable record
	check := &model.Check{
		UserID:         userID,
		ProductURL:     productURL,
		ProductName:    product.Name,
		ProductPrice:   product.Price,
		ProductImage:   product.Image,
		Platform:       platform,
		TrustScore:     analysis.TrustScore,
		TrustLevel:     analysis.TrustLevel,
		PositivePoints: analysis.PositivePoints,
		NegativePoints: analysis.NegativePoints,
		Recommendation: analysis.Recommendation,
		AIAnalysis:     analysis.AIAnalysis,
		Alternatives:   analysis.Alternatives,
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		s.recordEvent(ctx, userID, "", model.CheckEventFailed, err.Error())
		return nil, fmt.Errorf("create check: %w", err)
	}

	// Settle the ledger. On failure the persisted check stands with the
	// credit unconsumed; the error is surfaced, not compensated.
	if _, err := s.userRepo.DecrementCredits(ctx, userID); err != nil {
		s.recordEvent(ctx, userID, check.ID, model.CheckEventFailed,
			fmt.Sprintf("check persisted but credit not settled: %v", err))
		return nil, fmt.Errorf("settle credits: %w", err)
	}

	// Invalidate read caches touched by this write
	_ = s.cache.Delete(ctx, userCacheKey(userID))
	_ = s.cache.Delete(ctx, recentChecksCacheKey(userID))

	s.recordEvent(ctx, userID, check.ID, model.CheckEventCreated, "")

	return check, nil
}

// GetCheck loads one check and verifies ownership. Existence is never leaked
// to non-owners beyond the 403.
func (s *checkService) GetCheck(ctx context.Context, userID, checkID string) (*model.Check, error) {
	check, err := s.checkRepo.FindByID(ctx, checkID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCheckNotFound
		}
		return nil, fmt.Errorf("get check: %w", err)
	}
	if check.UserID != userID {
		return nil, errors.ErrAccessDenied
	}
	return check, nil
}

// ListChecks returns the user's history newest first. The recent slice
// (limit == recentChecksLimit) is cached; full history always hits the store.
func (s *checkService) ListChecks(ctx context.Context, userID string, limit int) ([]model.Check, error) {
	cacheable := limit == recentChecksLimit
	if cacheable {
		if data, _ := s.cache.Get(ctx, recentChecksCacheKey(userID)); data != nil {
			var cached []model.Check
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	checks, err := s.checkRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}

	if cacheable {
		if payload, err := json.Marshal(checks); err == nil {
			_ = s.cache.Set(ctx, recentChecksCacheKey(userID), payload, recentChecksCacheTTL)
		}
	}
	return checks, nil
}

// recordEvent queues an audit entry without blocking the request path.
func (s *checkService) recordEvent(ctx context.Context, userID, checkID string, status model.CheckEventStatus, errorMessage string) {
	event := model.CheckEvent{
		UserID:       userID,
		CheckID:      checkID,
		Status:       status,
		ErrorMessage: errorMessage,
	}

	select {
	case s.eventChannel <- event:
	default:
		// Channel full, log synchronously as fallback
		_ = s.eventRepo.Create(ctx, &event)
	}
}

func recentChecksCacheKey(userID string) string {
	return "checks:recent:" + userID
}
