// Package scraper resolves a product URL into descriptive fields. Real page
// scraping is delegated to an external collaborator; the stub here produces
// synthetic data after a fixed delay so the rest of the pipeline can run
// against it.
package scraper

import (
	"context"
	"time"
)

// ProductData holds the descriptive fields resolved for a product URL.
type ProductData struct {
	Name           string
	Price          string
	Image          string
	ReviewsSummary string
	Description    string
}

// Fetcher resolves product data for a URL and platform tag. Implementations
// must not fail for a syntactically valid URL; the only error path is caller
// cancellation through the context.
type Fetcher interface {
	Fetch(ctx context.Context, url, platform string) (*ProductData, error)
}

type stubFetcher struct {
	delay time.Duration
}

// NewStubFetcher returns a Fetcher producing synthetic product data after the
// given delay, standing in for a real scraping service.
func NewStubFetcher(delay time.Duration) Fetcher {
	return &stubFetcher{delay: delay}
}

// Fetch simulates network latency, then returns synthetic product fields.
func (f *stubFetcher) Fetch(ctx context.Context, url, platform string) (*ProductData, error) {
	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &ProductData{
		Name:           "Sample product - " + platform,
		Price:          "$29.99",
		Image:          "https://placehold.co/400x400/3B82F6/FFFFFF/png?text=Product",
		ReviewsSummary: "Overall rating 4.3 out of 5 stars, across 2,341 reviews",
		Description:    "Good quality product with generally positive reviews",
	}, nil
}
