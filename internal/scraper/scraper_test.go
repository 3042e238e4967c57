package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStubFetcher_Fetch(t *testing.T) {
	fetcher := NewStubFetcher(0)

	product, err := fetcher.Fetch(context.Background(), "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.NoError(t, err)
	assert.NotNil(t, product)
	assert.Equal(t, "Sample product - amazon", product.Name)
	assert.Equal(t, "$29.99", product.Price)
	assert.NotEmpty(t, product.Image)
	assert.NotEmpty(t, product.ReviewsSummary)
	assert.NotEmpty(t, product.Description)
}

func TestStubFetcher_Fetch_Cancelled(t *testing.T) {
	fetcher := NewStubFetcher(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	product, err := fetcher.Fetch(ctx, "https://www.amazon.com/dp/B0TEST", "amazon")

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, product)
}
