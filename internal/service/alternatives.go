package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"checkwise/internal/model"
)

// Fallback values used when the original price string does not parse.
const (
	fallbackPriceImproved = "$29.99"
	fallbackPriceTrusted  = "$27.99"
	fallbackPricePro      = "$34.99"
	fallbackSavingsSmall  = "$5"
	fallbackSavingsMedium = "$7"
)

var (
	ratioImproved        = decimal.NewFromFloat(0.90)
	ratioTrusted         = decimal.NewFromFloat(0.85)
	ratioPro             = decimal.NewFromFloat(1.10)
	ratioSavingsImproved = decimal.NewFromFloat(0.10)
	ratioSavingsTrusted  = decimal.NewFromFloat(0.15)
)

// synthesizeAlternatives builds exactly three templated alternative-product
// suggestions. It is deterministic and makes no external call; no real
// alternative discovery exists, hence the placeholder links.
func synthesizeAlternatives(input AnalysisInput) []model.Alternative {
	price := parsePrice(input.ProductPrice)
	hasPrice := price.IsPositive()

	improved := model.Alternative{
		Name:       input.ProductName + " - Improved Version",
		URL:        "#",
		Price:      fallbackPriceImproved,
		TrustScore: 85,
		Savings:    fallbackSavingsSmall,
		Highlights: []string{
			"Higher ratings from users",
			"Longer warranty",
			"Free shipping",
		},
	}
	trusted := model.Alternative{
		Name:       "Trusted alternative from " + input.Platform,
		URL:        "#",
		Price:      fallbackPriceTrusted,
		TrustScore: 88,
		Savings:    fallbackSavingsMedium,
		Highlights: []string{
			"Excellent quality according to reviews",
			"Better price",
			"Trusted seller",
			"Free returns",
		},
	}
	pro := model.Alternative{
		Name:       input.ProductName + " Pro",
		URL:        "#",
		Price:      fallbackPricePro,
		TrustScore: 92,
		Savings:    "Extra features",
		Highlights: []string{
			"Upgraded version",
			"Extra features",
			"Extended warranty",
			"Excellent ratings",
		},
	}

	if hasPrice {
		improved.Price = formatMoney(price.Mul(ratioImproved))
		improved.Savings = formatMoney(price.Mul(ratioSavingsImproved))
		trusted.Price = formatMoney(price.Mul(ratioTrusted))
		trusted.Savings = formatMoney(price.Mul(ratioSavingsTrusted))
		pro.Price = formatMoney(price.Mul(ratioPro))
	}

	return []model.Alternative{improved, trusted, pro}
}

// parsePrice extracts a numeric price by stripping everything that is not a
// digit or a dot. An empty or unparseable price yields zero.
func parsePrice(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
