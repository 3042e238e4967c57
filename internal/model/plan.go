package model

import "github.com/shopspring/decimal"

// PlanType identifies a subscription tier.
type PlanType string

const (
	PlanFree     PlanType = "free"
	PlanBasic    PlanType = "basic"
	PlanStandard PlanType = "standard"
	PlanPro      PlanType = "pro"
)

// Plan is one subscription tier: a fixed monthly credit allotment and price.
type Plan struct {
	Key      PlanType        `json:"key"`
	Name     string          `json:"name"`
	Credits  int             `json:"credits"`
	Price    decimal.Decimal `json:"price"`
	PriceID  string          `json:"priceId,omitempty"` // payment provider price reference (stub)
	Interval string          `json:"interval"`          // "one-time" or "monthly"
	Popular  bool            `json:"popular,omitempty"`
}

// plans is the static plan configuration table.
var plans = map[PlanType]Plan{
	PlanFree: {
		Key:      PlanFree,
		Name:     "Free Trial",
		Credits:  3,
		Price:    decimal.Zero,
		Interval: "one-time",
	},
	PlanBasic: {
		Key:      PlanBasic,
		Name:     "Basic",
		Credits:  10,
		Price:    decimal.NewFromFloat(3.99),
		PriceID:  "price_basic",
		Interval: "monthly",
	},
	PlanStandard: {
		Key:      PlanStandard,
		Name:     "Standard",
		Credits:  30,
		Price:    decimal.NewFromFloat(6.99),
		PriceID:  "price_standard",
		Interval: "monthly",
		Popular:  true,
	},
	PlanPro: {
		Key:      PlanPro,
		Name:     "Pro",
		Credits:  100,
		Price:    decimal.NewFromFloat(12.99),
		PriceID:  "price_pro",
		Interval: "monthly",
	},
}

// planOrder fixes the display order of the tiers.
var planOrder = []PlanType{PlanFree, PlanBasic, PlanStandard, PlanPro}

// PlanByKey looks up a plan by its key.
func PlanByKey(key string) (Plan, bool) {
	plan, ok := plans[PlanType(key)]
	return plan, ok
}

// Plans returns all plans in display order.
func Plans() []Plan {
	out := make([]Plan, 0, len(planOrder))
	for _, key := range planOrder {
		out = append(out, plans[key])
	}
	return out
}
