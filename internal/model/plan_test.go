package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanByKey(t *testing.T) {
	tests := []struct {
		key     string
		found   bool
		credits int
	}{
		{"free", true, 3},
		{"basic", true, 10},
		{"standard", true, 30},
		{"pro", true, 100},
		{"enterprise", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		plan, ok := PlanByKey(tt.key)
		assert.Equal(t, tt.found, ok, "key %q", tt.key)
		if tt.found {
			assert.Equal(t, tt.credits, plan.Credits)
		}
	}
}

func TestPlansOrder(t *testing.T) {
	all := Plans()
	assert.Len(t, all, 4)
	assert.Equal(t, PlanFree, all[0].Key)
	assert.Equal(t, PlanPro, all[3].Key)

	// Free tier is the only non-monthly one and the only one without a price id.
	assert.Equal(t, "one-time", all[0].Interval)
	assert.Empty(t, all[0].PriceID)
	for _, plan := range all[1:] {
		assert.Equal(t, "monthly", plan.Interval)
		assert.NotEmpty(t, plan.PriceID)
		assert.True(t, plan.Price.IsPositive())
	}
}
