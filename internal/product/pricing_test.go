package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount *decimal.Decimal
		want     string
	}{
		{"no discount", "100", nil, "100"},
		{"discount applies", "100", decPtr("80"), "80"},
		{"zero discount ignored", "100", decPtr("0"), "100"},
		{"discount not below price ignored", "100", decPtr("100"), "100"},
		{"fractional", "19.99", decPtr("14.50"), "14.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePrice(dec(tt.price), tt.discount)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestValidatePricing(t *testing.T) {
	assert.NoError(t, validatePricing(dec("100"), nil))
	assert.NoError(t, validatePricing(dec("100"), decPtr("0")))
	assert.ErrorIs(t, validatePricing(dec("0"), nil), errInvalidPrice)
	assert.ErrorIs(t, validatePricing(dec("100"), decPtr("100")), errInvalidDiscount)
	assert.ErrorIs(t, validatePricing(dec("100"), decPtr("-1")), errInvalidDiscount)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off%`, likePattern("50% off"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}
