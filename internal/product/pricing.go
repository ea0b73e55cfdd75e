package product

import "github.com/shopspring/decimal"

// EffectivePrice returns discount when it is set, positive and below price.
func EffectivePrice(price decimal.Decimal, discount *decimal.Decimal) decimal.Decimal {
	if discount != nil && discount.IsPositive() && discount.LessThan(price) {
		return *discount
	}
	return price
}

func validatePricing(price decimal.Decimal, discount *decimal.Decimal) error {
	if !price.IsPositive() {
		return errInvalidPrice
	}
	if discount != nil && (discount.IsNegative() || !discount.LessThan(price)) {
		return errInvalidDiscount
	}
	return nil
}
