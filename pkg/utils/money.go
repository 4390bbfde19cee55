package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places of converted amounts.
const AmountPlaces = 2

// ConvertAmount returns value*rate rounded to two places, halves away from zero.
// The product is computed in decimal so that 1.005 rounds to 1.01.
func ConvertAmount(value, rate float64) float64 {
	product := decimal.NewFromFloat(value).Mul(decimal.NewFromFloat(rate))
	return product.Round(AmountPlaces).InexactFloat64()
}
