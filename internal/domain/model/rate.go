package model

import (
	"time"
	"unicode/utf8"
)

// CodeLength is the length of an ISO 4217 currency code.
const CodeLength = 3

// Rate is a single currency entry of a published table. Mid is the value of one
// unit of the currency in PLN.
type Rate struct {
	Currency string  `json:"currency"`
	Code     string  `json:"code"`
	Mid      float64 `json:"mid"`
}

// Table is one published NBP table snapshot.
type Table struct {
	Table         TableID   `json:"table"`
	No            string    `json:"no"`
	EffectiveDate time.Time `json:"effective_date"`
	Rates         []Rate    `json:"rates"`
}

// ValidCode reports whether code has exactly three characters. The charset is not checked.
func ValidCode(code string) bool {
	return utf8.RuneCountInString(code) == CodeLength
}

// CodesOf returns the codes of rates in order, duplicates included.
func CodesOf(rates []Rate) []string {
	codes := make([]string, 0, len(rates))
	for _, rate := range rates {
		codes = append(codes, rate.Code)
	}
	return codes
}
