package utils

import (
	"testing"
	"time"
)

func TestConvertAmount(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
		rate  float64
		want  float64
	}{
		{"whole", 10, 4.00, 40.00},
		{"zero value", 0, 4.1234, 0},
		{"rounds down", 3, 1.1111, 3.33},
		{"rounds up", 3, 1.1117, 3.34},
		{"half away from zero", 1, 1.005, 1.01},
		{"half at second place", 1, 0.125, 0.13},
		{"large", 1234567.89, 4.3215, 5335185.14},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConvertAmount(tc.value, tc.rate); got != tc.want {
				t.Errorf("ConvertAmount(%v, %v) = %v, want %v", tc.value, tc.rate, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-10-11")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if !date.Equal(time.Date(2024, 10, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date: %v", date)
	}
	if FormatDate(date) != "2024-10-11" {
		t.Errorf("FormatDate() = %s", FormatDate(date))
	}

	if _, err := ParseDate("11.10.2024"); err == nil {
		t.Error("Expected error for non-ISO date")
	}
}
