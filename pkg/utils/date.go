package utils

import (
	"time"
)

// DateLayout is the date format used by the NBP API.
const DateLayout = "2006-01-02"

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
