package utils

import (
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseInt converts a positive integer query value, falling back to defaultValue.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}
	return result
}

// ParseDate reads a YYYY-MM-DD civil date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
