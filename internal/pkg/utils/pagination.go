package utils

import (
	"net/http"
	"strconv"
)

// DefaultAlertLimit is the number of alerts returned when no limit is given
const DefaultAlertLimit = 50

// DefaultEventLimit is the number of security events returned when no limit is given
const DefaultEventLimit = 100

// MaxLimit caps any list request
const MaxLimit = 500

// ParseLimit reads the "limit" query parameter. Missing, malformed or
// non-positive values fall back to def; values above MaxLimit are clamped.
func ParseLimit(r *http.Request, def int) int {
	limit := parseIntQuery(r.URL.Query().Get("limit"), def)
	if limit < 1 {
		limit = def
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}

func parseIntQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
