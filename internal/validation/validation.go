package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrCityEmpty is returned when the city is empty or whitespace-only after trim.
var ErrCityEmpty = errors.New("city is required")

// ErrCityTooLong is returned when the city name exceeds the maximum length.
var ErrCityTooLong = errors.New("city name too long")

// ErrAmountInvalid is returned when the amount does not parse to a positive
// number. Zero is rejected, matching the documented endpoint behavior.
var ErrAmountInvalid = errors.New("amount must be a positive number")

// MaxCityLength bounds free-text city names in runes.
const MaxCityLength = 100

// ValidateCity trims the input and enforces the length bound. City names are
// free text (the upstream resolves them), so no character restrictions beyond
// non-empty.
func ValidateCity(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrCityEmpty
	}
	if len([]rune(s)) > MaxCityLength {
		return "", ErrCityTooLong
	}
	return s, nil
}

// ParseCoordinates parses a lat/lon parameter pair. ok is false when either
// value is absent or unparseable.
func ParseCoordinates(latParam, lonParam string) (lat, lon float64, ok bool) {
	latParam = strings.TrimSpace(latParam)
	lonParam = strings.TrimSpace(lonParam)
	if latParam == "" || lonParam == "" {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latParam, 64)
	lon, errLon := strconv.ParseFloat(lonParam, 64)
	if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// ParseAmount parses a currency amount. Rejects non-numeric input, NaN/Inf,
// negatives and zero.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrAmountInvalid
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrAmountInvalid
	}
	if amount <= 0 {
		return 0, ErrAmountInvalid
	}
	return amount, nil
}
