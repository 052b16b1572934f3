package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyHours   = errors.New("empty hours")
	ErrInvalidHours = errors.New("invalid hours")
)

// ParseHours parses the /monitor argument: a positive finite number of hours,
// fractional values allowed ("2", "0.5", "1.5"). Anything else is rejected so
// the caller answers "Bad number." without touching the job registry.
func ParseHours(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyHours
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	if h <= 0 || math.IsInf(h, 0) || math.IsNaN(h) {
		return 0, ErrInvalidHours
	}
	d := time.Duration(h * float64(time.Hour))
	if d <= 0 {
		return 0, ErrInvalidHours
	}
	return d, nil
}
