package services

import (
	"regexp"
	"strconv"
	"strings"
)

// durationRe matches composite expressions like "1d2h", "45m" or "1h30m".
// Segments are optional but must appear in day/hour/minute/second order.
var durationRe = regexp.MustCompile(`^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// ParseDuration converts a human-entered duration expression into seconds.
// A plain non-negative integer is taken as seconds; otherwise the composite
// form above is required. Case-insensitive, surrounding whitespace ignored.
// Returns ErrInvalidDuration when the text matches neither form.
func ParseDuration(text string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, ErrInvalidDuration
	}

	if seconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		if seconds < 0 {
			return 0, ErrInvalidDuration
		}
		return seconds, nil
	}

	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrInvalidDuration
	}

	units := []int64{86400, 3600, 60, 1}
	var total int64
	seen := false
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		total += v * unit
		seen = true
	}
	if !seen {
		return 0, ErrInvalidDuration
	}
	return total, nil
}
