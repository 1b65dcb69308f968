package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformed is returned when a time string has no parts or more than three.
	ErrMalformed = errors.New("expected SS, MM:SS or HH:MM:SS")
	// ErrInvalidPart is returned when a colon-separated part is not a non-negative integer.
	ErrInvalidPart = errors.New("not a non-negative integer")
	// ErrOutOfRange is returned when the total does not fit in an int. It wraps ErrInvalidPart.
	ErrOutOfRange = fmt.Errorf("%w: total seconds out of range", ErrInvalidPart)
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// ParseSeconds parses a time string in SS, MM:SS or HH:MM:SS format into seconds.
// Components are not range checked, so "1:90" is 150 seconds.
func ParseSeconds(timeStr string) (int, error) {
	if timeStr == "" {
		return 0, fmt.Errorf("empty time string: %w", ErrMalformed)
	}

	parts := strings.Split(timeStr, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%d parts in '%s': %w", len(parts), timeStr, ErrMalformed)
	}

	// Horner form: ((h*60)+m)*60+s == h*3600+m*60+s
	total := 0
	for i, p := range parts {
		v, err := parsePart(p)
		if err != nil {
			return 0, fmt.Errorf("part %q of '%s': %w", p, timeStr, err)
		}
		if i > 0 {
			if total > (math.MaxInt-v)/60 {
				return 0, fmt.Errorf("'%s': %w", timeStr, ErrOutOfRange)
			}
			total = total*60 + v
			continue
		}
		total = v
	}
	return total, nil
}

// parsePart accepts ASCII digits only; strconv.Atoi alone would let signs through.
func parsePart(p string) (int, error) {
	if p == "" {
		return 0, ErrInvalidPart
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, ErrInvalidPart
		}
	}
	v, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPart, err)
	}
	return v, nil
}
