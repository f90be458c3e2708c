package movies

import (
	"math"
	"strconv"
	"strings"
	"time"
)

/*
	Field normalization
	-------------------
	- Pure functions, no I/O
	- Malformed input degrades to "absent" (nil), never an error
*/

var truthy = map[string]struct{}{
	"true": {},
	"t":    {},
	"1":    {},
	"yes":  {},
}

// DateLayouts are tried in order by NormalizeDate.
var DateLayouts = []string{"2006-01-02", "02/01/2006"}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeBoolean maps "true", "t", "1", "yes" (any case) to true and
// everything else, including empty input, to false.
func NormalizeBoolean(raw string) bool {
	_, ok := truthy[lowerTrim(raw)]
	return ok
}

// NormalizeStatus maps free-form release status text onto the canonical labels.
// "not released" is checked first so it never collapses into "released".
func NormalizeStatus(raw string) *Status {
	v := lowerTrim(raw)
	var s Status
	switch {
	case strings.Contains(v, string(StatusNotReleased)):
		s = StatusNotReleased
	case strings.Contains(v, string(StatusReleased)):
		s = StatusReleased
	default:
		return nil
	}
	return &s
}

// NormalizeInt parses an integer. Decimal notation ("120.0", "1e6") is
// accepted and truncated toward zero.
func NormalizeInt(raw string) *int64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	n := int64(f)
	return &n
}

// NormalizeDecimal parses a finite floating point number.
func NormalizeDecimal(raw string) *float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// NonNegativeInt drops negative values.
func NonNegativeInt(n *int64) *int64 {
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

// NonNegativeDecimal drops negative values.
func NonNegativeDecimal(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Rating keeps only values inside [MinRating, MaxRating].
func Rating(f *float64) *float64 {
	if f == nil || !ValidRating(*f) {
		return nil
	}
	return f
}

func ValidRating(f float64) bool {
	return f >= MinRating && f <= MaxRating
}

// NormalizeDate tries each of DateLayouts; unparsable input is absent.
func NormalizeDate(raw string) *time.Time {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeDelimitedList splits raw on delim, trims every element and drops
// empty ones. Order and duplicates are preserved.
func NormalizeDelimitedList(raw, delim string) List {
	out := List{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, part := range strings.Split(raw, delim) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeText trims; empty becomes absent.
func NormalizeText(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}
