package raci

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var multiValueSplit = regexp.MustCompile(`[/,&\s]+`)

// NormalizeRACI maps a raw cell value to a canonical letter.
//
// Handles single standard and extended letters, full words
// ("Responsible", "Driver", ...), multi-value cells ("R/A", "R,A", "R & A")
// reduced to the highest-priority letter, and generic marks (X, Y, Yes).
// Returns "" when the value carries no RACI meaning.
func NormalizeRACI(val string) string {
	s := cellStr(val)
	if s == "" {
		return ""
	}

	upper := strings.ToUpper(s)
	if upper == "R" || upper == "A" || upper == "C" || upper == "I" {
		return upper
	}
	if mapped, ok := raciExtended[upper]; ok {
		return mapped
	}

	lower := strings.ToLower(s)
	if mapped, ok := raciFullWords[lower]; ok {
		return mapped
	}

	// Multi-value cell: reduce to the highest responsibility.
	best := ""
	for _, part := range multiValueSplit.Split(upper, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mapped, ok := raciExtended[part]
		if !ok {
			continue
		}
		if best == "" || raciPriority[mapped] > raciPriority[best] {
			best = mapped
		}
	}
	if best != "" {
		return best
	}

	for word, letter := range raciFullWords {
		if strings.HasPrefix(lower, word) {
			return letter
		}
	}
	return ""
}

// IsRACI reports whether the value can be read as a RACI assignment.
func IsRACI(val string) bool {
	return NormalizeRACI(val) != ""
}

// isMaturityNumber reports whether the value parses as a number in [0, max].
// A trailing percent sign is tolerated.
func isMaturityNumber(val string, max float64) bool {
	s := cellStr(val)
	if s == "" {
		return false
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return n >= 0 && n <= math.Max(max, 5)
}

// NormalizeMaturity converts a raw cell to the canonical 0-5 scale.
//
// A value in [0,5] passes through; (5,10] is read as a 0-10 scale and
// halved; a trailing "%" or a value in (10,100] is read as a percentage
// and divided by 20. The result is rounded and clamped to [0,5].
// The second return is false when the cell is not a maturity value.
func NormalizeMaturity(val string) (int, bool) {
	s := cellStr(val)
	if s == "" {
		return 0, false
	}
	isPercent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if n < 0 || n > 100 {
		return 0, false
	}

	switch {
	case isPercent || n > 10:
		n /= 20
	case n > 5:
		n /= 2
	}

	rounded := int(math.Round(n))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 5 {
		rounded = 5
	}
	return rounded, true
}

// DetectMaturityScale infers the scale a set of raw values was written in.
// Returns (5|10|100, isPercentage). Used for the meta report only; value
// normalization is per-cell.
func DetectMaturityScale(values []string) (int, bool) {
	var nums []float64
	for _, v := range values {
		s := strings.TrimSpace(strings.TrimSuffix(cellStr(v), "%"))
		if s == "" {
			continue
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return 5, false
	}
	max := floats.Max(nums)
	switch {
	case max > 10:
		return 100, true
	case max > 5:
		return 10, false
	default:
		return 5, false
	}
}
