package raci

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	raciDensityThreshold     = 0.4
	maturityDensityThreshold = 0.4
)

var pureNumericRe = regexp.MustCompile(`^[\d]+\.?[\d]*$`)

// columnStats holds the value-distribution facts a classification rule can
// look at for one column.
type columnStats struct {
	header      string // lower-cased header text
	rawHeader   string
	values      []string
	raciFrac    float64
	matFrac     float64
	numericFrac float64
	uniqueRatio float64
	avgLen      float64
}

func collectColumnStats(headers []string, dataRows [][]string) []columnStats {
	stats := make([]columnStats, len(headers))
	for ci := range headers {
		cs := columnStats{
			rawHeader: cellStr(headers[ci]),
			header:    strings.ToLower(cellStr(headers[ci])),
		}
		for _, row := range dataRows {
			if ci >= len(row) {
				continue
			}
			if v := cellStr(row[ci]); v != "" {
				cs.values = append(cs.values, v)
			}
		}
		total := len(cs.values)
		if total > 0 {
			raciCount, matCount, numericCount, lenSum := 0, 0, 0, 0
			for _, v := range cs.values {
				if IsRACI(v) {
					raciCount++
				}
				if isMaturityNumber(v, 100) {
					matCount++
				}
				if pureNumericRe.MatchString(v) {
					numericCount++
				}
				lenSum += len(v)
			}
			cs.raciFrac = float64(raciCount) / float64(total)
			cs.matFrac = float64(matCount) / float64(total)
			cs.numericFrac = float64(numericCount) / float64(total)
			cs.uniqueRatio = float64(distinctLower(cs.values)) / float64(total)
			cs.avgLen = float64(lenSum) / float64(total)
		}
		stats[ci] = cs
	}
	return stats
}

// ClassifyColumns assigns a semantic type to every column, using only cells
// below the detected header and sub-header rows. Rules are evaluated per
// column in index order; earlier assignments feed later tie-breaks (the
// second maturity-shaped column becomes the target column, the name column
// is unique).
func ClassifyColumns(headers []string, dataRows [][]string) map[int]Classification {
	stats := collectColumnStats(headers, dataRows)
	classes := make(map[int]Classification, len(headers))

	nameFound := false
	descFound := false
	matNowFound := false

	for ci, cs := range stats {
		switch {
		case len(cs.values) == 0:
			classes[ci] = ClassEmpty

		case headerContainsAny(cs.header, deltaKeywords):
			classes[ci] = ClassDelta

		case headerContainsAny(cs.header, statusKeywords):
			classes[ci] = ClassStatus

		// Identifier and priority columns carry no RACI semantics; they are
		// matched by header before the density rules so sequential numbers
		// are not mistaken for maturity scores.
		case isIDHeader(cs.header) || headerContainsAny(cs.header, priorityKeywords):
			classes[ci] = ClassUnknown

		case cs.raciFrac > raciDensityThreshold:
			classes[ci] = ClassRACI

		case cs.matFrac > maturityDensityThreshold && cs.numericFrac > maturityDensityThreshold:
			if headerContainsAny(cs.header, targetKeywords) || matNowFound {
				classes[ci] = ClassMaturityTarget
			} else {
				classes[ci] = ClassMaturityNow
				matNowFound = true
			}

		case headerContainsAny(cs.header, descriptionKeywords):
			classes[ci] = ClassDescription
			descFound = true

		case headerContainsAny(cs.header, categoryKeywords):
			classes[ci] = ClassCategory

		case headerContainsAny(cs.header, nameKeywords),
			!nameFound && cs.avgLen > 3 && cs.uniqueRatio > 0.5 && cs.numericFrac < 0.5:
			// A column that looks like prose but repeats a small label set
			// is a grouping column, not the item name column.
			if cs.uniqueRatio < 0.3 && len(cs.values) > 5 {
				classes[ci] = ClassCategory
			} else {
				classes[ci] = ClassName
				nameFound = true
			}

		case !descFound && cs.avgLen > 30 && cs.uniqueRatio > 0.7:
			classes[ci] = ClassDescription
			descFound = true

		case cs.uniqueRatio < 0.3 && len(cs.values) > 3:
			classes[ci] = ClassCategory

		default:
			classes[ci] = ClassUnknown
		}
	}

	forceNameColumn(classes, stats)
	return classes
}

// forceNameColumn guarantees exactly one name column: the first unknown
// column that could plausibly hold item names is reclassified, and column 0
// is the last resort. Identifier, priority, and numeric-shaped columns never
// become the name column this way.
func forceNameColumn(classes map[int]Classification, stats []columnStats) {
	for _, t := range classes {
		if t == ClassName {
			return
		}
	}
	for ci := 0; ci < len(stats); ci++ {
		if classes[ci] != ClassUnknown {
			continue
		}
		cs := stats[ci]
		if isIDHeader(cs.header) || headerContainsAny(cs.header, priorityKeywords) || cs.numericFrac > 0.5 {
			continue
		}
		classes[ci] = ClassName
		return
	}
	if len(stats) > 0 {
		classes[0] = ClassName
	}
}

func headerContainsAny(header string, keywords []string) bool {
	if header == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(header, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// isIDHeader matches identifier headers by exact or delimited form, so that
// "no" does not fire inside "now" and "key" does not fire inside "monkey".
func isIDHeader(header string) bool {
	if header == "" {
		return false
	}
	switch header {
	case "#", "id", "no", "no.", "ref", "ref.", "key":
		return true
	}
	for _, kw := range idKeywords {
		if header == kw {
			return true
		}
	}
	for _, re := range idHeaderPatterns {
		if re.MatchString(header) {
			return true
		}
	}
	return false
}

var idHeaderPatterns = buildIDHeaderPatterns()

func buildIDHeaderPatterns() []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, kw := range idKeywords {
		q := regexp.QuoteMeta(kw)
		out = append(out,
			regexp.MustCompile(fmt.Sprintf(`^%s[\s._#\-]+`, q)),
			regexp.MustCompile(fmt.Sprintf(`[\s._#\-]+%s$`, q)))
	}
	return out
}

// firstOf returns the lowest column index carrying the given classification,
// or -1 when absent.
func firstOf(classes map[int]Classification, want Classification) int {
	best := -1
	for ci, t := range classes {
		if t == want && (best == -1 || ci < best) {
			best = ci
		}
	}
	return best
}

// columnsOf returns the sorted column indexes carrying the classification.
func columnsOf(classes map[int]Classification, want Classification) []int {
	var out []int
	for ci, t := range classes {
		if t == want {
			out = append(out, ci)
		}
	}
	sort.Ints(out)
	return out
}
