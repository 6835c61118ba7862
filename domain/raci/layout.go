package raci

import "regexp"

const (
	headerScanLimit  = 20
	maxSubheaderRows = 4
)

var mostlyNumericRe = regexp.MustCompile(`^[\d.,%]+$`)

// Layout is the detected row structure of a grid.
type Layout struct {
	HeaderRow     int
	SubheaderRows [][]string
	DataStart     int

	// LowConfidence is set when only the weak fallback rule matched and the
	// header choice may be wrong.
	LowConfidence bool
}

// DetectLayout locates the header row and any sub-header rows.
//
// The header is the first row within the scan window holding at least 4
// non-blank cells with at least 3 distinct values, skipping rows that are
// mostly numeric (data mistaken for headers) and merged title rows (low
// distinctness). A weaker rule (3 non-blank, 2 distinct) is the fallback,
// and row 0 the last resort.
func DetectLayout(g *Grid) Layout {
	headerIdx, confident := findHeaderRow(g.Rows)
	skip, subs := subheaderRows(g.Rows, headerIdx)
	return Layout{
		HeaderRow:     headerIdx,
		SubheaderRows: subs,
		DataStart:     headerIdx + 1 + skip,
		LowConfidence: !confident,
	}
}

func findHeaderRow(rows [][]string) (int, bool) {
	limit := headerScanLimit
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		values := nonBlank(rows[i])
		if len(values) >= 4 && distinctLower(values) >= 3 {
			numeric := 0
			for _, v := range values {
				if mostlyNumericRe.MatchString(v) {
					numeric++
				}
			}
			if float64(numeric)/float64(len(values)) < 0.6 {
				return i, true
			}
		}
	}

	for i := 0; i < limit; i++ {
		values := nonBlank(rows[i])
		if len(values) >= 3 && distinctLower(values) >= 2 {
			return i, false
		}
	}

	for i := 0; i < limit; i++ {
		if len(nonBlank(rows[i])) > 0 {
			return i, false
		}
	}
	return 0, false
}

// subheaderRows collects up to 4 consecutive rows after the header that have
// 3+ filled cells but contain no RACI values and no maturity-range numbers.
// Rows with only 1-2 filled cells are not sub-headers (likely inline category
// banners); the first row carrying data stops the scan.
func subheaderRows(rows [][]string, headerIdx int) (int, [][]string) {
	var subs [][]string
	skip := 0
	end := headerIdx + 1 + maxSubheaderRows
	if end > len(rows) {
		end = len(rows)
	}
	for i := headerIdx + 1; i < end; i++ {
		row := rows[i]
		if len(nonBlank(row)) < 3 {
			break
		}
		hasData := false
		for _, c := range row {
			if IsRACI(c) || isMaturityNumber(c, 5) {
				hasData = true
				break
			}
		}
		if hasData {
			break
		}
		subs = append(subs, row)
		skip++
	}
	return skip, subs
}
