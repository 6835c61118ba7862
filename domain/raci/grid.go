package raci

import "strings"

// Grid is a rectangular table of string cells. Blank and whitespace-only
// cells are equivalent to absent values throughout the parser.
type Grid struct {
	Rows [][]string
}

// NewGrid wraps raw rows and pads short rows so every row has equal length.
func NewGrid(rows [][]string) *Grid {
	g := &Grid{Rows: rows}
	g.rectangularize()
	return g
}

func (g *Grid) rectangularize() {
	maxCols := 0
	for _, row := range g.Rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for i, row := range g.Rows {
		for len(row) < maxCols {
			row = append(row, "")
		}
		g.Rows[i] = row
	}
}

// Columns returns the rectangularized column count.
func (g *Grid) Columns() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// cellStr strips surrounding whitespace; the empty string means no value.
func cellStr(val string) string {
	return strings.TrimSpace(val)
}

// nonBlank returns the trimmed non-empty cells of a row.
func nonBlank(row []string) []string {
	var out []string
	for _, c := range row {
		if s := cellStr(c); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// distinctLower counts case-normalized distinct values.
func distinctLower(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[strings.ToLower(v)] = struct{}{}
	}
	return len(seen)
}
