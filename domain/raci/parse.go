package raci

import (
	apperrors "racidash/internal/errors"
)

// ErrEmptySheet and ErrNoRaciColumns are the fatal parse outcomes. Anything
// less (unreadable cells, nameless rows, noise categories) degrades
// gracefully instead of failing.
var (
	ErrEmptySheet = apperrors.New(apperrors.CodeEmptySheet,
		"sheet is empty or unreadable")
	ErrNoRaciColumns = apperrors.New(apperrors.CodeNoRaciColumns,
		"no RACI columns detected; ensure the sheet has columns whose values are R, A, C or I (full words, multi-value cells and RASCI/DACI/RAPID variants are also recognized)")
)

// Options carries source identity into the parse; it does not influence the
// heuristics.
type Options struct {
	Filename string
	Sheet    string
}

// Parse transforms a rectangular grid into a normalized Dataset.
//
// The parse is pure and single-pass per stage: layout detection, column
// classification, entity building, diagnostics. It is safe to call
// concurrently on independent grids. It returns either a complete Dataset
// or a single typed error, never a partial result.
func Parse(g *Grid, opts Options) (*Dataset, error) {
	if g == nil || len(g.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	g.rectangularize()

	layout := DetectLayout(g)
	headers := g.Rows[layout.HeaderRow]
	var dataRows [][]string
	if layout.DataStart < len(g.Rows) {
		dataRows = g.Rows[layout.DataStart:]
	}

	classes := ClassifyColumns(headers, dataRows)

	if detectTransposed(g, layout.HeaderRow, classes) {
		ds := parseTransposed(g, layout.HeaderRow)
		ds.Meta.Filename = opts.Filename
		ds.Meta.Sheet = opts.Sheet
		return ds, nil
	}

	if len(columnsOf(classes, ClassRACI)) == 0 {
		return nil, ErrNoRaciColumns
	}

	roles := BuildRoles(headers, layout.SubheaderRows, classes)
	categories := BuildCategories(dataRows, classes, roles)

	meta := BuildMeta(roles, categories, classes, headers)
	meta.Filename = opts.Filename
	meta.Sheet = opts.Sheet
	meta.LowConfidenceHeader = layout.LowConfidence
	if meta.HasMaturity {
		meta.MaturityScale = detectReportScale(dataRows, classes)
	}

	return &Dataset{Roles: roles, Categories: categories, Meta: meta}, nil
}

// detectReportScale infers the dominant source scale of the maturity
// columns for the meta report. Normalization itself is per-cell.
func detectReportScale(dataRows [][]string, classes map[int]Classification) int {
	var values []string
	for _, ci := range []int{firstOf(classes, ClassMaturityNow), firstOf(classes, ClassMaturityTarget)} {
		if ci < 0 {
			continue
		}
		for _, row := range dataRows {
			if ci < len(row) {
				if v := cellStr(row[ci]); v != "" {
					values = append(values, v)
				}
			}
		}
	}
	scale, _ := DetectMaturityScale(values)
	return scale
}
