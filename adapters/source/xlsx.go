package source

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "racidash/internal/errors"
)

const sheetScoreSampleRows = 30

// readWorkbook opens an xlsx stream, resolves the sheet to use, and returns
// its rows with merged ranges filled.
func readWorkbook(r io.Reader, sheetHint string) ([][]string, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.SourceUnreadable(err.Error()), "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", apperrors.SourceUnreadable("workbook has no sheets")
	}

	sheet := sheets[0]
	if sheetHint != "" {
		idx, err := f.GetSheetIndex(sheetHint)
		if err != nil || idx < 0 {
			return nil, "", apperrors.SourceUnreadable(
				fmt.Sprintf("sheet %q not found; available: %s", sheetHint, strings.Join(sheets, ", ")))
		}
		sheet = sheetHint
	} else if len(sheets) > 1 {
		sheet = pickBestSheet(f, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", apperrors.Wrapf(apperrors.SourceUnreadable(err.Error()), "failed to read sheet %q", sheet)
	}

	fillMergedCells(f, sheet, rows)
	return rows, sheet, nil
}

// pickBestSheet scores every sheet by how much it looks like a RACI matrix:
// name hints plus RACI-value density over a sample of rows. Ties keep the
// earlier sheet.
func pickBestSheet(f *excelize.File, sheets []string) string {
	best := sheets[0]
	bestScore := -1 << 31

	for _, name := range sheets {
		score := scoreSheetName(name)

		raciCount, cellCount := 0, 0
		rows, err := f.Rows(name)
		if err == nil {
			for ri := 0; rows.Next() && ri <= sheetScoreSampleRows; ri++ {
				cols, err := rows.Columns()
				if err != nil {
					continue
				}
				for _, val := range cols {
					s := strings.ToUpper(strings.TrimSpace(val))
					if s != "" {
						cellCount++
					}
					switch s {
					case "R", "A", "C", "I":
						raciCount++
					}
				}
			}
			rows.Close()
		}
		if cellCount > 0 {
			score += int(float64(raciCount) / float64(cellCount) * 100)
		}

		log.Printf("[source] sheet %q scored %d", name, score)
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	return best
}

func scoreSheetName(name string) int {
	lower := strings.ToLower(name)
	score := 0
	if strings.Contains(lower, "raci") {
		score += 50
	}
	if strings.Contains(lower, "maturity") {
		score += 20
	}
	for _, kw := range []string{"responsibility", "assignment", "matrix"} {
		if strings.Contains(lower, kw) {
			score += 30
			break
		}
	}
	for _, kw := range []string{"chart", "graph", "pivot", "lookup", "config", "template", "instruction", "readme", "cover"} {
		if strings.Contains(lower, kw) {
			score -= 50
			break
		}
	}
	return score
}

// fillMergedCells copies each merged range's value into every cell of the
// range, so banner rows spanning the sheet read as repeated values rather
// than a single cell followed by blanks.
func fillMergedCells(f *excelize.File, sheet string, rows [][]string) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return
	}
	for _, m := range merges {
		startCol, startRow, err1 := excelize.CellNameToCoordinates(m.GetStartAxis())
		endCol, endRow, err2 := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		val := m.GetCellValue()
		for r := startRow - 1; r < endRow && r < len(rows); r++ {
			for c := startCol - 1; c < endCol; c++ {
				for len(rows[r]) <= c {
					rows[r] = append(rows[r], "")
				}
				rows[r][c] = val
			}
		}
	}
}
