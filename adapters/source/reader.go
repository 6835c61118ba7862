// Package source loads tabular files (.xlsx, .csv) into rectangular grids
// for the RACI parser, picking the most RACI-like sheet in multi-sheet
// workbooks and tolerating the encodings real spreadsheets arrive in.
package source

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"racidash/domain/raci"
	apperrors "racidash/internal/errors"
)

// Reader loads a spreadsheet file into a Grid.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given path, dispatching on extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Load reads the file and returns the grid plus the sheet identity used.
// sheetHint selects a specific sheet; empty means auto-select.
func (r *Reader) Load(sheetHint string) (*raci.Grid, string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, "", apperrors.SourceUnreadable(fmt.Sprintf("file not found: %s", r.filePath))
	}

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.SourceUnreadable(err.Error()), "failed to read file")
	}
	return FromBytes(data, r.filePath, sheetHint)
}

// FromBytes parses in-memory file content. filename supplies the extension
// used for format dispatch (the upload path hands us bytes, not a path).
func FromBytes(data []byte, filename, sheetHint string) (*raci.Grid, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		rows, err := readCSV(data)
		if err != nil {
			return nil, "", err
		}
		log.Printf("[source] CSV loaded (%d rows): %s", len(rows), filepath.Base(filename))
		return raci.NewGrid(rows), "CSV", nil
	case ".xlsx", ".xlsm":
		rows, sheet, err := readWorkbook(bytes.NewReader(data), sheetHint)
		if err != nil {
			return nil, "", err
		}
		log.Printf("[source] Workbook loaded (sheet %q, %d rows): %s", sheet, len(rows), filepath.Base(filename))
		return raci.NewGrid(rows), sheet, nil
	default:
		return nil, "", apperrors.SourceUnreadable(
			fmt.Sprintf("unsupported file format %q: use .xlsx or .csv", ext))
	}
}
