package source

import (
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "racidash/internal/errors"
)

// TestFromBytesCSV tests the CSV path end to end
func TestFromBytesCSV(t *testing.T) {
	data := []byte("Task,Owner,Reviewer\nDeploy,R,C\nReview,A,R\n")

	grid, sheet, err := FromBytes(data, "matrix.csv", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sheet != "CSV" {
		t.Errorf("Expected sheet CSV, got %q", sheet)
	}
	if len(grid.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(grid.Rows))
	}
	if grid.Rows[1][1] != "R" {
		t.Errorf("Expected cell R, got %q", grid.Rows[1][1])
	}
}

// TestFromBytesCSVSemicolon tests delimiter sniffing
func TestFromBytesCSVSemicolon(t *testing.T) {
	data := []byte("Task;Owner;Reviewer\nDeploy;R;C\n")

	grid, _, err := FromBytes(data, "matrix.csv", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(grid.Rows[0]) != 3 {
		t.Errorf("Expected 3 columns from semicolon sniffing, got %d", len(grid.Rows[0]))
	}
}

// TestFromBytesCSVBOMAndLatin1 tests encoding tolerance
func TestFromBytesCSVBOMAndLatin1(t *testing.T) {
	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Task,Owner\nDeploy,R\n")...)
	grid, _, err := FromBytes(bom, "bom.csv", "")
	if err != nil {
		t.Fatalf("BOM file failed: %v", err)
	}
	if grid.Rows[0][0] != "Task" {
		t.Errorf("Expected BOM stripped, got %q", grid.Rows[0][0])
	}

	// Windows-1252 content: é is the single byte 0xE9, invalid as UTF-8.
	latin := []byte{'T', 'a', 's', 'k', ',', 'Q', 'u', 'a', 'l', 'i', 't', 0xE9, '\n', 'X', ',', 'R', '\n'}
	grid, _, err = FromBytes(latin, "latin.csv", "")
	if err != nil {
		t.Fatalf("Windows-1252 file failed: %v", err)
	}
	if grid.Rows[0][1] != "Qualité" {
		t.Errorf("Expected decoded é, got %q", grid.Rows[0][1])
	}
}

func testWorkbook(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for ri, row := range rows {
			for ci, val := range row {
				cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := f.SetCellValue(name, cell, val); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestFromBytesXLSX tests workbook reading with a sheet hint
func TestFromBytesXLSX(t *testing.T) {
	data := testWorkbook(t, map[string][][]string{
		"RACI": {
			{"Task", "Owner", "Reviewer"},
			{"Deploy", "R", "C"},
		},
	})

	grid, sheet, err := FromBytes(data, "matrix.xlsx", "RACI")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sheet != "RACI" {
		t.Errorf("Expected sheet RACI, got %q", sheet)
	}
	if len(grid.Rows) != 2 || grid.Rows[1][1] != "R" {
		t.Errorf("Unexpected grid contents: %v", grid.Rows)
	}
}

// TestFromBytesXLSXMissingSheet tests the hint validation error
func TestFromBytesXLSXMissingSheet(t *testing.T) {
	data := testWorkbook(t, map[string][][]string{
		"RACI": {{"Task", "Owner"}},
	})

	_, _, err := FromBytes(data, "matrix.xlsx", "Nope")
	if err == nil {
		t.Fatal("Expected error for missing sheet")
	}
	if apperrors.GetCode(err) != apperrors.CodeSourceUnreadable {
		t.Errorf("Expected SOURCE_UNREADABLE, got %s", apperrors.GetCode(err))
	}
}

// TestScoreSheetName tests the sheet-name heuristics
func TestScoreSheetName(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"RACI", 50},
		{"RACI Matrix", 80},
		{"Maturity Assessment", 20},
		{"Pivot Data", -50},
		{"Notes", 0},
	}

	for _, test := range tests {
		if got := scoreSheetName(test.name); got != test.expected {
			t.Errorf("scoreSheetName(%q) = %d, expected %d", test.name, got, test.expected)
		}
	}
}

// TestFromBytesUnsupported tests the format dispatch error
func TestFromBytesUnsupported(t *testing.T) {
	_, _, err := FromBytes([]byte("hello"), "notes.txt", "")
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if apperrors.GetCode(err) != apperrors.CodeSourceUnreadable {
		t.Errorf("Expected SOURCE_UNREADABLE, got %s", apperrors.GetCode(err))
	}
}

// TestSniffDelimiter tests delimiter counting with comma tie-break
func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		text     string
		expected rune
	}{
		{"a,b,c\nd,e,f", ','},
		{"a;b;c\nd;e;f", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c|d", '|'},
		{"a,b;c", ','}, // tie goes to comma
	}

	for _, test := range tests {
		if got := sniffDelimiter(test.text); got != test.expected {
			t.Errorf("sniffDelimiter(%q) = %q, expected %q", test.text, got, test.expected)
		}
	}
}
