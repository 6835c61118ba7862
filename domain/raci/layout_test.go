package raci

import (
	"testing"
)

// TestDetectLayoutHeaderFirstRow tests the common case of a header at row 0
func TestDetectLayoutHeaderFirstRow(t *testing.T) {
	g := NewGrid([][]string{
		{"Task", "Owner", "Reviewer", "Notes"},
		{"Deploy", "R", "C", "weekly"},
	})

	layout := DetectLayout(g)
	if layout.HeaderRow != 0 {
		t.Errorf("Expected header row 0, got %d", layout.HeaderRow)
	}
	if layout.DataStart != 1 {
		t.Errorf("Expected data start 1, got %d", layout.DataStart)
	}
	if layout.LowConfidence {
		t.Error("Expected confident header detection")
	}
}

// TestDetectLayoutSkipsTitleRows tests that merged title rows and blank rows
// above the header are skipped
func TestDetectLayoutSkipsTitleRows(t *testing.T) {
	g := NewGrid([][]string{
		{"RACI Matrix 2026", "", "", ""},
		{"", "", "", ""},
		{"Capability", "PM", "Dev", "QA"},
		{"Planning", "A", "R", "C"},
	})

	layout := DetectLayout(g)
	if layout.HeaderRow != 2 {
		t.Errorf("Expected header row 2, got %d", layout.HeaderRow)
	}
	if layout.DataStart != 3 {
		t.Errorf("Expected data start 3, got %d", layout.DataStart)
	}
}

// TestDetectLayoutSkipsNumericRows tests that a row of numbers is never the header
func TestDetectLayoutSkipsNumericRows(t *testing.T) {
	g := NewGrid([][]string{
		{"1", "2", "3", "4"},
		{"Capability", "PM", "Dev", "QA"},
		{"Planning", "A", "R", "C"},
	})

	layout := DetectLayout(g)
	if layout.HeaderRow != 1 {
		t.Errorf("Expected header row 1, got %d", layout.HeaderRow)
	}
}

// TestDetectLayoutSubheaders tests that full-name rows under an abbreviation
// header are absorbed as sub-headers, not data
func TestDetectLayoutSubheaders(t *testing.T) {
	g := NewGrid([][]string{
		{"Capability", "PM", "DEV", "QA"},
		{"", "Project Manager", "Developer", "Quality Assurance"},
		{"Planning", "A", "R", "C"},
	})

	layout := DetectLayout(g)
	if layout.HeaderRow != 0 {
		t.Errorf("Expected header row 0, got %d", layout.HeaderRow)
	}
	if len(layout.SubheaderRows) != 1 {
		t.Fatalf("Expected 1 sub-header row, got %d", len(layout.SubheaderRows))
	}
	if layout.DataStart != 2 {
		t.Errorf("Expected data start 2, got %d", layout.DataStart)
	}
}

// TestDetectLayoutWeakFallback tests the reduced rule and its low-confidence flag
func TestDetectLayoutWeakFallback(t *testing.T) {
	g := NewGrid([][]string{
		{"Item", "Who", "Who"},
		{"Deploy", "R", "C"},
	})

	layout := DetectLayout(g)
	if layout.HeaderRow != 0 {
		t.Errorf("Expected header row 0, got %d", layout.HeaderRow)
	}
	if !layout.LowConfidence {
		t.Error("Expected low-confidence flag for weak fallback match")
	}
}

// TestDetectLayoutBannerNotSubheader tests that a 1-2 cell row after the
// header is left in the data region for banner handling
func TestDetectLayoutBannerNotSubheader(t *testing.T) {
	g := NewGrid([][]string{
		{"Capability", "PM", "Dev", "QA"},
		{"Strategy", "", "", ""},
		{"Planning", "A", "R", "C"},
	})

	layout := DetectLayout(g)
	if layout.DataStart != 1 {
		t.Errorf("Expected data start 1 (banner stays in data), got %d", layout.DataStart)
	}
}
