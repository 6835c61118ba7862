package raci

import (
	"testing"
)

// TestNormalizeRACI tests canonicalization of raw assignment cells
func TestNormalizeRACI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"R", "R"},
		{"a", "A"},
		{" c ", "C"},
		{"I", "I"},
		{"S", "C"},  // RASCI supportive
		{"D", "R"},  // DACI driver
		{"P", "R"},  // RAPID perform
		{"V", "C"},  // RACI-VS verify
		{"X", "R"},  // generic mark
		{"Responsible", "R"},
		{"accountable", "A"},
		{"CONSULTED", "C"},
		{"Informed", "I"},
		{"Driver", "R"},
		{"approver", "A"},
		{"support", "C"},
		{"yes", "R"},
		{"R/A", "R"},
		{"A,R", "R"},
		{"A/C", "A"},
		{"C & I", "C"},
		{"", ""},
		{"   ", ""},
		{"n.a.", ""},
		{"pending review", ""},
	}

	for _, test := range tests {
		result := NormalizeRACI(test.input)
		if result != test.expected {
			t.Errorf("NormalizeRACI(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

// TestNormalizeRACIMultiValuePriority tests that multi-value cells reduce to
// the highest responsibility regardless of order
func TestNormalizeRACIMultiValuePriority(t *testing.T) {
	for _, input := range []string{"R/A", "A/R", "R,A", "A, R", "R & A", "I/C/A/R"} {
		if got := NormalizeRACI(input); got != "R" {
			t.Errorf("NormalizeRACI(%q) = %q, expected R", input, got)
		}
	}
}

// TestNormalizeMaturity tests per-cell scale conversion to 0-5
func TestNormalizeMaturity(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"0", 0, true},
		{"3", 3, true},
		{"5", 5, true},
		{"4", 4, true},
		{"8", 4, true},     // 0-10 scale, halved
		{"10", 5, true},    // 0-10 scale, halved
		{"7.5", 4, true},   // 3.75 rounds up
		{"80%", 4, true},   // percentage, /20
		{"100", 5, true},   // bare value above 10 reads as percentage
		{"50", 3, true},    // 2.5 rounds away from zero
		{"2%", 0, true},    // small percentage still a percentage
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"150", 0, false},
	}

	for _, test := range tests {
		result, ok := NormalizeMaturity(test.input)
		if ok != test.ok {
			t.Errorf("NormalizeMaturity(%q) ok = %v, expected %v", test.input, ok, test.ok)
			continue
		}
		if ok && result != test.expected {
			t.Errorf("NormalizeMaturity(%q) = %d, expected %d", test.input, result, test.expected)
		}
	}
}

// TestNormalizeMaturityMixedScales tests that mixed-scale columns normalize
// to the same value when the cells mean the same thing
func TestNormalizeMaturityMixedScales(t *testing.T) {
	for _, input := range []string{"4", "8", "80%"} {
		got, ok := NormalizeMaturity(input)
		if !ok || got != 4 {
			t.Errorf("NormalizeMaturity(%q) = %d/%v, expected 4/true", input, got, ok)
		}
	}
}

// TestDetectMaturityScale tests the source-scale report
func TestDetectMaturityScale(t *testing.T) {
	tests := []struct {
		values   []string
		expected int
	}{
		{[]string{"1", "3", "5"}, 5},
		{[]string{"2", "7", "10"}, 10},
		{[]string{"20", "85", "60"}, 100},
		{[]string{}, 5},
	}

	for _, test := range tests {
		scale, _ := DetectMaturityScale(test.values)
		if scale != test.expected {
			t.Errorf("DetectMaturityScale(%v) = %d, expected %d", test.values, scale, test.expected)
		}
	}
}

// TestIsRACI tests the density-check predicate
func TestIsRACI(t *testing.T) {
	for _, v := range []string{"R", "a", "Responsible", "R/A", "X"} {
		if !IsRACI(v) {
			t.Errorf("IsRACI(%q) = false, expected true", v)
		}
	}
	for _, v := range []string{"", "3", "Deploy servers", "n.a."} {
		if IsRACI(v) {
			t.Errorf("IsRACI(%q) = true, expected false", v)
		}
	}
}
