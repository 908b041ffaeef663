package checkers

import (
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

func TestStandardWhitespaceInvariance(t *testing.T) {
	cases := []struct {
		process, judge string
	}{
		{"1 2 3\n", " 1  2 3 \n\n"},
		{"a\nb\nc\n", "a  b\tc"},
		{"\n\n1\n\n", "1"},
	}
	for _, c := range cases {
		result, err := Standard([]byte(c.process), []byte(c.judge), grading.CheckerOptions{PointValue: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Passed {
			t.Errorf("Standard(%q, %q) did not pass", c.process, c.judge)
		}
		if result.Points != 10 {
			t.Errorf("Standard(%q, %q) points = %v, want 10", c.process, c.judge, result.Points)
		}
	}
}

func TestStandardRejectsTokenMismatch(t *testing.T) {
	result, err := Standard([]byte("1 2 4\n"), []byte("1 2 3\n"), grading.CheckerOptions{PointValue: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Errorf("expected mismatch to fail")
	}
	if result.Points != 0 {
		t.Errorf("expected zero points on failure, got %v", result.Points)
	}
}

func TestLineCountTrimsTrailingWhitespaceAndBlankLines(t *testing.T) {
	result, err := LineCount([]byte("a \nb\t\n\n"), []byte("a\nb\n"), grading.CheckerOptions{PointValue: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Errorf("expected LineCount to pass after trimming")
	}
}

func TestLineCountRejectsDifferentLineContent(t *testing.T) {
	result, err := LineCount([]byte("a\nb\n"), []byte("a\nc\n"), grading.CheckerOptions{PointValue: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Errorf("expected mismatched lines to fail")
	}
}
