package checkers

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

func TestFloatsDefaultReflexivity(t *testing.T) {
	judgeVals := []float64{0, 1, -1, 1e-9, 123456.789}
	for _, p := range []int{1, 3, 6, 9} {
		for _, j := range judgeVals {
			s := strconv.FormatFloat(j, 'f', -1, 64)
			result, err := Floats([]byte(s+"\n"), []byte(s+"\n"), grading.CheckerOptions{PointValue: 1, Precision: p})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Passed {
				t.Errorf("reflexive check failed for value %v at precision %d", j, p)
			}
		}
	}
}

func TestFloatsNaNAlwaysRejects(t *testing.T) {
	result, err := Floats([]byte("NaN\n"), []byte("1.0\n"), grading.CheckerOptions{PointValue: 1, Precision: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("NaN on the process side must never pass")
	}
}

func TestFloatsRelativeToleratesSmallError(t *testing.T) {
	result, err := Floats([]byte("1.0000001\n"), []byte("1.0000000\n"), grading.CheckerOptions{
		PointValue: 1, Precision: 6, ErrorMode: "relative",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected relative check within tolerance to pass")
	}
}

func TestFloatsPresentationErrorOnLineCountMismatch(t *testing.T) {
	result, err := Floats([]byte("1 2\n"), []byte("1\n2\n"), grading.CheckerOptions{PointValue: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected a line-count mismatch to fail")
	}
	if result.Feedback == nil || *result.Feedback != "Presentation Error" {
		t.Fatalf("expected feedback to be exactly %q, got %v", "Presentation Error", result.Feedback)
	}
	if result.ExtendedFeedback == nil {
		t.Fatalf("expected extended feedback mentioning line counts")
	}
	if !strings.Contains(*result.ExtendedFeedback, "2") || !strings.Contains(*result.ExtendedFeedback, "1") {
		t.Fatalf("extended feedback %q should mention both line counts", *result.ExtendedFeedback)
	}
}

func TestFloatsPresentationErrorOnTokenCountMismatch(t *testing.T) {
	result, err := Floats([]byte("1 2\n"), []byte("1\n"), grading.CheckerOptions{PointValue: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected a token-count mismatch to fail")
	}
	if result.Feedback == nil || *result.Feedback != "Presentation Error" {
		t.Fatalf("expected feedback to be exactly %q, got %v", "Presentation Error", result.Feedback)
	}
	if result.ExtendedFeedback == nil || !strings.Contains(*result.ExtendedFeedback, "token") {
		t.Fatalf("expected extended feedback describing the token-count mismatch, got %v", result.ExtendedFeedback)
	}
}

func TestFloatsPresentationErrorOnNonNumericParticipantToken(t *testing.T) {
	result, err := Floats([]byte("abc\n"), []byte("1.0\n"), grading.CheckerOptions{PointValue: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected a non-numeric participant token where the judge expects a float to fail")
	}
	if result.Feedback == nil || *result.Feedback != "Presentation Error" {
		t.Fatalf("expected feedback to be exactly %q, got %v", "Presentation Error", result.Feedback)
	}
}

func TestFloatsRequiresExactMatchForNonNumericTokens(t *testing.T) {
	result, err := Floats([]byte("yes\n"), []byte("no\n"), grading.CheckerOptions{PointValue: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected non-numeric token mismatch to fail")
	}
}

func TestFloatsRelWrapperForcesRelativeMode(t *testing.T) {
	result, err := FloatsRel([]byte("100.00005\n"), []byte("100.0000\n"), grading.CheckerOptions{PointValue: 1, Precision: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected relative tolerance to absorb proportional error")
	}
}

func TestVerifyDefaultAcceptsEitherBound(t *testing.T) {
	if !verifyDefault(1e-10, 0, 1e-6) {
		t.Fatalf("tiny judge value with absolute-tolerance difference should pass via absolute bound")
	}
	if math.IsNaN(errorRelative(0, 0)) {
		t.Fatalf("errorRelative(0,0) must not be NaN")
	}
}
