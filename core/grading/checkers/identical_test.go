package checkers

import (
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

func TestIdenticalStrictness(t *testing.T) {
	result, err := Identical([]byte("a\nb\nc"), []byte("a\nb\nc"), grading.CheckerOptions{PointValue: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected byte-exact match to pass")
	}
}

func TestIdenticalPresentationErrorWhenPEAllowed(t *testing.T) {
	result, err := Identical([]byte("a\nb\nc\n"), []byte("a\nb\nc"), grading.CheckerOptions{PointValue: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected a trailing-newline difference to fail")
	}
	if result.Feedback == nil || *result.Feedback != "Presentation Error, check your whitespace" {
		t.Fatalf("expected PE feedback, got %v", result.Feedback)
	}
}

func TestIdenticalSuppressesPEWhenDisallowed(t *testing.T) {
	result, err := Identical([]byte("a\nb\nc\n"), []byte("a\nb\nc"), grading.CheckerOptions{PointValue: 10, PEDisallowed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failure")
	}
	if result.Feedback != nil {
		t.Fatalf("expected no feedback when pe_allowed=false, got %v", *result.Feedback)
	}
}

func TestIdenticalPlainWAWhenStandardWouldFailToo(t *testing.T) {
	result, err := Identical([]byte("a\nb\nd"), []byte("a\nb\nc"), grading.CheckerOptions{PointValue: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Passed {
		t.Fatalf("expected failure")
	}
	if result.Feedback != nil {
		t.Fatalf("expected no PE upgrade when tokens genuinely differ, got %v", *result.Feedback)
	}
}
