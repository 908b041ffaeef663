package grading

import (
	"math"
	"testing"
)

func TestResultFlagZeroIsAC(t *testing.T) {
	var f ResultFlag
	if f.String() != "AC" {
		t.Fatalf("zero flag should render AC, got %q", f.String())
	}
}

func TestResultFlagSticky(t *testing.T) {
	sticky := []ResultFlag{FlagTLE, FlagMLE, FlagOLE, FlagRTE, FlagIR}
	for _, f := range sticky {
		if !f.Sticky() {
			t.Errorf("%s should be sticky", f.String())
		}
	}
	nonSticky := []ResultFlag{FlagWA, FlagIE, FlagSC}
	for _, f := range nonSticky {
		if f.Sticky() {
			t.Errorf("%s should not be sticky", f.String())
		}
	}
}

func TestMergeAggregatesCommunicationSiblings(t *testing.T) {
	result := NewResult(100)
	result.Merge(&Result{ExecutionTime: 0.7, WallClockTime: 0.8, MaxMemory: 1000, ResultFlag: 0})
	result.Merge(&Result{ExecutionTime: 0.6, WallClockTime: 0.5, MaxMemory: 2000, ResultFlag: FlagWA})

	if math.Abs(result.ExecutionTime-1.3) > 1e-9 {
		t.Errorf("ExecutionTime = %v, want 1.3", result.ExecutionTime)
	}
	if result.WallClockTime != 0.8 {
		t.Errorf("WallClockTime = %v, want 0.8 (max)", result.WallClockTime)
	}
	if result.MaxMemory != 3000 {
		t.Errorf("MaxMemory = %v, want 3000 (sum)", result.MaxMemory)
	}
	if result.ResultFlag&FlagWA == 0 {
		t.Errorf("expected WA flag to be OR'd in")
	}
}

func TestMergeNilIsNoop(t *testing.T) {
	result := NewResult(10)
	result.ExecutionTime = 5
	result.Merge(nil)
	if result.ExecutionTime != 5 {
		t.Fatalf("merging nil should not change the result")
	}
}

func TestBoolCheckerResultCoercion(t *testing.T) {
	passed := BoolCheckerResult(true, 42)
	if !passed.Passed || passed.Points != 42 {
		t.Fatalf("expected passed=true, points=42, got %+v", passed)
	}
	failed := BoolCheckerResult(false, 42)
	if failed.Passed || failed.Points != 0 {
		t.Fatalf("expected passed=false, points=0, got %+v", failed)
	}
}
