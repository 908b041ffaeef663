package grading

import (
	"context"
	"testing"
)

// fakeLauncher returns a fixed outcome regardless of the case, letting
// tests drive the standard grader's checker-invocation logic directly.
type fakeLauncher struct {
	outcome *LaunchOutcome
	err     error
}

func (f *fakeLauncher) Launch(ctx context.Context, tc TestCase, limits Limits, input []byte) (*LaunchOutcome, error) {
	return f.outcome, f.err
}

func echoChecker(process, judge []byte, opts CheckerOptions) (CheckerResult, error) {
	return BoolCheckerResult(string(process) == string(judge), opts.PointValue), nil
}

func TestStandardGraderGradeCaseAccepted(t *testing.T) {
	grader := &StandardGrader{
		Launcher: &fakeLauncher{outcome: &LaunchOutcome{Stdout: []byte("42\n"), ExecutionTime: 0.1}},
		CheckerLookup: func(name string) (Checker, error) {
			return CheckerFunc(echoChecker), nil
		},
	}
	result, err := grader.GradeCase(context.Background(), TestCase{Points: 10, OutputData: []byte("42\n")}, Limits{TimeLimit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResultFlag != 0 {
		t.Fatalf("expected AC, got flag %s", result.ResultFlag)
	}
	if result.Points != 10 {
		t.Fatalf("expected full points, got %v", result.Points)
	}
}

func TestStandardGraderGradeCaseStickyFlagSkipsChecker(t *testing.T) {
	called := false
	grader := &StandardGrader{
		Launcher: &fakeLauncher{outcome: &LaunchOutcome{ResultFlag: FlagTLE}},
		CheckerLookup: func(name string) (Checker, error) {
			called = true
			return CheckerFunc(echoChecker), nil
		},
	}
	result, err := grader.GradeCase(context.Background(), TestCase{Points: 10}, Limits{TimeLimit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResultFlag&FlagTLE == 0 {
		t.Fatalf("expected TLE flag to survive")
	}
	if called {
		t.Fatalf("checker must not run once a sticky flag is set")
	}
}

func TestStandardGraderShortCircuitsAfterFirstFailure(t *testing.T) {
	grader := &StandardGrader{
		Launcher: &fakeLauncher{outcome: &LaunchOutcome{Stdout: []byte("wrong")}},
		CheckerLookup: func(name string) (Checker, error) {
			return CheckerFunc(echoChecker), nil
		},
		ShortCircuit: true,
	}
	cases := []TestCase{
		{Points: 10, OutputData: []byte("right")},
		{Points: 10, OutputData: []byte("right")},
		{Points: 10, OutputData: []byte("right")},
	}
	results, err := grader.GradeSubmission(context.Background(), Submission{}, cases, Limits{TimeLimit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected short-circuit after the first failing case, got %d results", len(results))
	}
}
