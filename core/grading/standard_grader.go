package grading

import "context"

// ProcessLauncher runs a compiled submission against one test case and
// returns the OS-observable outcome, without judging it. Implementations
// wrap a sandboxed executor; the sandbox itself is an external collaborator
// and is not implemented here.
type ProcessLauncher interface {
	Launch(ctx context.Context, tc TestCase, limits Limits, input []byte) (*LaunchOutcome, error)
}

// LaunchOutcome is what a launched process produced, enough to build a
// Result and feed a checker.
type LaunchOutcome struct {
	Stdout        []byte
	Stderr        []byte
	ExitCode      int
	ExecutionTime float64
	WallClockTime float64
	MaxMemory     int64
	ResultFlag    ResultFlag
	VoluntaryCS   int64
	InvoluntaryCS int64
}

// StandardGrader runs the launch -> check -> report lifecycle of §4.E for
// every test case of a submission. It generalizes
// core.WorkerProcessor.Process's loop — which hard-coded an "exact"/"eps"
// comparison inline — into the full checker/contrib plugin system.
type StandardGrader struct {
	Launcher      ProcessLauncher
	CheckerLookup func(name string) (Checker, error)
	ShortCircuit  bool
}

// GradeCase runs one case end to end: launch, then (unless the process
// already failed with a sticky flag) check, then fold the verdict into a
// Result.
func (g *StandardGrader) GradeCase(ctx context.Context, tc TestCase, limits Limits) (*Result, error) {
	outcome, err := g.Launcher.Launch(ctx, tc, limits, tc.InputData)
	if err != nil {
		return nil, err
	}

	result := NewResult(tc.Points)
	result.ExecutionTime = outcome.ExecutionTime
	result.WallClockTime = outcome.WallClockTime
	result.MaxMemory = outcome.MaxMemory
	result.VoluntaryCS = outcome.VoluntaryCS
	result.InvoluntaryCS = outcome.InvoluntaryCS
	result.ProcOutput = outcome.Stdout
	result.ResultFlag = outcome.ResultFlag

	if outcome.ResultFlag.Sticky() {
		return result, nil
	}

	checker, err := g.CheckerLookup(tc.Config.Checker)
	if err != nil {
		return nil, err
	}
	checkerResult, err := checker.Check(outcome.Stdout, tc.OutputData, CheckerOptions{
		PointValue:                     tc.Points,
		Feedback:                       true,
		Precision:                      tc.Config.Precision,
		ErrorMode:                      tc.Config.ErrorMode,
		PEDisallowed:                   tc.Config.PEDisallowed,
		TreatCheckerPointsAsPercentage: tc.Config.TreatCheckerPointsAsPercentage,
	})
	if err != nil {
		return nil, err
	}

	applyCheckerResult(result, checkerResult)
	return result, nil
}

// applyCheckerResult folds a checker/contrib verdict into a Result: points
// are taken verbatim, a failed verdict sets WA unless a sticky flag is
// already present, and feedback strings are copied when present.
func applyCheckerResult(result *Result, checkerResult CheckerResult) {
	result.Points = checkerResult.Points
	if !checkerResult.Passed && !result.ResultFlag.Sticky() {
		result.ResultFlag |= FlagWA
	}
	if checkerResult.Feedback != nil {
		result.Feedback = *checkerResult.Feedback
	}
	if checkerResult.ExtendedFeedback != nil {
		result.ExtendedFeedback = *checkerResult.ExtendedFeedback
	}
}

// GradeSubmission runs every case in order, short-circuiting after the
// first non-AC verdict when ShortCircuit is set, the same early-break
// behaviour worker_processor.go's Process loop used.
func (g *StandardGrader) GradeSubmission(ctx context.Context, sub Submission, cases []TestCase, limits Limits) ([]*Result, error) {
	results := make([]*Result, 0, len(cases))
	for _, tc := range cases {
		result, err := g.GradeCase(ctx, tc, limits)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if g.ShortCircuit && result.ResultFlag != 0 {
			break
		}
	}
	return results, nil
}
