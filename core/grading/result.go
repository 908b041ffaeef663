// Package grading implements the per-case lifecycle, checker/contrib
// plugin system, and communication grader described by the grading core
// specification. Types in this file are pure data, ported from
// dmoj/result.py.
package grading

// ResultFlag is a bitset over verdict conditions. The zero value denotes
// Accepted; every other verdict sets exactly one or more bits. Bit
// positions are stable and match the controller contract.
type ResultFlag uint32

const (
	FlagWA ResultFlag = 1 << iota
	FlagTLE
	FlagMLE
	FlagOLE
	FlagRTE
	FlagIR
	FlagIE
	FlagSC
)

// Sticky reports whether the flag, once set on a Result, must never be
// cleared by a later merge or checker call.
func (f ResultFlag) Sticky() bool {
	return f&(FlagTLE|FlagMLE|FlagOLE|FlagRTE|FlagIR) != 0
}

func (f ResultFlag) String() string {
	if f == 0 {
		return "AC"
	}
	names := []struct {
		flag ResultFlag
		name string
	}{
		{FlagWA, "WA"}, {FlagTLE, "TLE"}, {FlagMLE, "MLE"}, {FlagOLE, "OLE"},
		{FlagRTE, "RTE"}, {FlagIR, "IR"}, {FlagIE, "IE"}, {FlagSC, "SC"},
	}
	out := ""
	for _, n := range names {
		if f&n.flag != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// Result is the per-case outcome handed off to the packet layer.
type Result struct {
	ResultFlag        ResultFlag
	ExecutionTime     float64 // seconds, CPU time
	WallClockTime     float64 // seconds
	MaxMemory         int64   // KB
	Points            float64
	TotalPoints       float64
	ProcOutput        []byte
	Feedback          string
	ExtendedFeedback  string
	VoluntaryCS       int64
	InvoluntaryCS     int64
	RuntimeVersion    string
}

// NewResult creates a Result bound to a case's point value.
func NewResult(totalPoints float64) *Result {
	return &Result{TotalPoints: totalPoints}
}

// Merge folds other into r, following §4.A / §4.F's aggregation rules:
// flags OR together, wall clock takes the max, CPU time and memory sum.
// Used to combine sibling user-process results in the communication
// grader, and ported from dmoj/graders/communication.py:merge_results.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.ExecutionTime += other.ExecutionTime
	if other.WallClockTime > r.WallClockTime {
		r.WallClockTime = other.WallClockTime
	}
	r.MaxMemory += other.MaxMemory
	r.ResultFlag |= other.ResultFlag
}

// CheckerResult is the value returned by a checker or contrib module.
// A failed result with nonzero Points is legal only where a specific
// contrib module documents partial failure. Themis is the one that does:
// its multiplier is not range-checked, so a sub-threshold or negative
// award comes back with Passed false and those Points.
type CheckerResult struct {
	Passed           bool
	Points           float64
	Feedback         *string
	ExtendedFeedback *string
}

// BoolCheckerResult converts a checker's bare bool return into the full
// struct, per the standard-grader coercion rule in §4.E step 4.
func BoolCheckerResult(passed bool, pointValue float64) CheckerResult {
	if passed {
		return CheckerResult{Passed: true, Points: pointValue}
	}
	return CheckerResult{Passed: false, Points: 0}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
