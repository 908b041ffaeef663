package checkers

import (
	"bytes"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// Identical requires byte-exact equality. When the bytes differ but the
// whitespace-tolerant Standard comparison would have passed, it reports a
// Presentation Error instead of a plain WA — unless opts.PEDisallowed is
// set, in which case it is silent WA with no feedback. The Python default
// is pe_allowed=True, so the Go zero value (PEDisallowed: false) matches it.
func Identical(processOutput, judgeOutput []byte, opts grading.CheckerOptions) (grading.CheckerResult, error) {
	if bytes.Equal(judgeOutput, processOutput) {
		return grading.CheckerResult{Passed: true, Points: opts.PointValue}, nil
	}

	result := grading.CheckerResult{Passed: false, Points: 0}
	if !opts.PEDisallowed {
		standardResult, _ := Standard(processOutput, judgeOutput, opts)
		if standardResult.Passed {
			feedback := "Presentation Error, check your whitespace"
			result.Feedback = &feedback
		}
	}
	return result, nil
}
