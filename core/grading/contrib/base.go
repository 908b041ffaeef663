// Package contrib implements the closed set of contrib modules that
// translate a checker/interactor process' exit status into a
// grading.CheckerResult, ported from dmoj/contrib/*.py.
package contrib

import (
	"fmt"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

// helperOutcome adapts a ParseReturnCodeInput to the shape
// grading.TranslateHelperFileError expects, so contrib modules can delegate
// an unrecognised exit code to the same TLE/MLE/protection-fault/signal
// priority order every other helper file is judged by.
func helperOutcome(in grading.ParseReturnCodeInput) grading.ProcessOutcome {
	return grading.ProcessOutcome{
		ExitCode:                   in.ExitCode,
		TimedOut:                   in.TimedOut,
		MemoryExceeded:             in.MemoryExceeded,
		ProtectionFaultSyscall:     in.ProtectionFaultSyscall,
		ProtectionFaultSyscallName: in.ProtectionFaultSyscallName,
		Signaled:                   in.Signaled,
		SignalName:                 in.SignalName,
		Stderr:                     string(in.Stderr),
	}
}

// guardInternalError mirrors dmoj/contrib/base.py's catch_internal_error
// decorator: an InternalError raised while interpreting a checker's exit
// status becomes a WA carrying the error text as extended feedback, rather
// than aborting the whole submission.
func guardInternalError(in grading.ParseReturnCodeInput, fn func() (grading.CheckerResult, error)) (grading.CheckerResult, error) {
	result, err := fn()
	if err == nil {
		return result, nil
	}
	if ie, ok := err.(*errs.InternalError); ok {
		feedback := fmt.Sprintf("Checker exitcode %d", in.ExitCode)
		extended := ie.Error()
		return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &extended}, nil
	}
	return grading.CheckerResult{}, err
}
