package grading

import (
	"fmt"

	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

// ProcessOutcome is the subset of a finished process' OS-level status the
// helper-file error translator needs to classify it, ported from
// dmoj/utils/helper_files.py:parse_helper_file_error.
type ProcessOutcome struct {
	ExitCode                   int
	TimedOut                   bool
	MemoryExceeded             bool
	ProtectionFaultSyscall     int
	ProtectionFaultSyscallName string
	Signaled                   bool
	SignalName                 string
	Stderr                     string
}

// TranslateHelperFileError classifies a finished auxiliary process (a
// checker, interactor, validator, or communication manager) as either
// successful (nil) or an *errs.InternalError describing why it failed.
// Checks run in the same priority order as parse_helper_file_error: TLE,
// then MLE, then a sandbox protection fault, then a fatal signal, then a
// nonzero exit code.
func TranslateHelperFileError(name string, outcome ProcessOutcome, timeLimit float64, memoryLimit int64) error {
	if outcome.TimedOut {
		return errs.NewInternalError("%s timed out (limit %.2fs)", name, timeLimit)
	}
	if outcome.MemoryExceeded {
		return errs.NewInternalError("%s exceeded the memory limit (%d KB)", name, memoryLimit)
	}
	if outcome.ProtectionFaultSyscall != 0 {
		return errs.NewInternalError("%s committed a protection fault (%d, %s)", name, outcome.ProtectionFaultSyscall, outcome.ProtectionFaultSyscallName)
	}
	if outcome.Signaled {
		return errs.NewInternalError("%s exited with signal %s", name, outcome.SignalName)
	}
	if outcome.ExitCode != 0 {
		msg := fmt.Sprintf("%s exited with nonzero code %d", name, outcome.ExitCode)
		if outcome.Stderr != "" {
			msg += ": " + outcome.Stderr
		}
		return errs.NewInternalError("%s", msg)
	}
	return nil
}
