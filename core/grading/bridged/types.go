// Package bridged runs an external checker, interactor or validator
// process and translates its exit status via a contrib module, ported from
// dmoj/checkers/bridged.py. It defines its own compiler/executable
// interfaces instead of depending on the root judge client, so that
// core/grading never imports back up to core and risks a cycle.
package bridged

import (
	"context"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// Executable is a compiled auxiliary program ready to be launched against a
// fixed argument list.
type Executable interface {
	Launch(ctx context.Context, args []string, stdin []byte, limits grading.Limits) (*LaunchResult, error)
}

// Compiler builds an auxiliary source tree into an Executable. No type in
// the root package implements it; the worker does not use the bridged
// runner.
type Compiler interface {
	Compile(ctx context.Context, language string, sources []string, defines []string) (Executable, error)
}

// LaunchResult is the observable state of a finished auxiliary process,
// enough to populate a grading.ParseReturnCodeInput.
type LaunchResult struct {
	Stdout                     []byte
	Stderr                     []byte
	ExitCode                   int
	TimedOut                   bool
	MemoryExceeded             bool
	Signaled                   bool
	SignalName                 string
	ProtectionFaultSyscall     int
	ProtectionFaultSyscallName string
	ExecutionTime              float64
	WallClockTime              float64
}
