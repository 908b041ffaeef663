package grading

import (
	"strings"
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

func TestTranslateHelperFileErrorPriorityOrder(t *testing.T) {
	// TLE beats everything else even if other flags are also set.
	err := TranslateHelperFileError("checker", ProcessOutcome{
		TimedOut:       true,
		MemoryExceeded: true,
		ExitCode:       1,
	}, 2.0, 65536)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a TLE message to take priority, got %v", err)
	}
}

func TestTranslateHelperFileErrorMemory(t *testing.T) {
	err := TranslateHelperFileError("interactor", ProcessOutcome{MemoryExceeded: true}, 2.0, 65536)
	if err == nil || !strings.Contains(err.Error(), "memory limit") {
		t.Fatalf("expected a memory-limit message, got %v", err)
	}
}

func TestTranslateHelperFileErrorProtectionFault(t *testing.T) {
	err := TranslateHelperFileError("checker", ProcessOutcome{
		ProtectionFaultSyscall:     59,
		ProtectionFaultSyscallName: "execve",
	}, 2.0, 65536)
	if err == nil || !strings.Contains(err.Error(), "execve") {
		t.Fatalf("expected the syscall name in the message, got %v", err)
	}
}

func TestTranslateHelperFileErrorSignal(t *testing.T) {
	err := TranslateHelperFileError("manager", ProcessOutcome{Signaled: true, SignalName: "SIGSEGV"}, 2.0, 65536)
	if err == nil || !strings.Contains(err.Error(), "SIGSEGV") {
		t.Fatalf("expected the signal name in the message, got %v", err)
	}
}

func TestTranslateHelperFileErrorNonzeroExit(t *testing.T) {
	err := TranslateHelperFileError("checker", ProcessOutcome{ExitCode: 5, Stderr: "bad input"}, 2.0, 65536)
	if err == nil || !strings.Contains(err.Error(), "bad input") {
		t.Fatalf("expected stderr to be included, got %v", err)
	}
	if _, ok := err.(*errs.InternalError); !ok {
		t.Fatalf("expected an *errs.InternalError, got %T", err)
	}
}

func TestTranslateHelperFileErrorSuccess(t *testing.T) {
	if err := TranslateHelperFileError("checker", ProcessOutcome{ExitCode: 0}, 2.0, 65536); err != nil {
		t.Fatalf("expected nil error on clean exit, got %v", err)
	}
}
