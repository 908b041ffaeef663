package errs

import (
	"strings"
	"testing"
)

func TestNewCompileErrorDefaultsMessage(t *testing.T) {
	err := NewCompileError("")
	if err.Error() != "compiler exited abnormally" {
		t.Fatalf("unexpected default message: %q", err.Error())
	}
}

func TestNewInternalErrorFormats(t *testing.T) {
	err := NewInternalError("checker exited %d", 7)
	if err.Error() != "checker exited 7" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewOutputLimitExceededIncludesData(t *testing.T) {
	err := NewOutputLimitExceeded("stdout", 10, []byte("hello"))
	if !strings.Contains(err.Error(), "hello") {
		t.Fatalf("expected captured data in message, got %q", err.Error())
	}
}

func TestNewOutputLimitExceededWithoutData(t *testing.T) {
	err := NewOutputLimitExceeded("stdout", 10, nil)
	if strings.Contains(err.Error(), "First") {
		t.Fatalf("should not mention captured data when none was given, got %q", err.Error())
	}
}
