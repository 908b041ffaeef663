// Package errs holds the grading core's error kinds. Exceptions in the
// original judge are control flow; here each kind is a concrete type
// returned across function boundaries instead of raised.
package errs

import "fmt"

// CompileError means the submission or an auxiliary source failed to build.
// It terminates the submission before any case runs.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	if e.Message == "" {
		return "compiler exited abnormally"
	}
	return e.Message
}

func NewCompileError(message string) *CompileError {
	if message == "" {
		message = "compiler exited abnormally"
	}
	return &CompileError{Message: message}
}

// InternalError aborts the current case only; the submission may continue
// to the next one. Contrib modules catch it in guardInternalError and return
// a failed checker result carrying the checker exit code and the error
// text; nothing in the grading core sets the IE result flag from it.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return e.Message
}

func NewInternalError(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// OutputLimitExceeded is raised when a captured stream exceeds its configured
// byte limit.
type OutputLimitExceeded struct {
	Stream string
	Limit  int
	Data   []byte
}

func (e *OutputLimitExceeded) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("exceeded %d-byte limit on %s stream", e.Limit, e.Stream)
	}
	return fmt.Sprintf("exceeded %d-byte limit on %s stream.\nFirst %d bytes of data: %s",
		e.Limit, e.Stream, len(e.Data), string(e.Data))
}

func NewOutputLimitExceeded(stream string, limit int, data []byte) *OutputLimitExceeded {
	return &OutputLimitExceeded{Stream: stream, Limit: limit, Data: data}
}
