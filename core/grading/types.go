package grading

// CheckerOptions carries the option set recognised by stock checkers,
// per §6 "Options recognised by stock checkers".
type CheckerOptions struct {
	PointValue                     float64
	Precision                      int
	ErrorMode                      string // absolute | relative | default
	PEDisallowed                   bool // true suppresses the Presentation Error upgrade (pe_allowed=false)
	Feedback                       bool
	TreatCheckerPointsAsPercentage bool
}

// Checker is a pure comparator: (process, judge) -> verdict. External
// comparators register against the same interface as the built-ins
// (§9 "closed enumeration ... plus an open interface").
type Checker interface {
	Check(processOutput, judgeOutput []byte, opts CheckerOptions) (CheckerResult, error)
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(processOutput, judgeOutput []byte, opts CheckerOptions) (CheckerResult, error)

func (f CheckerFunc) Check(processOutput, judgeOutput []byte, opts CheckerOptions) (CheckerResult, error) {
	return f(processOutput, judgeOutput, opts)
}

// Limits bounds a single process launch.
type Limits struct {
	TimeLimit     float64 // seconds, CPU time
	WallTimeLimit float64 // seconds
	MemoryLimit   int64   // KB
}

// TestCaseConfig selects checker behaviour and per-case overrides. It is
// not decoded from YAML; the worker builds one per problem from the stored
// checker type and epsilon (checkerConfigFor in worker_processor.go).
type TestCaseConfig struct {
	Checker              string // registry key; "" means "standard"
	Symlinks             map[string]string
	WallTimeFactor       float64
	OutputLimitLength    int64 // bytes
	InputFilename        string
	OutputFilename       string
	BatchNumber          int

	// Checker options forwarded verbatim into CheckerOptions by the
	// standard grader, per §6 "Options recognised by stock checkers".
	Precision                      int
	ErrorMode                      string
	PEDisallowed                   bool
	TreatCheckerPointsAsPercentage bool
}

// TestCase is one (input, expected output, config) triple.
type TestCase struct {
	Points     float64
	Config     TestCaseConfig
	InputData  []byte
	OutputData []byte
}

// Submission is the unit of work handed to a grader.
type Submission struct {
	ID               int64
	ProblemID        int64
	StorageNamespace string
	Language         string
	Source           []byte
	TimeLimit        float64 // seconds
	MemoryLimit      int64   // KB
	ShortCircuit     bool
	Meta             map[string]any
}

// ContribModule owns exit-code semantics for a compiled checker or
// interactor process. Implementations live in core/grading/contrib.
type ContribModule interface {
	Name() string
	CheckerArgsFormatString() string
	InteractorArgsFormatString() string
	ValidatorArgsFormatString() string
	ParseReturnCode(in ParseReturnCodeInput) (CheckerResult, error)
}

// ParseReturnCodeInput bundles the finished process' observable state, per
// §3 ContribModule.parse_return_code and §6's contract.
type ParseReturnCodeInput struct {
	ExitCode                       int
	TimedOut                       bool
	MemoryExceeded                 bool
	ProtectionFaultSyscall         int
	ProtectionFaultSyscallName     string
	Signaled                       bool
	SignalName                     string
	PointValue                     float64
	TimeLimit                      float64
	MemoryLimit                    int64
	Feedback                       string
	ExtendedFeedback               string
	Name                           string // "checker", "manager", ...
	Stderr                         []byte
	TreatCheckerPointsAsPercentage bool
}
