package bridged

import (
	"context"
	"path/filepath"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/contrib"
)

// Runner compiles and invokes an external checker/interactor/validator
// process, translating its exit status via the named contrib module.
type Runner struct {
	Compiler Compiler
	// Cache avoids recompiling the same checker source across cases of the
	// same submission; nil disables caching.
	Cache *Cache
}

// Spec names the checker source and the contrib convention it speaks.
type Spec struct {
	Language    string
	Sources     []string
	ContribType string // registry key in core/grading/contrib; "" = default
	Interactor  bool   // true for an interactive checker (manager/interactor)
	Validator   bool
}

func (r *Runner) executable(ctx context.Context, spec Spec, defines []string) (Executable, error) {
	if r.Cache != nil {
		if exe, ok := r.Cache.Get(spec.Sources, defines); ok {
			return exe, nil
		}
	}
	exe, err := r.Compiler.Compile(ctx, spec.Language, spec.Sources, defines)
	if err != nil {
		return nil, err
	}
	if r.Cache != nil {
		r.Cache.Put(spec.Sources, defines, exe)
	}
	return exe, nil
}

// contribDefines adds the compiler defines certain contrib types expect
// their checker source to see, matching bridged.py's "-DTHEMIS"/"-DCMS".
func contribDefines(contribType string) []string {
	switch contribType {
	case "themis":
		return []string{"-DTHEMIS"}
	case "cms":
		return []string{"-DCMS"}
	default:
		return nil
	}
}

// Check compiles (or reuses) the checker and invokes it against a finished
// case's input/output/answer files, mirroring bridged.py's check: a Themis
// checker receives the process and judge output directories as two
// newline-joined paths over stdin rather than argv; every other contrib
// type gets its paths spliced into the appropriate args-format-string.
func (r *Runner) Check(ctx context.Context, spec Spec, inputFile, outputFile, answerFile string, limits grading.Limits, pointValue float64, treatAsPercentage bool) (grading.CheckerResult, error) {
	module, err := contrib.Lookup(spec.ContribType)
	if err != nil {
		return grading.CheckerResult{}, err
	}

	defines := contribDefines(spec.ContribType)
	exe, err := r.executable(ctx, spec, defines)
	if err != nil {
		return grading.CheckerResult{}, err
	}

	var args []string
	var stdin []byte
	if spec.ContribType == "themis" {
		stdin = []byte(filepath.Dir(outputFile) + "\n" + filepath.Dir(answerFile) + "\n")
	} else {
		formatString := module.CheckerArgsFormatString()
		switch {
		case spec.Interactor:
			formatString = module.InteractorArgsFormatString()
		case spec.Validator:
			formatString = module.ValidatorArgsFormatString()
		}
		args = splitArgsTemplate(formatString, map[string]string{
			"input_file":  inputFile,
			"output_file": outputFile,
			"answer_file": answerFile,
		})
	}

	result, err := exe.Launch(ctx, args, stdin, limits)
	if err != nil {
		return grading.CheckerResult{}, err
	}

	return module.ParseReturnCode(grading.ParseReturnCodeInput{
		ExitCode:                       result.ExitCode,
		TimedOut:                       result.TimedOut,
		MemoryExceeded:                 result.MemoryExceeded,
		ProtectionFaultSyscall:         result.ProtectionFaultSyscall,
		ProtectionFaultSyscallName:     result.ProtectionFaultSyscallName,
		Signaled:                       result.Signaled,
		SignalName:                     result.SignalName,
		PointValue:                     pointValue,
		TimeLimit:                      limits.TimeLimit,
		MemoryLimit:                    limits.MemoryLimit,
		Feedback:                       string(result.Stdout),
		ExtendedFeedback:               string(result.Stderr),
		Name:                           "checker",
		Stderr:                         result.Stderr,
		TreatCheckerPointsAsPercentage: treatAsPercentage,
	})
}
