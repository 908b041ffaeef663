package contrib

import "github.com/vuthanhtrung2010/judge-server/core/grading"

// Default is the fallback contrib module: exit code 0 is AC, exit code 1 is
// WA. Ported from dmoj/contrib/base.py's BaseContribModule defaults (ac=0,
// wa=1), used directly for checkers with no richer convention. Any other
// exit code is not a recognised verdict and is delegated to the
// helper-file error translator, same as themis.go.
type Default struct{}

func (Default) Name() string { return "default" }

func (Default) CheckerArgsFormatString() string {
	return "{input_file} {answer_file} {output_file}"
}

func (Default) InteractorArgsFormatString() string {
	return "{input_file} {answer_file} {output_file}"
}

func (Default) ValidatorArgsFormatString() string {
	return "{input_file}"
}

func (Default) ParseReturnCode(in grading.ParseReturnCodeInput) (grading.CheckerResult, error) {
	return guardInternalError(in, func() (grading.CheckerResult, error) {
		switch in.ExitCode {
		case 0:
			feedback := in.Feedback
			return grading.CheckerResult{Passed: true, Points: in.PointValue, Feedback: &feedback}, nil
		case 1:
			feedback := in.Feedback
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback}, nil
		default:
			return grading.CheckerResult{}, grading.TranslateHelperFileError(in.Name, helperOutcome(in), in.TimeLimit, in.MemoryLimit)
		}
	})
}
