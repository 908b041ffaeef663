package contrib

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

// testlib's fixed exit-code convention.
const (
	testlibAC      = 0
	testlibWA      = 1
	testlibPE      = 2
	testlibIE      = 3
	testlibPartial = 7
)

// Testlib interprets a testlib-convention checker/interactor/validator.
// Ported from dmoj/contrib/testlib.py.
type Testlib struct{}

func (Testlib) Name() string { return "testlib" }

func (Testlib) CheckerArgsFormatString() string {
	return "{input_file} {output_file} {answer_file}"
}

func (Testlib) InteractorArgsFormatString() string {
	return "{input_file} {output_file} {answer_file}"
}

func (Testlib) ValidatorArgsFormatString() string {
	return "--group st{batch_no}"
}

// testlibRepartial matches a "points <value>" line testlib writes to stderr
// on partial-credit verdicts.
var testlibRepartial = regexp.MustCompile(`(?m)^points ([-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?)`)

func (Testlib) ParseReturnCode(in grading.ParseReturnCodeInput) (grading.CheckerResult, error) {
	return guardInternalError(in, func() (grading.CheckerResult, error) {
		switch in.ExitCode {
		case testlibAC:
			feedback := in.Feedback
			return grading.CheckerResult{Passed: true, Points: in.PointValue, Feedback: &feedback}, nil
		case testlibWA, testlibPE:
			feedback := in.Feedback
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback}, nil
		case testlibIE:
			return grading.CheckerResult{}, errs.NewInternalError("testlib checker reported internal error: %s", in.Feedback)
		case testlibPartial:
			match := testlibRepartial.FindStringSubmatch(in.ExtendedFeedback)
			if match == nil {
				return grading.CheckerResult{}, errs.NewInternalError("testlib checker exited PARTIAL without a points line")
			}
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				return grading.CheckerResult{}, errs.NewInternalError("testlib checker reported unparsable points %q", match[1])
			}

			// PARTIAL is unconditionally a pass, even at zero points — testlib's
			// own convention (dmoj/contrib/testlib.py) always returns
			// CheckerResult(True, points, ...) on exit 7.
			var awarded float64
			if in.TreatCheckerPointsAsPercentage {
				if value < 0 || value > 100 {
					return grading.CheckerResult{}, errs.NewInternalError("testlib checker reported percentage %v outside [0, 100]", value)
				}
				awarded = value * in.PointValue / 100
			} else {
				if value < 0 || value > in.PointValue {
					return grading.CheckerResult{}, errs.NewInternalError("testlib checker reported points %v outside [0, %v]", value, in.PointValue)
				}
				awarded = value
			}

			feedback := in.Feedback
			return grading.CheckerResult{Passed: true, Points: awarded, Feedback: &feedback}, nil
		default:
			feedback := fmt.Sprintf("Checker exitcode %d", in.ExitCode)
			extended := strings.TrimSpace(in.ExtendedFeedback)
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &extended}, nil
		}
	})
}
