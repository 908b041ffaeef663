package contrib

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

// CMS interprets a CMS-convention checker: exit 0 is AC (partial credit
// parsed from a leading percentage in stdout), anything else is WA. Ported
// from dmoj/contrib/cms.py.
type CMS struct{}

func (CMS) Name() string { return "cms" }

func (CMS) CheckerArgsFormatString() string {
	return "{input_file} {answer_file} {output_file}"
}

func (CMS) InteractorArgsFormatString() string {
	return "{input_file} {output_file} {answer_file}"
}

func (CMS) ValidatorArgsFormatString() string {
	return "{input_file}"
}

// cmsRepartial matches a leading fraction in [0, 1] at the start of any line
// of the checker's feedback, e.g. "1.0 Output is correct".
var cmsRepartial = regexp.MustCompile(`(?m)^([-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?)`)

// cmsStandardOutputs are CMS's well-known sentinel substrings, rewritten to
// their English meaning in extended feedback.
var cmsStandardOutputs = map[string]string{
	"translate:success": "Output is correct",
	"translate:wrong":    "Output isn't correct",
	"translate:partial":  "Output is partially correct",
}

func cmsTranslateExtended(extended string) string {
	for sentinel, replacement := range cmsStandardOutputs {
		extended = strings.ReplaceAll(extended, sentinel, replacement)
	}
	return strings.TrimSpace(extended)
}

func (CMS) ParseReturnCode(in grading.ParseReturnCodeInput) (grading.CheckerResult, error) {
	return guardInternalError(in, func() (grading.CheckerResult, error) {
		extended := cmsTranslateExtended(in.ExtendedFeedback)
		if in.ExitCode != 0 {
			feedback := "Checker failed"
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &extended}, nil
		}

		trimmed := strings.TrimSpace(in.Feedback)
		match := cmsRepartial.FindString(trimmed)
		if match == "" {
			feedback := in.Feedback
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &extended}, nil
		}

		percentage, err := strconv.ParseFloat(match, 64)
		if err != nil {
			feedback := in.Feedback
			return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &extended}, nil
		}
		if percentage < 0.0 || percentage > 1.0 {
			return grading.CheckerResult{}, errs.NewInternalError("cms checker reported percentage %v outside [0, 1]", percentage)
		}

		points := percentage * in.PointValue
		feedback := in.Feedback
		return grading.CheckerResult{Passed: percentage != 0, Points: points, Feedback: &feedback, ExtendedFeedback: &extended}, nil
	})
}
