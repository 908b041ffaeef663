package contrib

import (
	"strconv"
	"strings"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/errs"
)

// Themis interprets a Themis-convention checker: exit 0 is the only
// recognised success code, and the awarded fraction is the last line of
// stderr multiplied by the case's point value. Non-AC delegates to the
// helper-file error translator rather than a bare internal error, matching
// dmoj/contrib/themis.py's parse_helper_file_error call. The point
// multiplier itself deliberately skips the [0, point_value] range check
// ("I don't want to raise an internal error so I skip the range check") —
// preserved here unchanged rather than hardened, since tightening it would
// diverge from the checker this was ported from.
type Themis struct{}

func (Themis) Name() string { return "themis" }

func (Themis) CheckerArgsFormatString() string {
	return "-DTHEMIS {input_file} {output_file} {answer_file}"
}

func (Themis) InteractorArgsFormatString() string {
	return "-DTHEMIS {input_file} {output_file} {answer_file}"
}

func (Themis) ValidatorArgsFormatString() string {
	return "-DTHEMIS {input_file}"
}

func (Themis) ParseReturnCode(in grading.ParseReturnCodeInput) (grading.CheckerResult, error) {
	return guardInternalError(in, func() (grading.CheckerResult, error) {
		if in.ExitCode != 0 {
			return grading.CheckerResult{}, grading.TranslateHelperFileError(in.Name, helperOutcome(in), in.TimeLimit, in.MemoryLimit)
		}

		lines := strings.Split(strings.TrimRight(in.ExtendedFeedback, "\n"), "\n")
		last := strings.TrimSpace(lines[len(lines)-1])
		multiplier, err := strconv.ParseFloat(last, 64)
		if err != nil {
			return grading.CheckerResult{}, errs.NewInternalError("themis checker reported unparsable multiplier %q", last)
		}

		points := multiplier * in.PointValue
		feedback := in.Feedback
		return grading.CheckerResult{Passed: points >= 1e-6, Points: points, Feedback: &feedback}, nil
	})
}
