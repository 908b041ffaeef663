package checkers

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// verifyAbsolute reports whether contestantAns is within an absolute
// tolerance of judgeAns, ported from dmoj/checkers/floats.py:verify_absolute.
func verifyAbsolute(judgeAns, contestantAns, precision float64) bool {
	return math.Abs(judgeAns-contestantAns) <= precision
}

// verifyRelative reports whether contestantAns is within a tolerance
// proportional to |judgeAns|, ported from
// dmoj/checkers/floats.py:verify_relative.
func verifyRelative(judgeAns, contestantAns, precision float64) bool {
	return math.Abs(judgeAns-contestantAns) <= precision*math.Abs(judgeAns)
}

// verifyDefault accepts either tolerance, ported from
// dmoj/checkers/floats.py:verify_default.
func verifyDefault(judgeAns, contestantAns, precision float64) bool {
	return verifyAbsolute(judgeAns, contestantAns, precision) || verifyRelative(judgeAns, contestantAns, precision)
}

func errorAbsolute(judgeAns, contestantAns float64) float64 {
	return math.Abs(judgeAns - contestantAns)
}

func errorRelative(judgeAns, contestantAns float64) float64 {
	if judgeAns == 0 {
		if contestantAns == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs((judgeAns - contestantAns) / judgeAns)
}

func errorDefault(judgeAns, contestantAns float64) float64 {
	return math.Min(errorAbsolute(judgeAns, contestantAns), errorRelative(judgeAns, contestantAns))
}

type floatVerifier func(judgeAns, contestantAns, precision float64) bool
type floatErrorer func(judgeAns, contestantAns float64) float64

var floatVerifiers = map[string]floatVerifier{
	"absolute": verifyAbsolute,
	"relative": verifyRelative,
	"default":  verifyDefault,
}

var floatErrorers = map[string]floatErrorer{
	"absolute": errorAbsolute,
	"relative": errorRelative,
	"default":  errorDefault,
}

// presentationError builds a WA result whose Feedback is the fixed
// "Presentation Error" string required by convention, with the actual
// diagnostic relegated to ExtendedFeedback. Ported from
// dmoj/checkers/floats.py's feedback='Presentation Error' results.
func presentationError(detail string) grading.CheckerResult {
	feedback := "Presentation Error"
	return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback, ExtendedFeedback: &detail}
}

func nonEmptyLines(b []byte) [][]byte {
	raw := bytes.Split(bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n")), []byte("\n"))
	out := make([][]byte, 0, len(raw))
	for _, l := range raw {
		if len(bytes.TrimSpace(l)) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// Floats compares floating-point output to a fixed precision, tolerating
// either absolute or relative error depending on opts.ErrorMode. Lines and
// tokens are matched positionally; non-numeric judge tokens require an
// exact string match. Ported from dmoj/checkers/floats.py:check.
func Floats(processOutput, judgeOutput []byte, opts grading.CheckerOptions) (grading.CheckerResult, error) {
	precision := opts.Precision
	if precision == 0 {
		precision = 6
	}
	errorMode := opts.ErrorMode
	if errorMode == "" {
		errorMode = "default"
	}
	verify, ok := floatVerifiers[errorMode]
	if !ok {
		return grading.CheckerResult{}, fmt.Errorf("checkers: unknown float error mode %q", errorMode)
	}
	errFn := floatErrorers[errorMode]
	tolerance := math.Pow(10, -float64(precision))

	processLines := nonEmptyLines(processOutput)
	judgeLines := nonEmptyLines(judgeOutput)

	if len(processLines) != len(judgeLines) {
		return presentationError(fmt.Sprintf("%d lines judge, %d lines participant", len(judgeLines), len(processLines))), nil
	}

	for i := range judgeLines {
		judgeTokens := bytes.Fields(judgeLines[i])
		processTokens := bytes.Fields(processLines[i])

		if len(judgeTokens) != len(processTokens) {
			return presentationError(fmt.Sprintf("%d tokens judge, %d tokens participant on line %s",
				len(judgeTokens), len(processTokens), ordinal(i+1))), nil
		}

		for j := range judgeTokens {
			judgeTok := string(judgeTokens[j])
			processTok := string(processTokens[j])

			judgeFloat, err := strconv.ParseFloat(judgeTok, 64)
			if err != nil {
				// Not a float: require an exact token match.
				if judgeTok != processTok {
					feedback := fmt.Sprintf("Line %s, token %s does not match", ordinal(i+1), ordinal(j+1))
					return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback}, nil
				}
				continue
			}

			processFloat, err := strconv.ParseFloat(processTok, 64)
			if err != nil {
				return presentationError(fmt.Sprintf("Line %s, token %s is not a number", ordinal(i+1), ordinal(j+1))), nil
			}

			if math.IsNaN(judgeFloat) || math.IsNaN(processFloat) {
				feedback := fmt.Sprintf("Line %s, token %s is NaN", ordinal(i+1), ordinal(j+1))
				return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback}, nil
			}

			if !verify(judgeFloat, processFloat, tolerance) {
				feedback := compress(fmt.Sprintf(
					"Line %s, token %s, judge has %s, participant has %s (error %s)",
					ordinal(i+1), ordinal(j+1),
					strconv.FormatFloat(judgeFloat, 'g', -1, 64),
					strconv.FormatFloat(processFloat, 'g', -1, 64),
					strconv.FormatFloat(errFn(judgeFloat, processFloat), 'g', -1, 64)))
				return grading.CheckerResult{Passed: false, Points: 0, Feedback: &feedback}, nil
			}
		}
	}

	return grading.CheckerResult{Passed: true, Points: opts.PointValue}, nil
}
