package checkers

import "github.com/vuthanhtrung2010/judge-server/core/grading"

// FloatsRel is Floats with the error mode pinned to relative, ported from
// dmoj/checkers/floatsrel.py (a thin wrapper over floats.check).
func FloatsRel(processOutput, judgeOutput []byte, opts grading.CheckerOptions) (grading.CheckerResult, error) {
	opts.ErrorMode = "relative"
	return Floats(processOutput, judgeOutput, opts)
}
