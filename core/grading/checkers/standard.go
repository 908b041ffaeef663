// Package checkers implements the pure comparators of §4.B: standard,
// linecount, identical, floats and floatsrel. Each is a pure function of
// (process output, judge output, options) and never touches a process or
// the filesystem, ported from dmoj/checkers/*.py and the shared
// dmoj/checkers/_checker.py helpers it builds on.
package checkers

import (
	"bytes"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// tokens splits on any run of ASCII whitespace, discarding empty tokens —
// the "standard" whitespace-tolerant comparison.
func tokens(b []byte) [][]byte {
	return bytes.Fields(b)
}

// lines splits on line terminators and discards trailing blank lines,
// trimming trailing whitespace from each kept line — the "linecount"
// comparison.
func lines(b []byte) [][]byte {
	raw := bytes.Split(bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n")), []byte("\n"))
	out := make([][]byte, 0, len(raw))
	for _, l := range raw {
		out = append(out, bytes.TrimRight(l, " \t\r"))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func equalTokenSeq(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Standard performs whitespace-tolerant token comparison: split both sides
// on any whitespace, compare token sequences for equality.
func Standard(processOutput, judgeOutput []byte, opts grading.CheckerOptions) (grading.CheckerResult, error) {
	passed := equalTokenSeq(tokens(processOutput), tokens(judgeOutput))
	return grading.BoolCheckerResult(passed, opts.PointValue), nil
}

// LineCount compares line by line after trimming trailing whitespace and
// discarding trailing blank lines. A mismatch is reported as a plain
// failure with no feedback or extended feedback.
func LineCount(processOutput, judgeOutput []byte, opts grading.CheckerOptions) (grading.CheckerResult, error) {
	p, j := lines(processOutput), lines(judgeOutput)
	if equalLineSeq(p, j) {
		return grading.CheckerResult{Passed: true, Points: opts.PointValue}, nil
	}
	return grading.CheckerResult{Passed: false, Points: 0}, nil
}

func equalLineSeq(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
