package checkers

import "strconv"

// compress truncates long feedback strings for terminal/packet display,
// ported from dmoj/utils/format_feedback.py:compress.
func compress(s string) string {
	if len(s) <= 64 {
		return s
	}
	return s[:30] + "..." + s[len(s)-31:]
}

// englishEnding returns the ordinal suffix for x (1st, 2nd, 3rd, 4th, ...),
// ported from dmoj/utils/format_feedback.py:english_ending.
func englishEnding(x int) string {
	x %= 100
	if x/10 == 1 {
		return "th"
	}
	switch x % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// ordinal renders x with its English ordinal suffix, e.g. "3rd".
func ordinal(x int) string {
	return strconv.Itoa(x) + englishEnding(x)
}
