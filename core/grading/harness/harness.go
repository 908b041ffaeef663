// Package harness resolves the source rewriting a signature-graded
// submission needs before it can be linked against a grader-supplied
// harness. The signature grader is its only user; the communication grader
// does not call into this package. Ported from
// dmoj/graders/signature.py and the _generate_binary method of
// dmoj/graders/communication.py, which duplicate the same logic.
package harness

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CConfig describes how to rewrite a C/C++ submission so it can be linked
// against a harness that supplies its own main.
type CConfig struct {
	Header    string // header the harness exposes, #include'd verbatim
	AllowMain bool   // if true, the submission's main is left untouched
}

// Rewrite returns the prologue to prepend to the submission source and the
// extra compiler defines, mirroring communication.py/signature.py:
// "#include \"header\"" plus, unless allow_main, "#define main
// main_<random>" so the harness' own main becomes the entry point.
func (c CConfig) Rewrite() (prologue string, defines []string) {
	var b strings.Builder
	fmt.Fprintf(&b, "#include %q\n", c.Header)
	if !c.AllowMain {
		fmt.Fprintf(&b, "#define main main_%s\n", randomIdentifier())
	}
	return b.String(), []string{"-DSIGNATURE_GRADER"}
}

// randomIdentifier produces a hex token suitable for splicing into a C
// identifier, the Go equivalent of Python's uuid.uuid4().hex.
func randomIdentifier() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// JavaConfig describes the JVM side: the harness class becomes an
// additional source file, and the entry point flips between the harness
// and the submission depending on AllowMain.
type JavaConfig struct {
	HarnessSource   string // harness .java source, compiled alongside the submission
	HarnessClass    string // fully qualified harness entry class
	SubmissionClass string // fully qualified submission class
	AllowMain       bool
}

// AuxSources returns the extra source files that must be compiled alongside
// the submission.
func (j JavaConfig) AuxSources() []string {
	return []string{j.HarnessSource}
}

// EntryPoint returns the class whose main() the JVM should invoke.
func (j JavaConfig) EntryPoint() string {
	if j.AllowMain {
		return j.SubmissionClass
	}
	return j.HarnessClass
}
