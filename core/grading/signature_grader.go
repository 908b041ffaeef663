package grading

import "github.com/vuthanhtrung2010/judge-server/core/grading/harness"

// SignatureGrader grades submissions compiled against a grader-supplied
// harness rather than judged purely on stdout, per
// dmoj/graders/signature.py. Compilation happens upstream, in the judge
// client adapter; this type only resolves the source rewrite a
// signature-graded submission needs, then delegates the actual launch ->
// check -> report lifecycle to an embedded StandardGrader, since a
// signature-graded submission is judged the same way as a standard one
// once it has been linked against the harness.
type SignatureGrader struct {
	StandardGrader
	C    *harness.CConfig
	Java *harness.JavaConfig
}

// PrepareSource returns the prologue to prepend to a C/C++ submission and
// the extra compiler defines it needs before compilation, or ("", nil) if
// this submission isn't compiled against a C/C++ harness.
func (g *SignatureGrader) PrepareSource() (prologue string, defines []string) {
	if g.C == nil {
		return "", nil
	}
	return g.C.Rewrite()
}

// JavaEntryPoint returns the class whose main() the JVM should invoke for a
// Java signature-graded submission, or "" if Java isn't configured.
func (g *SignatureGrader) JavaEntryPoint() string {
	if g.Java == nil {
		return ""
	}
	return g.Java.EntryPoint()
}

// JavaAuxSources returns the harness source files that must be compiled
// alongside a Java submission.
func (g *SignatureGrader) JavaAuxSources() []string {
	if g.Java == nil {
		return nil
	}
	return g.Java.AuxSources()
}
