package grading

import (
	"strings"
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading/harness"
)

func TestSignatureGraderPrepareSourceNoHarness(t *testing.T) {
	g := &SignatureGrader{}
	prologue, defines := g.PrepareSource()
	if prologue != "" || defines != nil {
		t.Fatalf("expected no rewrite without a C harness, got %q, %v", prologue, defines)
	}
}

func TestSignatureGraderPrepareSourceWithCHarness(t *testing.T) {
	g := &SignatureGrader{C: &harness.CConfig{Header: "grader.h"}}
	prologue, defines := g.PrepareSource()
	if !strings.Contains(prologue, "grader.h") {
		t.Fatalf("expected header in prologue, got %q", prologue)
	}
	if len(defines) != 1 {
		t.Fatalf("expected one compiler define, got %v", defines)
	}
}

func TestSignatureGraderJavaEntryPoint(t *testing.T) {
	g := &SignatureGrader{}
	if g.JavaEntryPoint() != "" {
		t.Fatalf("expected empty entry point without Java config")
	}

	g.Java = &harness.JavaConfig{HarnessClass: "Harness", SubmissionClass: "Main"}
	if g.JavaEntryPoint() != "Harness" {
		t.Fatalf("expected harness entry point, got %q", g.JavaEntryPoint())
	}
	if len(g.JavaAuxSources()) != 1 {
		t.Fatalf("expected one aux source")
	}
}
