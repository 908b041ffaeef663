package harness

import (
	"strings"
	"testing"
)

func TestCConfigRewriteRenamesMain(t *testing.T) {
	cfg := CConfig{Header: "grader.h"}
	prologue, defines := cfg.Rewrite()
	if !strings.Contains(prologue, `#include "grader.h"`) {
		t.Fatalf("expected header include, got %q", prologue)
	}
	if !strings.Contains(prologue, "#define main main_") {
		t.Fatalf("expected main to be renamed, got %q", prologue)
	}
	if len(defines) != 1 || defines[0] != "-DSIGNATURE_GRADER" {
		t.Fatalf("expected SIGNATURE_GRADER define, got %v", defines)
	}
}

func TestCConfigRewriteAllowsMain(t *testing.T) {
	cfg := CConfig{Header: "grader.h", AllowMain: true}
	prologue, _ := cfg.Rewrite()
	if strings.Contains(prologue, "#define main") {
		t.Fatalf("main should not be renamed when AllowMain is set, got %q", prologue)
	}
}

func TestCConfigRewriteProducesUniqueIdentifiers(t *testing.T) {
	cfg := CConfig{Header: "grader.h"}
	p1, _ := cfg.Rewrite()
	p2, _ := cfg.Rewrite()
	if p1 == p2 {
		t.Fatalf("expected distinct rename macros across calls")
	}
}

func TestJavaConfigEntryPoint(t *testing.T) {
	cfg := JavaConfig{HarnessClass: "Harness", SubmissionClass: "Main"}
	if got := cfg.EntryPoint(); got != "Harness" {
		t.Fatalf("expected the harness to be the entry point, got %q", got)
	}
	cfg.AllowMain = true
	if got := cfg.EntryPoint(); got != "Main" {
		t.Fatalf("expected the submission to be the entry point when AllowMain is set, got %q", got)
	}
}

func TestJavaConfigAuxSources(t *testing.T) {
	cfg := JavaConfig{HarnessSource: "Harness.java"}
	sources := cfg.AuxSources()
	if len(sources) != 1 || sources[0] != "Harness.java" {
		t.Fatalf("expected [Harness.java], got %v", sources)
	}
}
