package bridged

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

// fakeExecutable records the args/stdin it was launched with and returns a
// canned result.
type fakeExecutable struct {
	lastArgs  []string
	lastStdin []byte
	result    *LaunchResult
}

func (f *fakeExecutable) Launch(ctx context.Context, args []string, stdin []byte, limits grading.Limits) (*LaunchResult, error) {
	f.lastArgs = args
	f.lastStdin = stdin
	return f.result, nil
}

type fakeCompiler struct {
	exe   *fakeExecutable
	calls int
}

func (f *fakeCompiler) Compile(ctx context.Context, language string, sources []string, defines []string) (Executable, error) {
	f.calls++
	return f.exe, nil
}

func TestRunnerCheckSplicesArgsForDefaultContrib(t *testing.T) {
	exe := &fakeExecutable{result: &LaunchResult{ExitCode: 0, Stdout: []byte("ok")}}
	runner := &Runner{Compiler: &fakeCompiler{exe: exe}}

	result, err := runner.Check(context.Background(), Spec{ContribType: "default"}, "/tmp/in", "/tmp/out", "/tmp/ans", grading.Limits{}, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Passed || result.Points != 10 {
		t.Fatalf("expected passed with 10 points, got %+v", result)
	}
	wantArgs := []string{"/tmp/in", "/tmp/ans", "/tmp/out"}
	if len(exe.lastArgs) != len(wantArgs) {
		t.Fatalf("args = %v, want %v", exe.lastArgs, wantArgs)
	}
	for i := range wantArgs {
		if exe.lastArgs[i] != wantArgs[i] {
			t.Fatalf("args[%d] = %q, want %q", i, exe.lastArgs[i], wantArgs[i])
		}
	}
}

func TestRunnerCheckThemisUsesStdinDirectories(t *testing.T) {
	outcome := &fakeExecutable{result: &LaunchResult{ExitCode: 0, Stderr: []byte("1.0")}}
	runner := &Runner{Compiler: &fakeCompiler{exe: outcome}}

	_, err := runner.Check(context.Background(), Spec{ContribType: "themis"}, "/tmp/in", "/tmp/out", "/tmp/ans", grading.Limits{}, 10, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.lastArgs != nil {
		t.Fatalf("themis must not receive argv, got %v", outcome.lastArgs)
	}
	want := filepath.Dir("/tmp/out") + "\n" + filepath.Dir("/tmp/ans") + "\n"
	if string(outcome.lastStdin) != want {
		t.Fatalf("stdin = %q, want %q", outcome.lastStdin, want)
	}
}

func TestRunnerCheckUnknownContribFailsBeforeLaunch(t *testing.T) {
	exe := &fakeExecutable{result: &LaunchResult{ExitCode: 0}}
	compiler := &fakeCompiler{exe: exe}
	runner := &Runner{Compiler: compiler}

	_, err := runner.Check(context.Background(), Spec{ContribType: "nonexistent"}, "in", "out", "ans", grading.Limits{}, 10, false)
	if err == nil {
		t.Fatalf("expected an error for an unknown contrib type")
	}
	if compiler.calls != 0 {
		t.Fatalf("compiler should not run before the contrib type is validated")
	}
}

func TestCacheAvoidsRecompilation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "checker.cpp")
	if err := os.WriteFile(src, []byte("int main(){}"), 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}

	exe := &fakeExecutable{result: &LaunchResult{ExitCode: 0}}
	compiler := &fakeCompiler{exe: exe}
	runner := &Runner{Compiler: compiler, Cache: NewCache()}
	spec := Spec{ContribType: "default", Sources: []string{src}}

	if _, err := runner.Check(context.Background(), spec, "in", "out", "ans", grading.Limits{}, 10, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := runner.Check(context.Background(), spec, "in", "out", "ans", grading.Limits{}, 10, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiler.calls != 1 {
		t.Fatalf("expected the second Check to reuse the cached executable, compiler called %d times", compiler.calls)
	}
}
