package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeSubmissionRepository implements only what WorkerProcessor.Process
// touches; every other method panics if called, to catch accidental scope
// creep in the tests below.
type fakeSubmissionRepository struct {
	sub    *Submission
	saved  *SubmissionResult
	status string
}

func (f *fakeSubmissionRepository) AcquirePending(ctx context.Context, id int64) (*Submission, error) {
	return f.sub, nil
}
func (f *fakeSubmissionRepository) SaveResult(ctx context.Context, result SubmissionResult, finalStatus string) error {
	f.saved = &result
	f.status = finalStatus
	return nil
}
func (f *fakeSubmissionRepository) FindByID(ctx context.Context, id int64) (*Submission, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) MarkStatus(ctx context.Context, id int64, status string) error {
	panic("not used")
}
func (f *fakeSubmissionRepository) Create(ctx context.Context, userID, problemID int64, language, sourcePath string) (int64, time.Time, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) Delete(ctx context.Context, id int64) error { panic("not used") }
func (f *fakeSubmissionRepository) FindWithResult(ctx context.Context, id int64) (*SubmissionResultView, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) IncrementRetry(ctx context.Context, id int64) (int, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) CountSolvedProblemsByUser(ctx context.Context, userID int64) (int, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) ListByUser(ctx context.Context, userID int64, problemID *int64, page, perPage int) ([]SubmissionListItem, int, error) {
	panic("not used")
}
func (f *fakeSubmissionRepository) ListByProblem(ctx context.Context, problemID int64, page, perPage int) ([]SubmissionListItem, int, error) {
	panic("not used")
}

type fakeProblemRepository struct {
	detail *ProblemDetail
	cases  []ProblemTestcase
}

func (f *fakeProblemRepository) FindDetail(ctx context.Context, id int64) (*ProblemDetail, error) {
	return f.detail, nil
}
func (f *fakeProblemRepository) ListTestcases(ctx context.Context, id int64) ([]ProblemTestcase, error) {
	return f.cases, nil
}
func (f *fakeProblemRepository) ExistsAndPublic(ctx context.Context, id int64) (bool, error) {
	panic("not used")
}
func (f *fakeProblemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	panic("not used")
}
func (f *fakeProblemRepository) ListPublic(ctx context.Context) ([]ProblemMeta, error) {
	panic("not used")
}
func (f *fakeProblemRepository) FindDetailAdmin(ctx context.Context, id int64) (*ProblemDetail, error) {
	panic("not used")
}
func (f *fakeProblemRepository) CreateWithTestcases(ctx context.Context, input ProblemCreateInput) (int64, error) {
	panic("not used")
}
func (f *fakeProblemRepository) UpdateProblem(ctx context.Context, id int64, input ProblemUpdateInput) error {
	panic("not used")
}
func (f *fakeProblemRepository) AdminList(ctx context.Context, page, perPage int) ([]ProblemAdminListItem, int, error) {
	panic("not used")
}
func (f *fakeProblemRepository) ProblemStats(ctx context.Context, id int64) (*ProblemStats, error) {
	panic("not used")
}

// fakeJudgeClient pretends to compile and run a submission, returning a
// fixed stdout per call rather than actually invoking a sandbox.
type fakeJudgeClient struct {
	compileStatus string
	runStdouts    []string
	runIdx        int
}

func (f *fakeJudgeClient) Compile(ctx context.Context, lang, source string, timeLimitMs, memoryLimitMb int) (*judgeResponse, string, string, error) {
	return &judgeResponse{Status: f.compileStatus, ExitStatus: 0}, "main", "artifact-1", nil
}
func (f *fakeJudgeClient) RunWithArtifact(ctx context.Context, lang, artifactID, stdin string, timeLimitMs, memoryLimitMb int) (*judgeResponse, error) {
	out := ""
	if f.runIdx < len(f.runStdouts) {
		out = f.runStdouts[f.runIdx]
	}
	f.runIdx++
	return &judgeResponse{
		Status:     "Accepted",
		ExitStatus: 0,
		Files:      map[string]string{"stdout": out, "stderr": ""},
	}, nil
}
func (f *fakeJudgeClient) RemoveFiles(ctx context.Context, ids ...string) error { return nil }

func newTestWorkerProcessor(t *testing.T, subRepo SubmissionRepository, problemRepo ProblemRepository, judge JudgeClient) *WorkerProcessor {
	t.Helper()
	return NewWorkerProcessor(subRepo, problemRepo, judge, 5000)
}

func writeSourceFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cpp")
	if err := os.WriteFile(path, []byte("int main(){}"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestWorkerProcessorAcceptsMatchingOutput(t *testing.T) {
	sourcePath := writeSourceFile(t)
	subRepo := &fakeSubmissionRepository{sub: &Submission{ID: 1, ProblemID: 2, Language: "cpp", SourcePath: sourcePath}}
	problemRepo := &fakeProblemRepository{
		detail: &ProblemDetail{ProblemMeta: ProblemMeta{TimeLimitMS: 2000, MemoryLimitKB: 256 * 1024}, CheckerType: "exact"},
		cases:  []ProblemTestcase{{InputText: "1 2\n", OutputText: "3\n"}},
	}
	judge := &fakeJudgeClient{compileStatus: "Accepted", runStdouts: []string{"3\n"}}

	p := newTestWorkerProcessor(t, subRepo, problemRepo, judge)
	verdict, err := p.Process(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != "AC" {
		t.Fatalf("expected AC, got %s", verdict)
	}
	if subRepo.saved == nil || subRepo.saved.Verdict != "AC" {
		t.Fatalf("expected saved result with AC verdict, got %+v", subRepo.saved)
	}
}

func TestWorkerProcessorReportsWrongAnswer(t *testing.T) {
	sourcePath := writeSourceFile(t)
	subRepo := &fakeSubmissionRepository{sub: &Submission{ID: 1, ProblemID: 2, Language: "cpp", SourcePath: sourcePath}}
	problemRepo := &fakeProblemRepository{
		detail: &ProblemDetail{ProblemMeta: ProblemMeta{TimeLimitMS: 2000, MemoryLimitKB: 256 * 1024}, CheckerType: "exact"},
		cases:  []ProblemTestcase{{InputText: "1 2\n", OutputText: "3\n"}},
	}
	judge := &fakeJudgeClient{compileStatus: "Accepted", runStdouts: []string{"4\n"}}

	p := newTestWorkerProcessor(t, subRepo, problemRepo, judge)
	verdict, err := p.Process(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != "WA" {
		t.Fatalf("expected WA, got %s", verdict)
	}
}

func TestWorkerProcessorUsesFloatsCheckerForEpsType(t *testing.T) {
	sourcePath := writeSourceFile(t)
	subRepo := &fakeSubmissionRepository{sub: &Submission{ID: 1, ProblemID: 2, Language: "cpp", SourcePath: sourcePath}}
	problemRepo := &fakeProblemRepository{
		detail: &ProblemDetail{ProblemMeta: ProblemMeta{TimeLimitMS: 2000, MemoryLimitKB: 256 * 1024}, CheckerType: "eps", CheckerEps: 1e-6},
		cases:  []ProblemTestcase{{InputText: "", OutputText: "1.000000\n"}},
	}
	judge := &fakeJudgeClient{compileStatus: "Accepted", runStdouts: []string{"1.0000001\n"}}

	p := newTestWorkerProcessor(t, subRepo, problemRepo, judge)
	verdict, err := p.Process(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != "AC" {
		t.Fatalf("expected AC under epsilon tolerance, got %s", verdict)
	}
}

func TestWorkerProcessorCompileError(t *testing.T) {
	sourcePath := writeSourceFile(t)
	subRepo := &fakeSubmissionRepository{sub: &Submission{ID: 1, ProblemID: 2, Language: "cpp", SourcePath: sourcePath}}
	problemRepo := &fakeProblemRepository{
		detail: &ProblemDetail{ProblemMeta: ProblemMeta{TimeLimitMS: 2000, MemoryLimitKB: 256 * 1024}, CheckerType: "exact"},
		cases:  []ProblemTestcase{{InputText: "", OutputText: "3\n"}},
	}
	judge := &fakeJudgeClient{compileStatus: "Compile Error"}

	p := newTestWorkerProcessor(t, subRepo, problemRepo, judge)
	verdict, err := p.Process(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != "CE" {
		t.Fatalf("expected CE, got %s", verdict)
	}
}

func TestWorkerProcessorNoTestcasesIsSystemError(t *testing.T) {
	sourcePath := writeSourceFile(t)
	subRepo := &fakeSubmissionRepository{sub: &Submission{ID: 1, ProblemID: 2, Language: "cpp", SourcePath: sourcePath}}
	problemRepo := &fakeProblemRepository{
		detail: &ProblemDetail{ProblemMeta: ProblemMeta{TimeLimitMS: 2000, MemoryLimitKB: 256 * 1024}, CheckerType: "exact"},
		cases:  nil,
	}
	judge := &fakeJudgeClient{compileStatus: "Accepted"}

	p := newTestWorkerProcessor(t, subRepo, problemRepo, judge)
	_, err := p.Process(context.Background(), "1")
	if err == nil || !errors.Is(err, errNoTestcases) {
		t.Fatalf("expected errNoTestcases, got %v", err)
	}
}
