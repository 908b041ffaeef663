package core

import (
	"context"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
	"github.com/vuthanhtrung2010/judge-server/core/grading/checkers"
)

// WorkerProcessor consumes submission IDs and runs judge.
type WorkerProcessor struct {
	subRepo            SubmissionRepository
	problemRepo        ProblemRepository
	judge              JudgeClient
	compileTimeLimitMs int
}

const defaultCompileTimeLimitMs = 5000

func NewWorkerProcessor(subRepo SubmissionRepository, problemRepo ProblemRepository, judge JudgeClient, compileTimeLimitMs int) *WorkerProcessor {
	if compileTimeLimitMs <= 0 {
		compileTimeLimitMs = defaultCompileTimeLimitMs
	}
	return &WorkerProcessor{
		subRepo:            subRepo,
		problemRepo:        problemRepo,
		judge:              judge,
		compileTimeLimitMs: compileTimeLimitMs,
	}
}

// Process takes a submission ID (as string from queue) and executes judge pipeline.
// Returns final verdict and a system-level error (non-nil when the job should be retried).
func (p *WorkerProcessor) Process(ctx context.Context, jobID string) (string, error) {
	id, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		return "", err
	}

	sub, err := p.subRepo.AcquirePending(ctx, id)
	if err != nil {
		return "", err
	}

	// Read source
	sourceBytes, err := os.ReadFile(sub.SourcePath)
	if err != nil {
		return "", err
	}

	// Problem limits / checker (fallback to defaults if missing)
	timeLimitMs := 2000
	memoryLimitMb := 256
	checkerType := "exact"
	checkerEps := 0.0
	if detail, err := p.problemRepo.FindDetail(ctx, sub.ProblemID); err == nil {
		if detail.TimeLimitMS > 0 {
			timeLimitMs = int(detail.TimeLimitMS)
		}
		if detail.MemoryLimitKB > 0 {
			// ceil KB -> MB
			memoryLimitMb = int((detail.MemoryLimitKB + 1023) / 1024)
			if memoryLimitMb == 0 {
				memoryLimitMb = 1
			}
		}
		if strings.TrimSpace(detail.CheckerType) != "" {
			checkerType = strings.ToLower(strings.TrimSpace(detail.CheckerType))
			checkerEps = detail.CheckerEps
		}
	}
	tcConfig := checkerConfigFor(checkerType, checkerEps)

	// Compile
	compileRes, _, artifactID, err := p.judge.Compile(ctx, sub.Language, string(sourceBytes), p.compileTimeLimitMs, memoryLimitMb)
	compileStdoutPath, compileStderrPath := "", ""
	if compileRes != nil {
		dir := filepath.Dir(sub.SourcePath)
		if out, ok := compileRes.Files["stdout"]; ok {
			compileStdoutPath, _ = writeFileContent(dir, "compile_stdout.txt", out)
		}
		if errOut, ok := compileRes.Files["stderr"]; ok {
			compileStderrPath, _ = writeFileContent(dir, "compile_stderr.txt", errOut)
		}
	}

	// If compile failed or errored
	if err != nil {
		return "", err
	}
	if compileRes.Status != "Accepted" || compileRes.ExitStatus != 0 {
		result := SubmissionResult{
			SubmissionID: sub.ID,
			Verdict:      "CE",
			StdoutPath:   stringPtrIfNotEmpty(compileStdoutPath),
			StderrPath:   stringPtrIfNotEmpty(compileStderrPath),
		}
		if compileRes != nil {
			if compileRes.Time > 0 {
				t := int32(compileRes.Time / 1_000_000)
				result.TimeMS = &t
			}
			if compileRes.Memory > 0 {
				m := int32(compileRes.Memory / 1024)
				result.MemoryKB = &m
			}
			if compileRes.Error != "" {
				result.ErrorMessage = ptr(compileRes.Error)
			}
		}
		if saveErr := p.subRepo.SaveResult(ctx, result, "failed"); saveErr != nil {
			log.Printf("failed to save compile result for %d: %v", id, saveErr)
		}
		return "CE", nil
	}

	// Run with artifact
	dbCases, err := p.problemRepo.ListTestcases(ctx, sub.ProblemID)
	if err != nil {
		return "", err
	}
	cases, err := buildGradingCases(dbCases, tcConfig)
	if err != nil {
		return "", err
	}

	grader := &grading.StandardGrader{
		Launcher: &judgeProcessLauncher{judge: p.judge, lang: sub.Language, artifactID: artifactID},
		CheckerLookup: func(name string) (grading.Checker, error) {
			return checkers.Lookup(name)
		},
		ShortCircuit: true,
	}
	limits := grading.Limits{
		TimeLimit:   float64(timeLimitMs) / 1000,
		MemoryLimit: int64(memoryLimitMb) * 1024,
	}

	results, gradeErr := grader.GradeSubmission(ctx, grading.Submission{
		ID:          sub.ID,
		ProblemID:   sub.ProblemID,
		Language:    sub.Language,
		TimeLimit:   limits.TimeLimit,
		MemoryLimit: limits.MemoryLimit,
	}, cases, limits)
	if gradeErr != nil {
		return "", gradeErr
	}

	dir := filepath.Dir(sub.SourcePath)
	finalVerdict := "AC"
	finalStatus := "succeeded"
	runStdoutPath, runStderrPath := "", ""
	var finalTimeMS, finalMemKB *int32
	var details []SubmissionJudgeDetail

	for i, r := range results {
		verdict := verdictString(r.ResultFlag)
		detail := SubmissionJudgeDetail{Testcase: strconv.Itoa(i + 1), Status: verdict}

		t := int32(r.ExecutionTime * 1000)
		detail.TimeMS = &t
		if finalTimeMS == nil || t > *finalTimeMS {
			tCopy := t
			finalTimeMS = &tCopy
		}
		m := int32(r.MaxMemory)
		detail.MemoryKB = &m
		if finalMemKB == nil || m > *finalMemKB {
			mCopy := m
			finalMemKB = &mCopy
		}
		details = append(details, detail)

		if verdict != "AC" && finalVerdict == "AC" {
			runStdoutPath, _ = writeFileContent(dir, "run_stdout.txt", string(r.ProcOutput))
			runStderrPath, _ = writeFileContent(dir, "run_stderr.txt", r.ExtendedFeedback)
		}
		if verdict != "AC" {
			finalVerdict = verdict
			finalStatus = "failed"
			break
		}
	}

	result := SubmissionResult{
		SubmissionID: sub.ID,
		Verdict:      finalVerdict,
		StdoutPath:   stringPtrIfNotEmpty(runStdoutPath),
		StderrPath:   stringPtrIfNotEmpty(runStderrPath),
		TimeMS:       finalTimeMS,
		MemoryKB:     finalMemKB,
		Details:      details,
	}

	if saveErr := p.subRepo.SaveResult(ctx, result, finalStatus); saveErr != nil {
		log.Printf("failed to save run result for %d: %v", id, saveErr)
	}

	// Best effort artifact cleanup
	_ = p.judge.RemoveFiles(ctx, artifactID)

	return finalVerdict, nil
}

// checkerConfigFor maps the problem repository's DB-level checker
// selection ("exact"/"eps") onto the grading core's checker registry,
// translating an epsilon into the floats checker's precision digits.
func checkerConfigFor(checkerType string, eps float64) grading.TestCaseConfig {
	if checkerType == "eps" && eps > 0 {
		precision := int(math.Round(-math.Log10(eps)))
		if precision < 0 {
			precision = 0
		}
		return grading.TestCaseConfig{Checker: "floats", Precision: precision, ErrorMode: "absolute"}
	}
	return grading.TestCaseConfig{Checker: "standard"}
}

// buildGradingCases adapts persisted testcases into grading.TestCase values
// sharing one checker configuration, since the DB schema does not (yet)
// carry per-case overrides.
func buildGradingCases(dbCases []ProblemTestcase, cfg grading.TestCaseConfig) ([]grading.TestCase, error) {
	out := make([]grading.TestCase, 0, len(dbCases))
	for _, tc := range dbCases {
		if strings.TrimSpace(tc.OutputText) == "" {
			return nil, errNoTestcaseOutput
		}
		out = append(out, grading.TestCase{
			Points:     1,
			Config:     cfg,
			InputData:  []byte(tc.InputText),
			OutputData: []byte(tc.OutputText),
		})
	}
	if len(out) == 0 {
		return nil, errNoTestcases
	}
	return out, nil
}

var (
	errNoTestcases      = errStr("no testcases defined for problem")
	errNoTestcaseOutput = errStr("testcase output missing; file path fallback disabled")
)

type errStr string

func (e errStr) Error() string { return string(e) }

// judgeProcessLauncher adapts the go-judge HTTP client to
// grading.ProcessLauncher, running the already-compiled artifact against
// one case's input.
type judgeProcessLauncher struct {
	judge      JudgeClient
	lang       string
	artifactID string
}

func (l *judgeProcessLauncher) Launch(ctx context.Context, tc grading.TestCase, limits grading.Limits, input []byte) (*grading.LaunchOutcome, error) {
	timeLimitMs := int(limits.TimeLimit * 1000)
	memoryLimitMb := int((limits.MemoryLimit + 1023) / 1024)
	runRes, err := l.judge.RunWithArtifact(ctx, l.lang, l.artifactID, string(input), timeLimitMs, memoryLimitMb)
	if err != nil {
		return nil, err
	}
	outcome := &grading.LaunchOutcome{ResultFlag: mapResultFlag(runRes)}
	if runRes != nil {
		outcome.Stdout = []byte(runRes.Files["stdout"])
		outcome.Stderr = []byte(runRes.Files["stderr"])
		outcome.ExitCode = runRes.ExitStatus
		outcome.ExecutionTime = float64(runRes.Time) / 1e9
		outcome.WallClockTime = outcome.ExecutionTime
		outcome.MaxMemory = runRes.Memory / 1024
	}
	return outcome, nil
}

// mapResultFlag translates a go-judge response's coarse status string into
// the grading core's sticky result flags.
func mapResultFlag(res *judgeResponse) grading.ResultFlag {
	if res == nil {
		return grading.FlagRTE
	}
	switch res.Status {
	case "Accepted":
		if res.ExitStatus != 0 {
			return grading.FlagRTE
		}
		return 0
	case "Time Limit Exceeded":
		return grading.FlagTLE
	case "Memory Limit Exceeded":
		return grading.FlagMLE
	case "Output Limit Exceeded":
		return grading.FlagOLE
	case "Runtime Error":
		return grading.FlagRTE
	default:
		return grading.FlagRTE
	}
}

// verdictString renders a Result's flag set as the single verdict code the
// submission repository stores, preferring the first sticky flag in the
// controller's stable bit order (§6).
func verdictString(flag grading.ResultFlag) string {
	switch {
	case flag&grading.FlagTLE != 0:
		return "TLE"
	case flag&grading.FlagMLE != 0:
		return "MLE"
	case flag&grading.FlagOLE != 0:
		return "OLE"
	case flag&grading.FlagRTE != 0:
		return "RE"
	case flag&grading.FlagIR != 0:
		return "IR"
	case flag&grading.FlagIE != 0:
		return "IE"
	case flag&grading.FlagSC != 0:
		return "SC"
	case flag&grading.FlagWA != 0:
		return "WA"
	default:
		return "AC"
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
