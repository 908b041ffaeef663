package grading

import (
	"context"
	"os"

	"github.com/vuthanhtrung2010/judge-server/core/grading/contrib"
	"github.com/vuthanhtrung2010/judge-server/core/grading/fifo"
)

// CommunicationConfig is the decoded communication.* problem handler data,
// per dmoj/graders/communication.py's handler_data.
type CommunicationConfig struct {
	ManagerSources     []string
	ManagerLanguage    string
	NumProcesses       int
	ContribType        string // "" defaults to "default"
	ManagerMemoryLimit int64  // KB; 0 means use the environment default
}

// UserProcessLauncher launches one of NumProcesses user binaries with
// pre-opened FIFO descriptors for stdin/stdout, satisfying the
// FD-inheritance requirement documented on core/grading/fifo.
type UserProcessLauncher interface {
	LaunchUser(ctx context.Context, index int, stdin, stdout *os.File, wallTimeLimit, timeLimit float64, memoryLimit int64) (*LaunchOutcome, error)
}

// ManagerHandle is an in-flight manager process. Wait blocks until it
// exits and returns its outcome — the one blocking "suspension point" of
// §5, which must happen only after every user process has been started.
type ManagerHandle interface {
	Wait(ctx context.Context) (*LaunchOutcome, error)
}

// ManagerLauncher starts the communication manager process, wired to one
// FIFO pair per user process plus the case's input on its stdin. Start
// must not block on the manager exiting: dmoj/graders/communication.py's
// _launch_process calls .launch(...) on the manager (non-blocking) before
// opening any user FIFO, then only .communicate()s on it in
// _interact_with_process once every user process is running — a manager
// that opens its FIFO argv paths on startup would otherwise deadlock
// waiting for a user peer the grader hasn't started yet.
type ManagerLauncher interface {
	StartManager(ctx context.Context, args []string, input []byte, timeLimit float64, memoryLimit int64) (ManagerHandle, error)
}

// CommunicationGrader implements §4.F: a FIFO-coordinated manager plus N
// user processes, merged into one Result and judged by the manager's own
// exit status through a contrib module. Ported from
// dmoj/graders/communication.py.
type CommunicationGrader struct {
	Config  CommunicationConfig
	Users   UserProcessLauncher
	Manager ManagerLauncher
	BaseDir string // parent directory for per-case fifo_ temp dirs
}

// buildManagerArgs alternates fifo paths u_to_m/m_to_u per process index,
// matching communication.py's manager_args construction.
func (g *CommunicationGrader) buildManagerArgs(pairs []*fifo.Pair) []string {
	args := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p.UserToManager, p.ManagerToUser)
	}
	return args
}

func numProcesses(cfg CommunicationConfig) int {
	if cfg.NumProcesses < 1 {
		return 1
	}
	return cfg.NumProcesses
}

// GradeCase runs one communication case: create one FIFO pair per user
// process, launch the manager, then each user process in turn with
// pre-opened descriptors (closing the parent's copies immediately after
// each launch), merge every user outcome into one Result, then judge by
// the manager's own exit status — unless a sticky flag or the aggregate
// time-limit check already decided the verdict.
func (g *CommunicationGrader) GradeCase(ctx context.Context, tc TestCase, problemTimeLimit float64) (*Result, error) {
	n := numProcesses(g.Config)

	pairs := make([]*fifo.Pair, n)
	for i := 0; i < n; i++ {
		p, err := fifo.MakePair(g.BaseDir, i)
		if err != nil {
			return nil, err
		}
		pairs[i] = p
	}
	defer func() {
		for _, p := range pairs {
			p.Cleanup()
		}
	}()

	managerTimeLimit := float64(n) * (problemTimeLimit + 1.0)
	handle, err := g.Manager.StartManager(ctx, g.buildManagerArgs(pairs), tc.InputData, managerTimeLimit, g.Config.ManagerMemoryLimit)
	if err != nil {
		return nil, err
	}

	merged := NewResult(tc.Points)
	for i, p := range pairs {
		stdin, stdout, err := fifo.OpenUserStdio(p)
		if err != nil {
			return nil, err
		}
		outcome, err := g.Users.LaunchUser(ctx, i, stdin, stdout, tc.Config.WallTimeFactor*problemTimeLimit, problemTimeLimit, 0)
		stdin.Close()
		stdout.Close()
		if err != nil {
			return nil, err
		}
		merged.Merge(&Result{
			ExecutionTime: outcome.ExecutionTime,
			WallClockTime: outcome.WallClockTime,
			MaxMemory:     outcome.MaxMemory,
			ResultFlag:    outcome.ResultFlag,
		})
	}

	managerOutcome, err := handle.Wait(ctx)
	if err != nil {
		return nil, err
	}

	merged.ProcOutput = managerOutcome.Stdout
	if merged.ExecutionTime > problemTimeLimit {
		merged.ResultFlag |= FlagTLE
	}

	if merged.ResultFlag != 0 {
		return merged, nil
	}

	module, err := contrib.Lookup(g.Config.ContribType)
	if err != nil {
		return nil, err
	}
	checkerResult, err := module.ParseReturnCode(ParseReturnCodeInput{
		ExitCode:         managerOutcome.ExitCode,
		PointValue:       tc.Points,
		TimeLimit:        problemTimeLimit,
		MemoryLimit:      g.Config.ManagerMemoryLimit,
		Feedback:         string(managerOutcome.Stdout),
		ExtendedFeedback: string(managerOutcome.Stderr),
		Name:             "manager",
	})
	if err != nil {
		return nil, err
	}

	applyCheckerResult(merged, checkerResult)
	return merged, nil
}
