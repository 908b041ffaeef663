// Package fifo creates and wires the named pipes the communication grader
// uses to connect a manager process to its user processes, ported from
// dmoj/graders/communication.py:_launch_process.
package fifo

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Pair is one manager<->user-process FIFO pair, named after the
// communication grader's u{i}_to_m / m_to_u{i} convention.
type Pair struct {
	Dir           string
	UserToManager string
	ManagerToUser string
}

// MakePair creates a fresh temp directory under baseDir holding two named
// pipes for process index i.
func MakePair(baseDir string, index int) (*Pair, error) {
	dir, err := os.MkdirTemp(baseDir, "fifo_")
	if err != nil {
		return nil, fmt.Errorf("fifo: mkdtemp: %w", err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return nil, err
	}

	p := &Pair{
		Dir:           dir,
		UserToManager: filepath.Join(dir, fmt.Sprintf("u%d_to_m", index)),
		ManagerToUser: filepath.Join(dir, fmt.Sprintf("m_to_u%d", index)),
	}
	for _, path := range []string{p.UserToManager, p.ManagerToUser} {
		if err := syscall.Mkfifo(path, 0o666); err != nil {
			return nil, fmt.Errorf("fifo: mkfifo %s: %w", path, err)
		}
		if err := os.Chmod(path, 0o666); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Cleanup removes the pair's directory and both FIFOs. Communication.py
// calls shutil.rmtree unconditionally once all processes have exited,
// regardless of the case's outcome; callers should defer this the same way.
func (p *Pair) Cleanup() error {
	return os.RemoveAll(p.Dir)
}
