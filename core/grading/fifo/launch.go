package fifo

import (
	"os"
	"os/exec"
)

// OpenUserStdio opens the user process' ends of a FIFO pair: the read end of
// manager-to-user becomes stdin, the write end of user-to-manager becomes
// stdout. Both opens block until the manager side is open, which is why the
// manager must be launched first (communication.py launches the manager,
// then opens each user process' descriptors in turn).
func OpenUserStdio(p *Pair) (stdin, stdout *os.File, err error) {
	stdin, err = os.OpenFile(p.ManagerToUser, os.O_RDONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	stdout, err = os.OpenFile(p.UserToManager, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o666)
	if err != nil {
		stdin.Close()
		return nil, nil, err
	}
	return stdin, stdout, nil
}

// AttachAndClose wires stdin/stdout onto cmd and returns a closer the
// caller must invoke immediately after cmd.Start: fork/exec duplicates the
// descriptors into the child, so the parent's copies must be closed right
// away rather than held open for the lifetime of the case (the FD-
// inheritance note this package exists to satisfy — a generic process
// wrapper that opens stdio lazily can't express "pre-opened descriptor,
// closed in the parent after fork").
func AttachAndClose(cmd *exec.Cmd, stdin, stdout *os.File) func() {
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return func() {
		stdin.Close()
		stdout.Close()
	}
}
