package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"tinysh/internal/job"
)

// runExternal launches argv as the leader of a new process group and
// registers it in the job table. Background jobs return right after
// the launch line is printed; foreground jobs block until the child
// exits, is killed, or stops.
func (s *Shell) runExternal(argv []string, cmdline string, background bool) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &unix.SysProcAttr{Setpgid: true}
	cmd.Stdout = s.out
	cmd.Stderr = s.errOut

	if background {
		// Background jobs must not read from the terminal.
		devNull, err := os.Open(os.DevNull)
		if err != nil {
			return fmt.Errorf("opening %s: %w", os.DevNull, err)
		}
		defer devNull.Close()
		cmd.Stdin = devNull
	} else {
		cmd.Stdin = os.Stdin
	}

	// Hold the process lock across start+register so the reaper
	// cannot observe the child before its table entry exists.
	s.procMu.Lock()
	if err := cmd.Start(); err != nil {
		s.procMu.Unlock()
		if isLaunchFailure(err) {
			fmt.Fprintf(s.errOut, "%s: Command not found\n", argv[0])
			return nil
		}
		return err
	}

	pid := cmd.Process.Pid
	state := job.Foreground
	if background {
		state = job.Background
	}
	j, err := s.jobs.Add(pid, state, cmdline)
	s.procMu.Unlock()
	if err != nil {
		return err
	}

	if background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", j.ID, pid, cmdline)
		return nil
	}
	s.waitForeground(pid)
	return nil
}

// isLaunchFailure reports whether err means the executable could not
// be found or invoked, as opposed to the launch machinery itself
// failing.
func isLaunchFailure(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, unix.ENOEXEC)
}

// waitForeground blocks until pid's job is no longer running in the
// foreground. State transitions and status lines are the reaper's
// responsibility; this only waits for them.
func (s *Shell) waitForeground(pid int) {
	if pid < 1 {
		fmt.Fprintln(s.errOut, "waitfg: Invalid PID")
		return
	}
	s.jobs.WaitNotForeground(pid)
}
