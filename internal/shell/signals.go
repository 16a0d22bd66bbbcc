package shell

import (
	"fmt"
	"os/signal"

	"golang.org/x/sys/unix"

	"tinysh/internal/job"
)

// setupSignalHandling subscribes the shell to child-status and
// keyboard signals. A single goroutine consumes the channel, so the
// reaper and the forwarders never interleave with each other.
func (s *Shell) setupSignalHandling() {
	signal.Notify(s.signalChan, unix.SIGINT, unix.SIGTSTP, unix.SIGCHLD)
	go s.handleSignals()
}

func (s *Shell) stopSignalHandling() {
	signal.Stop(s.signalChan)
}

func (s *Shell) handleSignals() {
	for sig := range s.signalChan {
		switch sig {
		case unix.SIGCHLD:
			s.reapChildren()
		case unix.SIGINT:
			s.forwardToForeground(unix.SIGINT)
		case unix.SIGTSTP:
			s.forwardToForeground(unix.SIGTSTP)
		}
	}
}

// reapChildren drains every pending child status change without
// blocking. Children that exited or were killed leave the table;
// stopped and continued children change state.
func (s *Shell) reapChildren() {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			return
		}
		s.handleChildStatus(pid, status)
	}
}

func (s *Shell) handleChildStatus(pid int, status unix.WaitStatus) {
	j, ok := s.jobs.FindByPID(pid)
	if !ok {
		// Registration runs under procMu before any reap, so this
		// is a child we never launched as a job.
		s.logger.Info("reaped child with no job entry", "pid", pid)
		return
	}

	switch {
	case status.Exited():
		s.jobs.Remove(pid)
		if s.config.Verbose {
			fmt.Fprintf(s.out, "Job [%d] (%d) exited with status %d\n", j.ID, pid, status.ExitStatus())
		}
	case status.Signaled():
		fmt.Fprintf(s.out, "Job [%d] (%d) terminated by signal %d\n", j.ID, pid, int(status.Signal()))
		s.jobs.Remove(pid)
	case status.Stopped():
		s.jobs.SetState(pid, job.Stopped)
		fmt.Fprintf(s.out, "Job [%d] (%d) stopped by signal %d\n", j.ID, pid, int(status.StopSignal()))
	case status.Continued():
		// Only a stopped job resumes to the background. If fg already
		// placed the job in the foreground, the continue event must
		// not demote it while the waiter is blocked on that state.
		s.jobs.SetStateIf(pid, job.Stopped, job.Background)
		fmt.Fprintf(s.out, "Job [%d] (%d) continued\n", j.ID, pid)
	}
}

// forwardToForeground relays a keyboard signal to the foreground job's
// whole process group. With no foreground job it does nothing; the
// shell itself is never the target.
func (s *Shell) forwardToForeground(sig unix.Signal) {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	if pid := s.jobs.ForegroundPID(); pid > 0 {
		_ = unix.Kill(-pid, sig)
	}
}
