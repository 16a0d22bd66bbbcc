package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"tinysh/internal/job"
)

func (s *Shell) executeBuiltin(argv []string) (bool, error) {
	switch argv[0] {
	case "quit":
		s.quit()
		return true, nil
	case "jobs":
		s.listJobs()
		return true, nil
	case "bg", "fg":
		s.resumeJob(argv)
		return true, nil
	case "cd":
		return true, s.changeDirectory(argv[1:])
	case "history":
		s.showHistory()
		return true, nil
	case "alias":
		return true, s.setAlias(argv[1:])
	default:
		return false, nil
	}
}

func (s *Shell) quit() {
	s.saveHistory()
	os.Exit(0)
}

func (s *Shell) listJobs() {
	for j := range s.jobs.Jobs() {
		fmt.Fprintf(s.out, "[%d] (%d) %s %s\n", j.ID, j.PID, j.State, j.Cmdline)
	}
}

// resumeJob handles bg and fg: resolve the argument to a job, send its
// process group SIGCONT, then either return with the job running in
// the background (bg) or wait for it to leave the foreground (fg).
func (s *Shell) resumeJob(argv []string) {
	name := argv[0]
	if len(argv) < 2 {
		fmt.Fprintf(s.out, "%s command requires PID or %%jobid argument\n", name)
		return
	}

	var j job.Job
	arg := argv[1]
	if strings.HasPrefix(arg, "%") {
		jid, err := strconv.Atoi(arg[1:])
		if err != nil || jid <= 0 {
			fmt.Fprintf(s.out, "%s: argument must be a positive integer\n", name)
			return
		}
		var ok bool
		if j, ok = s.jobs.FindByJID(jid); !ok {
			fmt.Fprintf(s.out, "%s: No such job\n", arg)
			return
		}
	} else {
		pid, err := strconv.Atoi(arg)
		if err != nil || pid <= 0 {
			fmt.Fprintf(s.out, "%s: argument must be a PID or %%jobid\n", name)
			return
		}
		var ok bool
		if j, ok = s.jobs.FindByPID(pid); !ok {
			fmt.Fprintf(s.out, "(%d): No such process\n", pid)
			return
		}
	}

	// Continue the whole process group. Harmless if already running.
	if err := unix.Kill(-j.PID, unix.SIGCONT); err != nil {
		s.fatalf("kill error: %v", err)
	}

	if name == "bg" {
		s.jobs.SetState(j.PID, job.Background)
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", j.ID, j.PID, j.Cmdline)
		return
	}
	s.jobs.SetState(j.PID, job.Foreground)
	s.waitForeground(j.PID)
}

func (s *Shell) changeDirectory(args []string) error {
	dir := s.config.HomeDir
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

func (s *Shell) showHistory() {
	for i, cmd := range s.history.All() {
		fmt.Fprintf(s.out, "%d: %s\n", i+1, cmd)
	}
}

func (s *Shell) setAlias(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("alias: invalid syntax")
	}
	kv := strings.SplitN(args[0], "=", 2)
	if len(kv) != 2 {
		return fmt.Errorf("alias: invalid syntax")
	}
	s.aliases[kv[0]] = kv[1]
	return nil
}
