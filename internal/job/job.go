package job

// State describes what a tracked job is currently doing. A job that is
// not in the table has no state at all; there is no "undefined" value.
type State int

const (
	Foreground State = iota
	Background
	Stopped
)

// String returns the label used in jobs listings.
func (s State) String() string {
	switch s {
	case Foreground:
		return "Foreground"
	case Background:
		return "Running"
	case Stopped:
		return "Stopped"
	}
	return "Unknown"
}

// Job is one tracked child process group. PID is the group leader's
// process id, ID the shell-assigned job id, and Cmdline the text the
// user originally typed.
type Job struct {
	ID      int
	PID     int
	State   State
	Cmdline string
}
