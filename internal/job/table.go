package job

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"
)

// DefaultCapacity is the job-table size used when the configuration
// does not say otherwise.
const DefaultCapacity = 16

// Table is a fixed-capacity registry of jobs, shared between the
// command loop and the signal-handling goroutine. All operations lock
// the table; waiters are woken on every mutation.
type Table struct {
	mu     sync.Mutex
	cond   *sync.Cond
	slots  []*Job
	logger *slog.Logger
}

// New returns an empty table holding at most capacity jobs.
// A nil logger disables mutation diagnostics.
func New(capacity int, logger *slog.Logger) *Table {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &Table{
		slots:  make([]*Job, capacity),
		logger: logger,
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// freeJID returns the smallest job id not currently in use, or 0 if
// the table is full.
func (t *Table) freeJID() int {
	taken := make([]bool, len(t.slots)+1)
	for _, j := range t.slots {
		if j != nil {
			taken[j.ID] = true
		}
	}
	for id := 1; id <= len(t.slots); id++ {
		if !taken[id] {
			return id
		}
	}
	return 0
}

// Add registers a new job in the first empty slot, assigning it the
// smallest free job id. It fails if pid is not a valid process id or
// the table is full.
func (t *Table) Add(pid int, state State, cmdline string) (Job, error) {
	if pid < 1 {
		return Job{}, fmt.Errorf("add job: invalid pid %d", pid)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	jid := t.freeJID()
	if jid == 0 {
		return Job{}, fmt.Errorf("add job: too many jobs (max %d)", len(t.slots))
	}
	for i, slot := range t.slots {
		if slot == nil {
			j := &Job{ID: jid, PID: pid, State: state, Cmdline: cmdline}
			t.slots[i] = j
			t.logger.Info("added job", "jid", j.ID, "pid", j.PID, "cmdline", j.Cmdline)
			t.cond.Broadcast()
			return *j, nil
		}
	}
	return Job{}, fmt.Errorf("add job: no free slot")
}

// Remove clears the slot whose job has the given pid. It reports
// whether a job was removed.
func (t *Table) Remove(pid int) bool {
	if pid < 1 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, j := range t.slots {
		if j != nil && j.PID == pid {
			t.logger.Info("removed job", "jid", j.ID, "pid", j.PID)
			t.slots[i] = nil
			t.cond.Broadcast()
			return true
		}
	}
	return false
}

// SetState updates the state of the job with the given pid. It reports
// whether the job was found.
func (t *Table) SetState(pid int, state State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, j := range t.slots {
		if j != nil && j.PID == pid {
			t.logger.Info("job state change", "jid", j.ID, "pid", j.PID,
				"from", j.State.String(), "to", state.String())
			j.State = state
			t.cond.Broadcast()
			return true
		}
	}
	return false
}

// SetStateIf updates the state of the job with the given pid only if
// it currently has state from. It reports whether the transition was
// made. The check and the update happen under one lock acquisition, so
// a state set by another goroutine in between cannot be overwritten.
func (t *Table) SetStateIf(pid int, from, to State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, j := range t.slots {
		if j != nil && j.PID == pid {
			if j.State != from {
				return false
			}
			t.logger.Info("job state change", "jid", j.ID, "pid", j.PID,
				"from", j.State.String(), "to", to.String())
			j.State = to
			t.cond.Broadcast()
			return true
		}
	}
	return false
}

// FindByPID returns a snapshot of the job with the given pid.
func (t *Table) FindByPID(pid int) (Job, bool) {
	if pid < 1 {
		return Job{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, j := range t.slots {
		if j != nil && j.PID == pid {
			return *j, true
		}
	}
	return Job{}, false
}

// FindByJID returns a snapshot of the job with the given job id.
func (t *Table) FindByJID(jid int) (Job, bool) {
	if jid < 1 {
		return Job{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, j := range t.slots {
		if j != nil && j.ID == jid {
			return *j, true
		}
	}
	return Job{}, false
}

// ForegroundPID returns the pid of the foreground job, or 0 if no job
// is running in the foreground.
func (t *Table) ForegroundPID() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, j := range t.slots {
		if j != nil && j.State == Foreground {
			return j.PID
		}
	}
	return 0
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, j := range t.slots {
		if j != nil {
			n++
		}
	}
	return n
}

// Jobs returns the occupied slots in slot order. The sequence is a
// snapshot; ranging over it again re-reads the table.
func (t *Table) Jobs() iter.Seq[Job] {
	return func(yield func(Job) bool) {
		t.mu.Lock()
		snap := make([]Job, 0, len(t.slots))
		for _, j := range t.slots {
			if j != nil {
				snap = append(snap, *j)
			}
		}
		t.mu.Unlock()

		for _, j := range snap {
			if !yield(j) {
				return
			}
		}
	}
}

// WaitNotForeground blocks until the job with the given pid is no
// longer running in the foreground: it has been removed (exited or
// killed) or its state has changed (stopped). Returns immediately if
// no such foreground job exists.
func (t *Table) WaitNotForeground(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		var fg *Job
		for _, j := range t.slots {
			if j != nil && j.PID == pid {
				fg = j
				break
			}
		}
		if fg == nil || fg.State != Foreground {
			return
		}
		t.cond.Wait()
	}
}
