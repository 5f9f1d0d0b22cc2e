package runner

import (
	"sync"
	"time"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
)

// DefaultElevator is the helper every script is wrapped in unless overridden.
const DefaultElevator = "pkexec"

type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// Outcome is the terminal result of one run. ExitCode is -1 and carries no
// meaning when Crashed is set. Denied marks a run the elevation helper
// refused to authorize.
type Outcome struct {
	ExitCode int
	Crashed  bool
	Denied   bool
	Signal   string
	Duration time.Duration
}

// Event is either an output chunk or, when Done is set, the terminal event.
type Event struct {
	RunID   string
	Runner  string
	Stream  Stream
	Text    string
	Done    bool
	Outcome Outcome
}

// Runner owns at most one child process at a time.
type Runner struct {
	name     string
	elevator string

	mu      sync.Mutex
	state   State
	workDir string
	last    *Outcome
}

type Option func(*Runner)

// WithElevator sets the elevation helper. An empty name launches scripts directly.
func WithElevator(name string) Option {
	return func(r *Runner) {
		r.elevator = name
	}
}

func WithWorkingDirectory(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

func New(name string, opts ...Option) *Runner {
	r := &Runner{
		name:     name,
		elevator: DefaultElevator,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Name() string {
	return r.name
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) IsBusy() bool {
	return r.State() == StateRunning
}

// LastOutcome returns the outcome of the most recent completed run.
func (r *Runner) LastOutcome() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Outcome{}, false
	}
	return *r.last, true
}

func (r *Runner) WorkingDirectory() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.workDir
}

func (r *Runner) SetWorkingDirectory(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		return errdefs.ErrAlreadyRunning
	}
	r.workDir = dir
	return nil
}

func (r *Runner) finish(outcome Outcome) {
	r.mu.Lock()
	r.state = StateCompleted
	r.last = &outcome
	r.mu.Unlock()
}
