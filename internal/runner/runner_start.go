package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/AvengeMedia/dankimage/internal/errdefs"
	"github.com/AvengeMedia/dankimage/internal/log"
	"github.com/google/uuid"
)

const (
	eventBuffer = 64
	readSize    = 32 * 1024
	drainGrace  = 250 * time.Millisecond
)

// Session is one accepted Start call. Its event channel must be drained: the
// child blocks on a full pipe otherwise.
type Session struct {
	ID        string
	Runner    string
	Script    string
	Args      []string
	Dir       string
	StartedAt time.Time

	events chan Event
}

// Events yields output chunks followed by exactly one terminal event, then closes.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Wait drains the session, passing every chunk to onChunk, and returns the outcome.
func (s *Session) Wait(onChunk func(Event)) Outcome {
	var outcome Outcome
	for ev := range s.events {
		if ev.Done {
			outcome = ev.Outcome
			continue
		}
		if onChunk != nil {
			onChunk(ev)
		}
	}
	return outcome
}

// Start launches scriptPath through the elevation helper. It never waits for
// output or exit. An empty cwd uses the runner's working directory; a non-empty
// one becomes the new working directory.
func (r *Runner) Start(scriptPath string, args []string, cwd string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRunning {
		return nil, errdefs.ErrAlreadyRunning
	}

	dir := cwd
	if dir == "" {
		dir = r.workDir
	}

	name, argv := r.commandLine(scriptPath, args)
	cmd := exec.Command(name, argv...)
	cmd.Dir = dir

	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, errdefs.WrapCustomError(errdefs.ErrTypeSpawnFailed, "failed to create stdout pipe", err)
	}
	stderr, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdout, stdoutW)
		return nil, errdefs.WrapCustomError(errdefs.ErrTypeSpawnFailed, "failed to create stderr pipe", err)
	}
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	err = cmd.Start()
	// The child holds its own copies of the write ends.
	closeAll(stdoutW, stderrW)
	if err != nil {
		closeAll(stdout, stderr)
		log.Error("failed to start script", "runner", r.name, "script", scriptPath, "err", err)
		return nil, errdefs.WrapCustomError(errdefs.ErrTypeSpawnFailed, fmt.Sprintf("failed to start %s", scriptPath), err)
	}

	session := &Session{
		ID:        uuid.NewString(),
		Runner:    r.name,
		Script:    scriptPath,
		Args:      append([]string(nil), args...),
		Dir:       dir,
		StartedAt: time.Now(),
		events:    make(chan Event, eventBuffer),
	}

	r.state = StateRunning
	r.workDir = dir

	log.Info("script started",
		"runner", r.name,
		"run", session.ID,
		"pid", cmd.Process.Pid,
		"cmd", strings.Join(append([]string{name}, RedactArgs(argv)...), " "),
		"dir", dir)

	go r.supervise(cmd, session, stdout, stderr)

	return session, nil
}

func (r *Runner) commandLine(scriptPath string, args []string) (string, []string) {
	if r.elevator == "" {
		return scriptPath, append([]string(nil), args...)
	}
	return r.elevator, append([]string{scriptPath}, args...)
}

func (r *Runner) supervise(cmd *exec.Cmd, s *Session, stdout, stderr *os.File) {
	var wg sync.WaitGroup
	wg.Add(2)
	go r.pump(&wg, s, StreamStdout, stdout)
	go r.pump(&wg, s, StreamStderr, stderr)

	if err := cmd.Wait(); err != nil {
		log.Debug("wait returned", "runner", r.name, "run", s.ID, "err", err)
	}

	outcome := classify(cmd.ProcessState)
	outcome.Duration = time.Since(s.StartedAt)
	outcome.Denied = deniedByElevator(r.elevator, outcome)

	switch {
	case outcome.Crashed:
		log.Warn("script crashed", "runner", r.name, "run", s.ID, "signal", outcome.Signal)
	case outcome.Denied:
		log.Warn("elevation denied", "runner", r.name, "run", s.ID, "elevator", r.elevator, "code", outcome.ExitCode)
	default:
		log.Info("script finished", "runner", r.name, "run", s.ID, "code", outcome.ExitCode, "took", outcome.Duration.Round(time.Millisecond))
	}

	r.finish(outcome)

	// A backgrounded child may still hold the pipes open after the script exits.
	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(drainGrace):
		log.Debug("output still open after exit, closing", "runner", r.name, "run", s.ID)
		closeAll(stdout, stderr)
		<-drained
	}
	closeAll(stdout, stderr)

	s.events <- Event{
		RunID:   s.ID,
		Runner:  s.Runner,
		Done:    true,
		Outcome: outcome,
	}
	close(s.events)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

func (r *Runner) pump(wg *sync.WaitGroup, s *Session, stream Stream, rd io.Reader) {
	defer wg.Done()

	buf := make([]byte, readSize)
	var carry []byte
	for {
		n, err := rd.Read(buf)
		if n > 0 {
			data := append(carry, buf[:n]...)
			var text string
			text, carry = decodeChunk(data, err != nil)
			r.emit(s, stream, text)
		}
		if err != nil {
			if len(carry) > 0 {
				text, _ := decodeChunk(carry, true)
				r.emit(s, stream, text)
			}
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				log.Debug("output stream closed", "runner", r.name, "run", s.ID, "stream", stream, "err", err)
			}
			return
		}
	}
}

func (r *Runner) emit(s *Session, stream Stream, text string) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return
	}
	s.events <- Event{
		RunID:  s.ID,
		Runner: s.Runner,
		Stream: stream,
		Text:   text,
	}
}

// decodeChunk converts data to valid UTF-8. Unless final, an incomplete rune at
// the end is held back and returned as the carry for the next read.
func decodeChunk(data []byte, final bool) (string, []byte) {
	cut := len(data)
	if !final {
		for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
			if !utf8.RuneStart(data[i]) {
				continue
			}
			if !utf8.FullRune(data[i:]) {
				cut = i
			}
			break
		}
	}
	var carry []byte
	if cut < len(data) {
		carry = append([]byte(nil), data[cut:]...)
	}
	return strings.ToValidUTF8(string(data[:cut]), "�"), carry
}
