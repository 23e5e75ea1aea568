package wkhtmltopdf

import (
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// State is the lifecycle position of a conversion.
type State int32

const (
	StateRunning State = iota
	StateExited
	StateErrored
	StateKilled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateErrored:
		return "errored"
	case StateKilled:
		return "killed"
	}
	return "unknown"
}

// diagnosticChunkSize bounds the single stderr read that is classified.
const diagnosticChunkSize = 32 << 10

// Stream is the renderer's stdout, plus the session's error channel.
//
// When an error is emitted on the stream (no callback, or OnError
// listeners registered), Read returns that error in place of io.EOF.
type Stream struct {
	r     io.ReadCloser
	state atomic.Int32

	mu        sync.Mutex
	listeners []func(error)
	emitted   error

	done     chan struct{}
	doneOnce sync.Once
	termErr  error

	reaped chan struct{} // closed once the exit watcher returns
}

func newStream(r io.ReadCloser) *Stream {
	return &Stream{r: r, done: make(chan struct{}), reaped: make(chan struct{})}
}

// Read reads rendered output.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if errors.Is(err, io.EOF) {
		s.mu.Lock()
		emitted := s.emitted
		s.mu.Unlock()
		if emitted != nil {
			return n, emitted
		}
	}
	return n, err
}

// Close closes the reading end. With the shell launcher the renderer's
// pipeline then ends on SIGPIPE.
func (s *Stream) Close() error {
	return s.r.Close()
}

// OnError registers a listener for errors emitted on the stream. Once a
// listener exists, errors are emitted here even when a callback was given.
func (s *Stream) OnError(fn func(error)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Wait blocks until the conversion reaches a terminal state and returns
// the error that was delivered, or nil.
func (s *Stream) Wait() error {
	<-s.done
	return s.termErr
}

// State returns the current lifecycle state.
func (s *Stream) State() State {
	return State(s.state.Load())
}

func (s *Stream) hasListeners() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners) > 0
}

// emit records err for Read and returns the listeners to notify.
func (s *Stream) emit(err error) []func(error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = err
	return slices.Clone(s.listeners)
}

func (s *Stream) finish(err error) {
	s.doneOnce.Do(func() {
		s.termErr = err
		close(s.done)
	})
}

// session owns one renderer process and is the only code allowed to kill it.
type session struct {
	proc   Process
	stream *Stream
	ignore []IgnoreRule
	cb     Callback
	logger *log.Logger

	ready      chan struct{} // closed once the caller holds the stream
	classified chan struct{} // closed once the first stderr chunk is judged
}

func newSession(proc Process, stream *Stream, ignore []IgnoreRule, cb Callback, logger *log.Logger) *session {
	return &session{
		proc:       proc,
		stream:     stream,
		ignore:     ignore,
		cb:         cb,
		logger:     logger,
		ready:      make(chan struct{}),
		classified: make(chan struct{}),
	}
}

// start wires the streams. Delivery waits for markReady so the callback's
// (nil, stream) call always comes first.
func (s *session) start(input string, url bool) {
	go s.feedStdin(input, url)
	go s.monitorStderr()
	go s.watchExit()
}

func (s *session) markReady() { close(s.ready) }

func (s *session) feedStdin(input string, url bool) {
	stdin := s.proc.Stdin()
	if !url {
		if _, err := io.WriteString(stdin, input); err != nil {
			s.logger.Debug("writing stdin", "err", err)
		}
	}
	if err := stdin.Close(); err != nil {
		s.logger.Debug("closing stdin", "err", err)
	}
}

// monitorStderr classifies the first chunk only, then drains the rest so
// the renderer never blocks on a full stderr pipe.
func (s *session) monitorStderr() {
	stderr := s.proc.Stderr()
	defer func() { _ = stderr.Close() }()

	buf := make([]byte, diagnosticChunkSize)
	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			msg := strings.TrimSpace(string(buf[:n]))
			s.handleError(&DiagnosticError{Message: msg})
			break
		}
		if err != nil {
			break
		}
	}
	close(s.classified)

	_, _ = io.Copy(io.Discard, stderr)
}

// watchExit reaps the process. Waiting for the stderr verdict first makes
// the first chunk win over a concurrent exit, and guarantees any kill
// happens before the PID is released.
func (s *session) watchExit() {
	defer close(s.stream.reaped)
	<-s.classified
	err := s.proc.Wait()
	<-s.ready

	if !s.stream.state.CompareAndSwap(int32(StateRunning), int32(StateExited)) {
		return
	}
	s.logger.Debug("renderer exited", "err", err)
	if s.cb != nil {
		s.cb(nil, nil)
	}
	s.stream.finish(nil)
}

// handleError is the single path for launch failures and diagnostics.
// It reports whether the error was delivered (false when ignored).
func (s *session) handleError(err error) bool {
	<-s.ready

	if matchesAny(s.ignore, err.Error()) {
		s.logger.Debug("ignoring diagnostic", "message", err.Error())
		return false
	}
	if !s.stream.state.CompareAndSwap(int32(StateRunning), int32(StateErrored)) {
		return false
	}

	emitOnStream := s.cb == nil || s.stream.hasListeners()
	var listeners []func(error)
	if emitOnStream {
		listeners = s.stream.emit(err)
	}

	if s.proc != nil {
		s.logger.Debug("killing renderer", "err", err)
		if killErr := s.proc.Kill(); killErr != nil {
			s.logger.Warn("killing renderer", "err", killErr)
		}
		s.stream.state.Store(int32(StateKilled))
	}

	if s.cb != nil {
		s.cb(err, nil)
	}
	for _, fn := range listeners {
		fn(err)
	}
	s.stream.finish(err)
	return true
}
