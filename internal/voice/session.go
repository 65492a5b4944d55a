package voice

import (
	"context"
	"sync"
	"time"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/logging"

	"github.com/google/uuid"
)

// DefaultListenTimeout stops capture when no utterance completes in time.
const DefaultListenTimeout = 10 * time.Second

// Recognizer is the speech capture device of a session. Transcripts flow back
// through Session.HandleInterim, Session.HandleFinal and Session.HandleError.
type Recognizer interface {
	Start() error
	Stop() error
}

// Speaker is a text-to-speech sink.
type Speaker interface {
	Speak(text string)
}

// EventType tags session events.
type EventType string

const (
	EventTranscript     EventType = "transcript"
	EventCommand        EventType = "command"
	EventSecurityCheck  EventType = "security_check"
	EventUnknownCommand EventType = "unknown_command"
	EventStatus         EventType = "status"
	EventError          EventType = "error"
)

// Event is delivered to the session handler and returned from the
// transcript and confirmation entry points.
type Event struct {
	Type       EventType `json:"type"`
	Transcript string    `json:"transcript,omitempty"`
	Final      bool      `json:"final,omitempty"`
	Message    string    `json:"message,omitempty"`
	Command    *Command  `json:"command,omitempty"`
	Result     *Result   `json:"result,omitempty"`
	Listening  bool      `json:"listening"`
}

// Handler receives session events. It is never called with the session lock
// held, so it may call back into the session.
type Handler func(Event)

// SessionDeps are the collaborators of a session. Recognizer, Speaker,
// History and Handler may be nil.
type SessionDeps struct {
	Matcher    *Matcher
	Executor   *Executor
	Recognizer Recognizer
	Speaker    Speaker
	History    *History
	Handler    Handler
	Logger     logging.Logger
}

// Session is the capture state machine of one user: idle or listening, plus
// the confirmation gate and command history.
type Session struct {
	id         string
	userID     string
	matcher    *Matcher
	executor   *Executor
	recognizer Recognizer
	speaker    Speaker
	history    *History
	handler    Handler
	timeout    time.Duration
	currency   string
	logger     logging.Logger

	mu         sync.Mutex
	listening  bool
	generation uint64
	timer      *time.Timer
	gate       GateState
}

// NewSession creates an idle session. A session without a recognizer cannot
// capture speech; this is reported once here and StartCapture returns false
// afterwards. Transcripts can still be fed in directly.
func NewSession(userID string, deps SessionDeps, timeout time.Duration) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}
	history := deps.History
	if history == nil {
		history = NewHistory("", DefaultHistorySize, logger)
	}

	s := &Session{
		id:         uuid.NewString(),
		userID:     userID,
		matcher:    deps.Matcher,
		executor:   deps.Executor,
		recognizer: deps.Recognizer,
		speaker:    deps.Speaker,
		history:    history,
		handler:    deps.Handler,
		timeout:    timeout,
		currency:   deps.Executor.currency,
	}
	s.logger = logger.WithFields(
		logging.F(logging.FieldComponent, "voice.session"),
		logging.F(logging.FieldSessionID, s.id),
		logging.F(logging.FieldUserID, userID),
	)

	if s.recognizer == nil {
		s.logger.Warn("Speech capture unavailable", logging.F(logging.FieldReason, apperror.ErrCaptureUnsupported.Error()))
		s.emit(Event{Type: EventError, Message: apperror.ErrCaptureUnsupported.Error()})
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the owning user.
func (s *Session) UserID() string { return s.userID }

// Supported reports whether speech capture is available.
func (s *Session) Supported() bool { return s.recognizer != nil }

// Listening reports whether capture is active.
func (s *Session) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Pending returns a copy of the command awaiting confirmation, or nil.
func (s *Session) Pending() *PendingCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate.Pending == nil {
		return nil
	}
	p := *s.gate.Pending
	return &p
}

// History returns the recent finalized transcripts, oldest first.
func (s *Session) History() []HistoryEntry {
	return s.history.Entries()
}

// StartCapture moves the session from idle to listening. It returns false
// when capture is unsupported, already running, or the recognizer refuses to
// start. Capture stops by itself after the listen timeout.
func (s *Session) StartCapture() bool {
	s.mu.Lock()
	if s.recognizer == nil || s.listening {
		s.mu.Unlock()
		return false
	}
	if err := s.recognizer.Start(); err != nil {
		s.mu.Unlock()
		s.logger.WithError(err).Error("Error starting speech recognition")
		return false
	}
	s.listening = true
	s.generation++
	gen := s.generation
	s.timer = time.AfterFunc(s.timeout, func() { s.expire(gen) })
	s.mu.Unlock()

	s.logger.Debug("Listening started")
	s.emit(Event{Type: EventStatus, Message: "Listening...", Listening: true})
	return true
}

// StopCapture moves the session back to idle. It returns false when the
// session was not listening.
func (s *Session) StopCapture() bool {
	s.mu.Lock()
	stopped := s.stopLocked()
	s.mu.Unlock()

	if stopped {
		s.emit(Event{Type: EventStatus, Message: "Listening stopped"})
	}
	return stopped
}

// HandleInterim forwards a partial transcript to the handler and returns
// the emitted event.
func (s *Session) HandleInterim(transcript string) Event {
	ev := Event{Type: EventTranscript, Transcript: transcript, Listening: s.Listening()}
	s.emit(ev)
	return ev
}

// HandleFinal ends the current utterance, records the transcript in the
// history and processes it. The returned events are also sent to the handler.
func (s *Session) HandleFinal(ctx context.Context, transcript string) ([]Event, error) {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()

	s.history.Add(transcript, time.Now())
	first := Event{Type: EventTranscript, Transcript: transcript, Final: true}
	s.emit(first)

	events, err := s.Process(ctx, transcript)
	return append([]Event{first}, events...), err
}

// HandleError reports a recognizer failure and returns the session to idle.
func (s *Session) HandleError(code string) Event {
	s.mu.Lock()
	s.listening = false
	s.stopTimerLocked()
	s.mu.Unlock()

	s.logger.Warn("Speech recognition error", logging.F(logging.FieldReason, code))
	ev := Event{Type: EventError, Message: SpeechErrorMessage(code)}
	s.emit(ev)
	return ev
}

// Process matches a transcript and acts on it: unknown phrases produce an
// unknown_command event, destructive commands are parked behind the
// confirmation gate, and everything else runs immediately. Any command that
// is not itself destructive discards a pending confirmation.
func (s *Session) Process(ctx context.Context, transcript string) ([]Event, error) {
	cmd, ok := s.matcher.Match(transcript)
	if !ok {
		ev := Event{Type: EventUnknownCommand, Transcript: transcript, Message: UnknownCommandMessage}
		s.speak(UnknownCommandMessage)
		s.emit(ev)
		return []Event{ev}, nil
	}

	s.mu.Lock()
	next, suspended := s.gate.Intercept(cmd, transcript)
	if s.gate.HasPending() && !suspended {
		s.logger.Info("Discarded pending command", logging.F(logging.FieldCommand, string(s.gate.Pending.Command.Type)))
	}
	s.gate = next
	if cmd.Type == CommandStopListening {
		s.stopLocked()
	}
	listening := s.listening
	s.mu.Unlock()

	if suspended {
		s.logger.Info("Command awaiting confirmation", logging.F(logging.FieldCommand, string(cmd.Type)))
		ev := Event{Type: EventSecurityCheck, Transcript: transcript, Message: SecurityCheckMessage, Command: &cmd, Listening: listening}
		s.speak(SecurityPromptSpoken)
		s.emit(ev)
		return []Event{ev}, nil
	}

	return s.run(ctx, cmd, transcript)
}

// Confirm answers the pending confirmation. On confirm the pending command
// runs and the first result reports whether it did; on cancel the command is
// dropped. Confirming with nothing pending yields ErrNoPendingCommand.
func (s *Session) Confirm(ctx context.Context, confirm bool) (bool, []Event, error) {
	s.mu.Lock()
	hadPending := s.gate.HasPending()
	next, pending := s.gate.Resolve(confirm)
	s.gate = next
	s.mu.Unlock()

	if pending == nil {
		if confirm {
			return false, nil, apperror.ErrNoPendingCommand
		}
		if !hadPending {
			return false, nil, nil
		}
		ev := Event{Type: EventStatus, Message: SecurityCancelMessage, Listening: s.Listening()}
		s.speak(SecurityCancelMessage)
		s.emit(ev)
		return false, []Event{ev}, nil
	}

	events, err := s.run(ctx, pending.Command, pending.Transcript)
	return err == nil, events, err
}

// Close stops capture and the timeout timer.
func (s *Session) Close() {
	s.mu.Lock()
	s.stopLocked()
	s.gate = GateState{}
	s.mu.Unlock()
}

func (s *Session) run(ctx context.Context, cmd Command, transcript string) ([]Event, error) {
	result, err := s.executor.Execute(ctx, s.userID, cmd)
	if err != nil {
		ev := Event{Type: EventError, Transcript: transcript, Message: err.Error(), Command: &cmd, Result: &result, Listening: s.Listening()}
		s.emit(ev)
		return []Event{ev}, err
	}

	ev := Event{
		Type:       EventCommand,
		Transcript: transcript,
		Message:    cmd.ResponseMessage(s.currency),
		Command:    &cmd,
		Result:     &result,
		Listening:  s.Listening(),
	}
	s.speak(result.Message)
	s.emit(ev)
	return []Event{ev}, nil
}

func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	if !s.listening || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.stopLocked()
	s.mu.Unlock()

	s.logger.Debug("Listening timed out")
	s.emit(Event{Type: EventStatus, Message: "Auto-stopped listening. Start capture to try again."})
}

// stopLocked must be called with s.mu held.
func (s *Session) stopLocked() bool {
	if !s.listening {
		return false
	}
	if s.recognizer != nil {
		if err := s.recognizer.Stop(); err != nil {
			s.logger.WithError(err).Warn("Error stopping speech recognition")
		}
	}
	s.listening = false
	s.stopTimerLocked()
	return true
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) emit(ev Event) {
	if s.handler != nil {
		s.handler(ev)
	}
}

func (s *Session) speak(text string) {
	if s.speaker != nil && text != "" {
		s.speaker.Speak(text)
	}
}
