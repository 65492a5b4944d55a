package voice

import (
	"path/filepath"
	"sync"
	"time"

	"fjacquet/finsight/internal/logging"

	"github.com/google/uuid"
)

// ManagerConfig holds the per-session settings.
type ManagerConfig struct {
	ListenTimeout time.Duration
	HistorySize   int
	// HistoryDir stores one YAML history file per user. Empty keeps
	// history in memory only.
	HistoryDir string
}

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithRecognizerFactory supplies a recognizer for each new session. Without
// one, sessions cannot capture speech and only accept typed transcripts.
func WithRecognizerFactory(factory func(userID string) Recognizer) ManagerOption {
	return func(m *Manager) { m.recognizers = factory }
}

// WithSpeaker sets the text-to-speech sink shared by all sessions.
func WithSpeaker(speaker Speaker) ManagerOption {
	return func(m *Manager) { m.speaker = speaker }
}

// WithEventHandler receives the events of every session.
func WithEventHandler(handler func(userID string, ev Event)) ManagerOption {
	return func(m *Manager) { m.handler = handler }
}

// Manager keeps one Session per user so that concurrent users never share
// capture or confirmation state.
type Manager struct {
	matcher     *Matcher
	executor    *Executor
	cfg         ManagerConfig
	recognizers func(userID string) Recognizer
	speaker     Speaker
	handler     func(userID string, ev Event)
	logger      logging.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager(matcher *Matcher, executor *Executor, cfg ManagerConfig, logger logging.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	m := &Manager{
		matcher:  matcher,
		executor: executor,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the user's session, creating it on first use.
func (m *Manager) Session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	deps := SessionDeps{
		Matcher:  m.matcher,
		Executor: m.executor,
		Speaker:  m.speaker,
		History:  NewHistory(m.historyPath(userID), m.cfg.HistorySize, m.logger),
		Logger:   m.logger,
	}
	if m.recognizers != nil {
		deps.Recognizer = m.recognizers(userID)
	}
	if m.handler != nil {
		deps.Handler = func(ev Event) { m.handler(userID, ev) }
	}

	s := NewSession(userID, deps, m.cfg.ListenTimeout)
	m.sessions[userID] = s
	m.logger.Debug("Created voice session",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldSessionID, s.ID()))
	return s
}

// Lookup returns an existing session without creating one.
func (m *Manager) Lookup(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Close stops and forgets the user's session.
func (m *Manager) Close(userID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

// CloseAll stops every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) historyPath(userID string) string {
	if m.cfg.HistoryDir == "" {
		return ""
	}
	// Name-based UUIDs are distinct for distinct ids and always file-safe.
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("finsight:user:"+userID)).String()
	return filepath.Join(m.cfg.HistoryDir, name+".yaml")
}
