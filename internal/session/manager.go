package session

import (
	"sync"

	"geovision-backend/internal/analysis"
	"geovision-backend/internal/assemble"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/locale"
)

// Deps are the shared collaborators every session's controller needs.
type Deps struct {
	Assembler     *assemble.Assembler
	Client        llm.Client
	Repo          analysis.Repo
	Configured    bool
	DefaultLocale locale.Locale
}

// Manager creates and caches sessions keyed by session id. It satisfies the
// resolver interfaces of the inputs and analysis HTTP handlers.
type Manager struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*Session
}

// NewManager constructs a Manager.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for an id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(id, m.deps)
	m.sessions[id] = s
	return s
}

// StoreFor implements inputs.StoreResolver.
func (m *Manager) StoreFor(sessionID string) *inputs.Store {
	return m.Get(sessionID).Inputs
}

// ControllerFor implements part of analysis.SessionResolver.
func (m *Manager) ControllerFor(sessionID string) *analysis.Controller {
	return m.Get(sessionID).Controller
}

// LocaleFor implements part of analysis.SessionResolver.
func (m *Manager) LocaleFor(sessionID string) locale.Locale {
	return m.Get(sessionID).Locale()
}

// ViewFor implements part of analysis.SessionResolver.
func (m *Manager) ViewFor(sessionID string) string {
	return string(m.Get(sessionID).View())
}
