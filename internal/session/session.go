// Package session ties the per-session pieces together: the input store, the
// submission controller, the active presentation view and the locale.
// Sessions live in memory only; closing a session discards its inputs.
package session

import (
	"strings"
	"sync"
	"time"

	"geovision-backend/internal/analysis"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/locale"
)

// View identifies the active presentation surface.
type View string

const (
	ViewDataEntry     View = "dataEntry"
	ViewResults       View = "results"
	ViewHeatmapScript View = "heatmapScript"
)

// ParseView validates a raw view string.
func ParseView(raw string) (View, bool) {
	switch View(strings.TrimSpace(raw)) {
	case ViewDataEntry:
		return ViewDataEntry, true
	case ViewResults:
		return ViewResults, true
	case ViewHeatmapScript:
		return ViewHeatmapScript, true
	}
	return "", false
}

// Session is one client working set.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Inputs     *inputs.Store
	Controller *analysis.Controller

	mu   sync.RWMutex
	loc  locale.Locale
	view View
}

func newSession(id string, deps Deps) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Inputs:    inputs.NewStore(),
		loc:       deps.DefaultLocale,
		view:      ViewDataEntry,
	}
	s.Controller = analysis.NewController(analysis.ControllerConfig{
		SessionID:  id,
		Assembler:  deps.Assembler,
		Client:     deps.Client,
		Repo:       deps.Repo,
		Configured: deps.Configured,
		Snapshot:   s.Inputs.Snapshot,
		Locale:     s.Locale,
		// Submitting always lands the client on the results surface.
		OnSubmit: func() { s.SetView(ViewResults) },
	})
	return s
}

// Locale returns the session language.
func (s *Session) Locale() locale.Locale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// SetLocale changes the session language.
func (s *Session) SetLocale(l locale.Locale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = l
}

// View returns the active presentation view.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView changes the active presentation view.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}
