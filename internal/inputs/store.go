package inputs

import "sync"

// Store holds per-category free text and ordered attachment lists. It is a
// pure state container: no I/O, no errors. Callers that own external
// resources (preview objects) receive removed attachments back and perform
// the release themselves.
type Store struct {
	mu          sync.RWMutex
	texts       map[Category]string
	attachments map[Category][]Attachment
	ids         map[string]Category
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		texts:       make(map[Category]string),
		attachments: make(map[Category][]Attachment),
		ids:         make(map[string]Category),
	}
}

// SetText replaces the text for a category unconditionally.
func (s *Store) SetText(c Category, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[c] = value
}

// Text returns the current text for a category.
func (s *Store) Text(c Category) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts[c]
}

// Add appends attachments to a category in the given order. Attachments whose
// id already exists anywhere in the store are skipped; ids are unique across
// all categories.
func (s *Store) Add(c Category, atts ...Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, att := range atts {
		if _, exists := s.ids[att.ID]; exists {
			continue
		}
		s.attachments[c] = append(s.attachments[c], att)
		s.ids[att.ID] = c
	}
}

// Remove deletes the attachment with the given id from a category, preserving
// the relative order of the remainder. The removed attachment is returned so
// the caller can release anything it owns. A missing id is a no-op.
func (s *Store) Remove(c Category, id string) (Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.attachments[c]
	for i, att := range list {
		if att.ID == id {
			s.attachments[c] = append(list[:i:i], list[i+1:]...)
			delete(s.ids, id)
			return att, true
		}
	}
	return Attachment{}, false
}

// Attachments returns a copy of the ordered attachment list for a category.
func (s *Store) Attachments(c Category) []Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.attachments[c]
	out := make([]Attachment, len(list))
	copy(out, list)
	return out
}

// Find locates an attachment by id across all categories.
func (s *Store) Find(id string) (Attachment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.ids[id]
	if !ok {
		return Attachment{}, false
	}
	for _, att := range s.attachments[c] {
		if att.ID == id {
			return att, true
		}
	}
	return Attachment{}, false
}

// Clear resets all text and attachment state and returns every removed
// attachment so the caller can release owned resources exactly once.
func (s *Store) Clear() []Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []Attachment
	for _, c := range Categories() {
		removed = append(removed, s.attachments[c]...)
	}
	s.texts = make(map[Category]string)
	s.attachments = make(map[Category][]Attachment)
	s.ids = make(map[string]Category)
	return removed
}

// Snapshot returns a deep copy of the current state. Assembly reads a
// snapshot so edits made while a request is in flight cannot mutate it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Texts:       make(map[Category]string, len(s.texts)),
		Attachments: make(map[Category][]Attachment, len(s.attachments)),
	}
	for c, v := range s.texts {
		snap.Texts[c] = v
	}
	for c, list := range s.attachments {
		cp := make([]Attachment, len(list))
		copy(cp, list)
		snap.Attachments[c] = cp
	}
	return snap
}
