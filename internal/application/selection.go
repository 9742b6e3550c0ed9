package application

import (
	"sort"
	"sync"

	"github.com/credpanel/credpanel/internal/domain/model"
)

// Selection tracks the set of credential ids a user has picked. It is
// mutated only by user interaction (toggle, select-all, clear) and by the
// post-delete sweep. Entries whose id no longer matches a loaded row are
// inert; Prune removes them when the page renders.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips membership of the given id.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll replaces the selection with the full loaded credential sequence.
func (s *Selection) SelectAll(creds []model.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(creds))
	for _, c := range creds {
		s.ids[c.ID] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// Contains reports whether the id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AllSelected reports whether every loaded credential is selected. The
// comparison is by identity set, not by size: a stale selection of equal
// size but different members does not count as all-selected.
func (s *Selection) AllSelected(loaded []model.Credential) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(loaded) == 0 || len(s.ids) != len(loaded) {
		return false
	}
	for _, c := range loaded {
		if _, ok := s.ids[c.ID]; !ok {
			return false
		}
	}
	return true
}

// Prune drops selected ids that do not correspond to a loaded credential.
func (s *Selection) Prune(loaded []model.Credential) {
	present := make(map[string]struct{}, len(loaded))
	for _, c := range loaded {
		present[c.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ids {
		if _, ok := present[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// SelectionStore hands out per-session selections keyed by an opaque
// session id (the web adapter uses a cookie value). Sessions live in
// memory; a restart simply starts everyone with an empty selection.
type SelectionStore struct {
	mu       sync.Mutex
	sessions map[string]*Selection
}

// NewSelectionStore creates an empty SelectionStore.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{sessions: make(map[string]*Selection)}
}

// Get returns the selection for the session, creating it if absent.
func (st *SelectionStore) Get(sessionID string) *Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	sel, ok := st.sessions[sessionID]
	if !ok {
		sel = NewSelection()
		st.sessions[sessionID] = sel
	}
	return sel
}

// Drop removes the session's selection entirely.
func (st *SelectionStore) Drop(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}
