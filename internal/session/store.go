package session

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNoActiveSession is returned when a toggle or completion arrives for a
// user with no message currently being tagged (stale or expired keyboard).
var ErrNoActiveSession = errors.New("no active session")

// Snapshot is the immutable result of completing a session: the captured
// text plus every tag whose toggle count was odd. Selected is sorted for
// determinism; callers impose their own presentation order.
type Snapshot struct {
	Text       string
	CapturedAt time.Time
	Selected   []string
}

type state struct {
	text       string
	capturedAt time.Time
	selected   map[string]struct{}
}

// Store holds at most one in-progress tagging session per user. It is safe
// for concurrent use; sessions for different users are fully independent.
type Store struct {
	mu     sync.Mutex
	active map[int64]*state
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		active: make(map[int64]*state),
	}
}

// Begin starts a new session for userID, silently discarding any existing
// one. A second message before Done replaces the first unsaved entry.
func (s *Store) Begin(userID int64, text string, capturedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active[userID] = &state{
		text:       text,
		capturedAt: capturedAt,
		selected:   make(map[string]struct{}),
	}
}

// Toggle flips membership of tagID in the user's current selection and
// returns a copy of the updated selection. Identifiers are treated as
// opaque; the catalog constrains what the keyboard can produce, not what
// the store accepts.
func (s *Store) Toggle(userID int64, tagID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.active[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}

	if _, selected := st.selected[tagID]; selected {
		delete(st.selected, tagID)
	} else {
		st.selected[tagID] = struct{}{}
	}

	return copySelection(st.selected), nil
}

// Selected returns a copy of the user's current selection
func (s *Store) Selected(userID int64) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.active[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}

	return copySelection(st.selected), nil
}

// Complete returns the session snapshot and clears the session in one step.
// A toggle arriving after completion finds no session and fails rather than
// mutating a cleared record.
func (s *Store) Complete(userID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.active[userID]
	if !ok {
		return Snapshot{}, ErrNoActiveSession
	}
	delete(s.active, userID)

	selected := make([]string, 0, len(st.selected))
	for tag := range st.selected {
		selected = append(selected, tag)
	}
	sort.Strings(selected)

	return Snapshot{
		Text:       st.text,
		CapturedAt: st.capturedAt,
		Selected:   selected,
	}, nil
}

// RestoreIfAbsent reinstates a completed session from its snapshot, unless
// the user has already started a new one. Used when the save fails after
// Complete so the user can press Done again; a message that arrived during
// the failed save wins over the old snapshot. Reports whether the snapshot
// was restored.
func (s *Store) RestoreIfAbsent(userID int64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.active[userID]; exists {
		return false
	}

	selected := make(map[string]struct{}, len(snap.Selected))
	for _, tag := range snap.Selected {
		selected[tag] = struct{}{}
	}

	s.active[userID] = &state{
		text:       snap.Text,
		capturedAt: snap.CapturedAt,
		selected:   selected,
	}
	return true
}

func copySelection(selected map[string]struct{}) map[string]bool {
	out := make(map[string]bool, len(selected))
	for tag := range selected {
		out[tag] = true
	}
	return out
}
