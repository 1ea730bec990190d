package service

import (
	"sync"
	"time"

	"institute-admin-console/pkg/listview"
)

// CursorStore keeps one list cursor per session and screen so that a changed
// search or filter brings the next request back to page 1.
type CursorStore struct {
	mu      sync.Mutex
	cursors map[MirrorKey]*storedCursor
}

type storedCursor struct {
	cursor listview.Cursor
	usedAt time.Time
}

func NewCursorStore() *CursorStore {
	return &CursorStore{cursors: make(map[MirrorKey]*storedCursor)}
}

func (s *CursorStore) Resolve(session, screen string, q listview.Query) listview.Query {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := MirrorKey{Session: session, Scope: screen}
	stored, ok := s.cursors[key]
	if !ok {
		stored = &storedCursor{}
		s.cursors[key] = stored
	}
	stored.usedAt = time.Now()
	return stored.cursor.Resolve(q)
}

func (s *CursorStore) Drop(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.cursors {
		if key.Session == session {
			delete(s.cursors, key)
		}
	}
}

// Expire drops cursors not resolved since cutoff
func (s *CursorStore) Expire(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for key, stored := range s.cursors {
		if stored.usedAt.Before(cutoff) {
			delete(s.cursors, key)
			expired++
		}
	}
	return expired
}

// SessionState is any per-session state discarded on logout
type SessionState interface {
	Drop(session string)
}
