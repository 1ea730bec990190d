package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// MirrorKey identifies one list snapshot: the admin session that fetched it
// and the scope of the fetch (a screen, or a screen plus its server-side window).
type MirrorKey struct {
	Session string
	Scope   string
}

func (k MirrorKey) String() string {
	return k.Session + "|" + k.Scope
}

// FetchFunc loads the full collection from the backend
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Mirror holds the last successful list fetch per session and scope.
//
// Every fetch is numbered when it starts. A commit from a fetch older than the
// one already stored is dropped, so a slow response can never overwrite state
// fetched after it.
type Mirror[T any] struct {
	mu      sync.Mutex
	entries map[MirrorKey]*mirrorEntry[T]
	// lastUsed is the last time each session read or loaded anything
	lastUsed map[string]time.Time
	group    singleflight.Group
}

type mirrorEntry[T any] struct {
	issued    uint64
	committed uint64
	records   []T
	loaded    bool
}

func NewMirror[T any]() *Mirror[T] {
	return &Mirror[T]{
		entries:  make(map[MirrorKey]*mirrorEntry[T]),
		lastUsed: make(map[string]time.Time),
	}
}

// Begin reserves the sequence number of a new fetch for key
func (m *Mirror[T]) Begin(key MirrorKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entry(key)
	entry.issued++
	return entry.issued
}

// Commit replaces the snapshot of key with records unless a fetch that began
// later has already committed. It reports whether records were stored.
func (m *Mirror[T]) Commit(key MirrorKey, seq uint64, records []T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := m.entry(key)
	if seq <= entry.committed {
		return false
	}
	entry.committed = seq
	entry.records = append([]T(nil), records...)
	entry.loaded = true
	return true
}

// Snapshot returns a copy of the stored records of key
func (m *Mirror[T]) Snapshot(key MirrorKey) ([]T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.touch(key.Session)
	entry, ok := m.entries[key]
	if !ok || !entry.loaded {
		return nil, false
	}
	return append([]T(nil), entry.records...), true
}

// Load fetches the collection and commits it. Concurrent loads of the same key
// share one backend call.
//
// The shared call runs detached from the caller that started it, so one client
// going away does not fail the others waiting on it. The backend client
// timeout bounds it. Each caller still returns as soon as its own ctx is done.
func (m *Mirror[T]) Load(ctx context.Context, key MirrorKey, fetch FetchFunc[T]) ([]T, error) {
	detached := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key.String(), func() (interface{}, error) {
		seq := m.Begin(key)
		records, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		m.Commit(key, seq, records)
		return nil, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	records, _ := m.Snapshot(key)
	return records, nil
}

// Refresh is Load after a write: any fetch already in flight for key began
// before the write, so it is not joined.
func (m *Mirror[T]) Refresh(ctx context.Context, key MirrorKey, fetch FetchFunc[T]) ([]T, error) {
	m.group.Forget(key.String())
	return m.Load(ctx, key, fetch)
}

// Current returns the stored snapshot, loading it on first use
func (m *Mirror[T]) Current(ctx context.Context, key MirrorKey, fetch FetchFunc[T]) ([]T, error) {
	if records, ok := m.Snapshot(key); ok {
		return records, nil
	}
	return m.Load(ctx, key, fetch)
}

// Find returns the first stored record of key accepted by match
func (m *Mirror[T]) Find(key MirrorKey, match func(T) bool) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	m.touch(key.Session)
	entry, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	for _, record := range entry.records {
		if match(record) {
			return record, true
		}
	}
	return zero, false
}

// FindInSession searches every scope of a session
func (m *Mirror[T]) FindInSession(session string, match func(T) bool) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	m.touch(session)
	for key, entry := range m.entries {
		if key.Session != session {
			continue
		}
		for _, record := range entry.records {
			if match(record) {
				return record, true
			}
		}
	}
	return zero, false
}

// ScopesOf lists the scopes a session has loaded
func (m *Mirror[T]) ScopesOf(session string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var scopes []string
	for key, entry := range m.entries {
		if key.Session == session && entry.loaded {
			scopes = append(scopes, key.Scope)
		}
	}
	return scopes
}

// Drop discards everything a session has mirrored
func (m *Mirror[T]) Drop(session string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropLocked(session)
}

// Expire drops the sessions not used since cutoff and returns how many went
func (m *Mirror[T]) Expire(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for session, used := range m.lastUsed {
		if used.Before(cutoff) {
			m.dropLocked(session)
			expired++
		}
	}
	return expired
}

func (m *Mirror[T]) dropLocked(session string) {
	for key := range m.entries {
		if key.Session == session {
			delete(m.entries, key)
		}
	}
	delete(m.lastUsed, session)
}

func (m *Mirror[T]) touch(session string) {
	m.lastUsed[session] = time.Now()
}

func (m *Mirror[T]) entry(key MirrorKey) *mirrorEntry[T] {
	m.touch(key.Session)
	entry, ok := m.entries[key]
	if !ok {
		entry = &mirrorEntry[T]{}
		m.entries[key] = entry
	}
	return entry
}
