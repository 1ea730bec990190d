package service

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrActionInFlight is returned when the entity already has a mutation pending
var ErrActionInFlight = errors.New("another action on this record is still in progress")

// ActionState is the lifecycle of the last mutation dispatched for an entity
type ActionState string

const (
	ActionIdle    ActionState = "idle"
	ActionPending ActionState = "pending"
	ActionSettled ActionState = "settled"
)

const (
	actionCleanupInterval = 5 * time.Minute
	actionStaleThreshold  = 5 * time.Minute
)

// ActionStatus is the tagged state of one entity
type ActionStatus struct {
	State     ActionState
	Err       error
	UpdatedAt time.Time
}

// ActionGuard tracks an in-flight marker per entity so the same record cannot
// receive a second mutation before the first one resolves.
type ActionGuard struct {
	log *logrus.Logger

	mu      sync.Mutex
	actions map[string]*ActionStatus

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewActionGuard starts the background cleanup of settled markers.
// Call Stop during shutdown.
func NewActionGuard(log *logrus.Logger) *ActionGuard {
	g := &ActionGuard{
		log:      log,
		actions:  make(map[string]*ActionStatus),
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.cleanupLoop()

	return g
}

// ActionKey builds an entity key, e.g. ActionKey(session, "consultation", id)
func ActionKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// Acquire moves key to pending. The returned release settles it with the
// outcome of the remote call and must be called exactly once.
func (g *ActionGuard) Acquire(key string) (func(err error), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if status, ok := g.actions[key]; ok && status.State == ActionPending {
		return nil, ErrActionInFlight
	}
	g.actions[key] = &ActionStatus{State: ActionPending, UpdatedAt: time.Now()}

	var once sync.Once
	release := func(err error) {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			g.actions[key] = &ActionStatus{State: ActionSettled, Err: err, UpdatedAt: time.Now()}
		})
	}
	return release, nil
}

// status returns the tagged state of key; unknown keys are idle
func (g *ActionGuard) status(key string) ActionStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	status, ok := g.actions[key]
	if !ok {
		return ActionStatus{State: ActionIdle}
	}
	return *status
}

// Drop forgets every marker whose key starts with the session id
func (g *ActionGuard) Drop(session string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prefix := session + ":"
	for key, status := range g.actions {
		if strings.HasPrefix(key, prefix) && status.State != ActionPending {
			delete(g.actions, key)
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (g *ActionGuard) Stop() {
	if g.stopped.CompareAndSwap(false, true) {
		close(g.stopChan)
		g.wg.Wait()
		g.log.Info("ActionGuard stopped")
	}
}

func (g *ActionGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(actionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.cleanup(time.Now())
		case <-g.stopChan:
			return
		}
	}
}

// cleanup removes settled markers untouched since before the stale threshold
func (g *ActionGuard) cleanup(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for key, status := range g.actions {
		if status.State == ActionSettled && now.Sub(status.UpdatedAt) > actionStaleThreshold {
			delete(g.actions, key)
			removed++
		}
	}
	if removed > 0 {
		g.log.Debugf("Cleaned up %d settled action markers", removed)
	}
}
