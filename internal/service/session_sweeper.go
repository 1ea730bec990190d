package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const sessionSweepInterval = 5 * time.Minute

// Expirer is per-session state that can forget sessions idle since a cutoff
type Expirer interface {
	Expire(cutoff time.Time) int
}

// SessionSweeper frees mirrors and cursors of sessions that ended without a
// logout, typically because their Redis key expired.
type SessionSweeper struct {
	log     *logrus.Logger
	idleTTL time.Duration
	stores  []Expirer

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSessionSweeper starts the background sweep. State idle for longer than
// idleTTL is dropped. Call Stop during shutdown.
func NewSessionSweeper(log *logrus.Logger, idleTTL time.Duration, stores ...Expirer) *SessionSweeper {
	s := &SessionSweeper{
		log:      log,
		idleTTL:  idleTTL,
		stores:   stores,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

// Stop ends the sweep goroutine. Safe to call multiple times.
func (s *SessionSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SessionSweeper stopped")
	}
}

func (s *SessionSweeper) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.stopChan:
			return
		}
	}
}

func (s *SessionSweeper) sweep(now time.Time) {
	cutoff := now.Add(-s.idleTTL)
	removed := 0
	for _, store := range s.stores {
		removed += store.Expire(cutoff)
	}
	if removed > 0 {
		s.log.Debugf("Swept %d idle session entries", removed)
	}
}
