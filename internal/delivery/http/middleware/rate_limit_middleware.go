package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"institute-admin-console/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultLoginRatePerMinute = 10
	limiterCleanupInterval    = 5 * time.Minute
	limiterIdleThreshold      = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles requests per client IP with a token bucket.
// X-Forwarded-For is only honoured when the direct peer is a trusted proxy.
type RateLimitMiddleware struct {
	log      *logrus.Logger
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	trusted  []*net.IPNet

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewRateLimitMiddleware starts the cleanup of idle limiters. trustedProxies
// holds IPs or CIDRs; invalid entries are logged and skipped. Call Stop
// during shutdown.
func NewRateLimitMiddleware(perMinute int, trustedProxies []string, log *logrus.Logger) *RateLimitMiddleware {
	if perMinute < 1 {
		perMinute = defaultLoginRatePerMinute
	}
	m := &RateLimitMiddleware{
		log:      log,
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		trusted:  parseProxies(trustedProxies, log),
		stopChan: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func parseProxies(entries []string, log *logrus.Logger) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil && ip.To4() != nil {
				entry += "/32"
			} else {
				entry += "/128"
			}
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			log.WithField("proxy", entry).Warn("Ignoring invalid trusted proxy")
			continue
		}
		nets = append(nets, network)
	}
	return nets
}

func (m *RateLimitMiddleware) getLimiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.limiters[ip]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := m.clientIP(r)
		if !m.getLimiter(ip).Allow() {
			m.log.WithField("ip", ip).Warn("Rate limit exceeded")
			response.TooManyRequests(w, "Too many attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the direct peer unless that peer is a trusted proxy. Then the
// forwarded chain is walked from the right and the first untrusted hop wins.
func (m *RateLimitMiddleware) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !m.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !m.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (m *RateLimitMiddleware) isTrusted(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, network := range m.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (m *RateLimitMiddleware) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		m.wg.Wait()
	}
}

func (m *RateLimitMiddleware) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(time.Now())
		case <-m.stopChan:
			return
		}
	}
}

// cleanup forgets clients not seen within the idle threshold
func (m *RateLimitMiddleware) cleanup(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for ip, entry := range m.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleThreshold {
			delete(m.limiters, ip)
			removed++
		}
	}
	if removed > 0 {
		m.log.Debugf("Cleaned up %d idle rate limiters", removed)
	}
}
