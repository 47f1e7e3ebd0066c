package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/teemow/fathom-mcp/internal/instrumentation"
)

// sessionHeader is the streamable HTTP transport's session identifier.
const sessionHeader = "Mcp-Session-Id"

// sessionInfo tracks session metadata for cleanup
type sessionInfo struct {
	lastAccess time.Time
}

// SessionTracker keeps a count of active MCP sessions seen on the HTTP
// transport, feeding the active session gauge. Sessions idle past the
// timeout are expired by a background sweep.
type SessionTracker struct {
	sessions       map[string]*sessionInfo
	mu             sync.Mutex
	cleanupTicker  *time.Ticker
	cleanupDone    chan bool
	sessionTimeout time.Duration
	logger         *slog.Logger
	metrics        *instrumentation.Metrics
}

// NewSessionTracker creates a session tracker with the default timeout of
// 24 hours. metrics may be nil, in which case only counts are kept.
func NewSessionTracker(metrics *instrumentation.Metrics) *SessionTracker {
	return NewSessionTrackerWithTimeout(24*time.Hour, slog.Default(), metrics)
}

// NewSessionTrackerWithTimeout creates a session tracker with a custom idle
// timeout and logger.
func NewSessionTrackerWithTimeout(timeout time.Duration, logger *slog.Logger, metrics *instrumentation.Metrics) *SessionTracker {
	if logger == nil {
		logger = slog.Default()
	}

	t := &SessionTracker{
		sessions:       make(map[string]*sessionInfo),
		cleanupTicker:  time.NewTicker(10 * time.Minute),
		cleanupDone:    make(chan bool),
		sessionTimeout: timeout,
		logger:         logger,
		metrics:        metrics,
	}

	go t.cleanupExpiredSessions()

	return t
}

// Touch records activity for a session, registering it on first sight.
func (t *SessionTracker) Touch(sessionID string) {
	if sessionID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if info, ok := t.sessions[sessionID]; ok {
		info.lastAccess = time.Now()
		return
	}

	t.sessions[sessionID] = &sessionInfo{lastAccess: time.Now()}
	if t.metrics != nil {
		t.metrics.IncrementActiveSessions(context.Background())
	}
}

// Remove drops a session, decrementing the gauge if it was tracked.
func (t *SessionTracker) Remove(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[sessionID]; !ok {
		return
	}
	delete(t.sessions, sessionID)
	if t.metrics != nil {
		t.metrics.DecrementActiveSessions(context.Background())
	}
}

// ActiveSessions returns the number of currently tracked sessions.
func (t *SessionTracker) ActiveSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Middleware tracks the session header of each request before passing it on.
func (t *SessionTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Touch(r.Header.Get(sessionHeader))
		next.ServeHTTP(w, r)
	})
}

// cleanupExpiredSessions periodically removes idle sessions
func (t *SessionTracker) cleanupExpiredSessions() {
	for {
		select {
		case <-t.cleanupTicker.C:
			t.mu.Lock()
			now := time.Now()
			expiredCount := 0
			for sessionID, info := range t.sessions {
				if now.Sub(info.lastAccess) > t.sessionTimeout {
					delete(t.sessions, sessionID)
					expiredCount++
					if t.metrics != nil {
						t.metrics.DecrementActiveSessions(context.Background())
					}
				}
			}
			t.mu.Unlock()
			if expiredCount > 0 {
				t.logger.Info("cleaned up expired sessions", "count", expiredCount)
			}
		case <-t.cleanupDone:
			return
		}
	}
}

// Stop halts the cleanup goroutine. Safe to call once.
func (t *SessionTracker) Stop() {
	if t.cleanupTicker != nil {
		t.cleanupTicker.Stop()
	}
	if t.cleanupDone != nil {
		close(t.cleanupDone)
	}
}
