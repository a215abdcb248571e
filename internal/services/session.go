package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-cart-service/internal/cart"
	"github.com/aaravmahajanofficial/storefront-cart-service/internal/models"
)

// cartSession is one customer's cart state. All fields behind mu; every
// operation locks the session for its full duration, which preserves the
// single-writer discipline the ledger expects.
type cartSession struct {
	id string

	mu       sync.Mutex
	ledger   *cart.Ledger
	discount *models.Discount

	// Debounce-by-disable flags for the two async actions.
	validating bool
	submitting bool

	// epoch increments whenever the cart is cleared. An async result that
	// started under an older epoch is stale and must not apply.
	epoch uint64

	lastSeen time.Time
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*cartSession
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*cartSession),
		ttl:      ttl,
	}
}

// get returns the session for id, creating it on first use. Sessions are
// identified by the opaque X-Session-ID token the handler layer issues.
func (s *SessionStore) get(id string) *cartSession {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if ok {
		sess.mu.Lock()
		sess.lastSeen = time.Now()
		sess.mu.Unlock()

		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	sess = &cartSession{
		id:       id,
		ledger:   cart.NewLedger(),
		lastSeen: time.Now(),
	}
	s.sessions[id] = sess

	return sess
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// StartJanitor evicts idle sessions until ctx is cancelled.
func (s *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle()
			}
		}
	}()
}

func (s *SessionStore) evictIdle() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0

	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff) && !sess.submitting && !sess.validating
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)

			evicted++
		}
	}

	if evicted > 0 {
		slog.Info("Evicted idle cart sessions", slog.Int("count", evicted))
	}
}
