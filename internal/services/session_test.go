package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Get(t *testing.T) {
	t.Run("Creates Session On First Use", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		sess := store.get("sess-1")

		require.NotNil(t, sess)
		assert.Equal(t, "sess-1", sess.id)
		assert.True(t, sess.ledger.IsEmpty())
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Returns Same Session For Same ID", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		first := store.get("sess-1")
		second := store.get("sess-1")

		assert.Same(t, first, second)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Distinct IDs Get Distinct Sessions", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		a := store.get("sess-a")
		b := store.get("sess-b")

		assert.NotSame(t, a, b)
		assert.Equal(t, 2, store.Len())
	})
}

func TestSessionStore_EvictIdle(t *testing.T) {
	t.Run("Evicts Sessions Past TTL", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		stale := store.get("stale")
		stale.mu.Lock()
		stale.lastSeen = time.Now().Add(-2 * time.Minute)
		stale.mu.Unlock()

		store.get("fresh")

		store.evictIdle()

		assert.Equal(t, 1, store.Len())
		assert.NotNil(t, store.sessions["fresh"])
		assert.Nil(t, store.sessions["stale"])
	})

	t.Run("Skips Sessions With Work In Flight", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		busy := store.get("busy")
		busy.mu.Lock()
		busy.lastSeen = time.Now().Add(-2 * time.Minute)
		busy.submitting = true
		busy.mu.Unlock()

		store.evictIdle()

		assert.Equal(t, 1, store.Len())
	})

	t.Run("Access Refreshes Last Seen", func(t *testing.T) {
		store := NewSessionStore(time.Minute)

		sess := store.get("sess-1")
		sess.mu.Lock()
		sess.lastSeen = time.Now().Add(-2 * time.Minute)
		sess.mu.Unlock()

		store.get("sess-1")
		store.evictIdle()

		assert.Equal(t, 1, store.Len())
	})
}
