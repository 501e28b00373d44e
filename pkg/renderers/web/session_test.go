package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSessionsExpireAfterIdleTTL(t *testing.T) {
	clock := newFakeClock()
	store := newSessions(time.Minute, 0)
	store.now = clock.now

	first, created := store.get("")
	require.True(t, created)

	clock.advance(30 * time.Second)
	again, created := store.get(first.id)
	assert.False(t, created)
	assert.Same(t, first, again)

	clock.advance(61 * time.Second)
	fresh, created := store.get(first.id)
	assert.True(t, created)
	assert.NotEqual(t, first.id, fresh.id)
	assert.Equal(t, 1, store.len())
}

func TestSessionsSweepIdleOnCreate(t *testing.T) {
	clock := newFakeClock()
	store := newSessions(time.Minute, 0)
	store.now = clock.now

	for i := 0; i < 5; i++ {
		store.get("")
	}
	require.Equal(t, 5, store.len())

	clock.advance(2 * time.Minute)
	store.get("")
	assert.Equal(t, 1, store.len())
}

func TestSessionsEvictLeastRecentlyUsed(t *testing.T) {
	clock := newFakeClock()
	store := newSessions(time.Hour, 2)
	store.now = clock.now

	a, _ := store.get("")
	clock.advance(time.Second)
	b, _ := store.get("")
	clock.advance(time.Second)
	store.get(a.id)
	clock.advance(time.Second)
	store.get("")

	assert.Equal(t, 2, store.len())
	_, created := store.get(a.id)
	assert.False(t, created)
	_, created = store.get(b.id)
	assert.True(t, created, "least recently used session is evicted")
}

func TestExpiredSessionStartsOver(t *testing.T) {
	clock := newFakeClock()
	srv, _ := newTestServer(t, WithSessionTTL(time.Minute))
	srv.sessions.now = clock.now
	c := newClient(t, srv)
	c.get("/survey")
	c.post(page1("👍", "save"))
	require.Equal(t, "👍", c.answers()["Q1"]["value"])
	before := c.cookies[0].Value

	clock.advance(2 * time.Minute)
	c.get("/survey")
	assert.NotEqual(t, before, c.cookies[0].Value)
	assert.Equal(t, "NA", c.answers()["Q1"]["value"])
}
