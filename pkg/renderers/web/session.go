package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-survey/pkg/session"
)

// state is everything one browser session keeps between requests. mu
// serialises render passes: a session runs at most one pass at a time.
type state struct {
	mu      sync.Mutex
	id      string
	store   *session.Memory
	widgets *session.WidgetState

	flash      string
	flashError bool

	// lastSeen is guarded by the sessions mutex.
	lastSeen time.Time
}

func (s *state) setFlash(msg string, isError bool) {
	s.flash = msg
	s.flashError = isError
}

func (s *state) popFlash() (string, bool) {
	msg, isError := s.flash, s.flashError
	s.flash, s.flashError = "", false
	return msg, isError
}

// resetWidgets forgets every live widget value so the next pass seeds the
// widgets from the stored answers again.
func (s *state) resetWidgets() {
	for _, key := range s.widgets.Keys() {
		s.widgets.Delete(key)
	}
}

const (
	DefaultSessionTTL  = 2 * time.Hour
	DefaultMaxSessions = 10000
)

// sessions holds the live sessions. Sessions idle for longer than ttl are
// swept when a new one is created; past max the least recently used one is
// evicted.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*state
	ttl  time.Duration
	max  int
	now  func() time.Time
}

func newSessions(ttl time.Duration, max int) *sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &sessions{
		byID: make(map[string]*state),
		ttl:  ttl,
		max:  max,
		now:  time.Now,
	}
}

// get returns the session for id, creating a fresh one under a new id when id
// is unknown or expired. created reports whether a cookie must be issued.
func (s *sessions) get(id string) (st *state, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id != "" {
		if existing, ok := s.byID[id]; ok {
			if now.Sub(existing.lastSeen) <= s.ttl {
				existing.lastSeen = now
				return existing, false
			}
			delete(s.byID, id)
		}
	}

	s.sweep(now)
	st = &state{
		id:       uuid.NewString(),
		store:    session.NewMemory(),
		widgets:  session.NewWidgetState(),
		lastSeen: now,
	}
	s.byID[st.id] = st
	return st, true
}

// sweep drops expired sessions and makes room for one more. Callers hold mu.
func (s *sessions) sweep(now time.Time) {
	for id, st := range s.byID {
		if now.Sub(st.lastSeen) > s.ttl {
			delete(s.byID, id)
		}
	}
	for len(s.byID) >= s.max {
		var (
			oldestID string
			oldest   time.Time
		)
		for id, st := range s.byID {
			if oldestID == "" || st.lastSeen.Before(oldest) {
				oldestID, oldest = id, st.lastSeen
			}
		}
		delete(s.byID, oldestID)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
