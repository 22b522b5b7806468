package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skufu/cardiorisk/internal/view"
)

const sessionCookie = "cardiorisk_session"

type sessionEntry struct {
	ctrl     *view.Controller
	lastSeen time.Time
}

// SessionStore keeps one view controller per browser session in memory.
// Sessions idle for longer than ttl are dropped. At most max sessions are
// held; when full, the least recently seen one is evicted.
type SessionStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	max       int
	now       func() time.Time
	sessions  map[string]*sessionEntry
	lastSweep time.Time
}

func NewSessionStore(ttl time.Duration, max int) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Get returns the controller for id. Unknown, malformed or expired ids get a
// fresh controller under a new id; created reports when that happened.
func (s *SessionStore) Get(id string) (ctrl *view.Controller, sid string, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}

	if _, err := uuid.Parse(id); err == nil {
		if e, ok := s.sessions[id]; ok && now.Sub(e.lastSeen) < s.ttl {
			e.lastSeen = now
			return e.ctrl, id, false
		}
	}

	if s.max > 0 && len(s.sessions) >= s.max {
		s.sweep(now)
		if len(s.sessions) >= s.max {
			s.evictOldest()
		}
	}

	sid = uuid.NewString()
	ctrl = view.NewController()
	s.sessions[sid] = &sessionEntry{ctrl: ctrl, lastSeen: now}
	return ctrl, sid, true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweep(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) >= s.ttl {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *SessionStore) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}
