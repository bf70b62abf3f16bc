package app

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/applaudhq/applaud/internal/engine"
)

const (
	sessionTTL   = 1 * time.Hour
	sessionSweep = 10 * time.Minute
)

// SessionStore keeps live editor sessions in memory. Evicted or deleted
// sessions are closed so their timers and in-flight requests die with them.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore() *SessionStore {
	c := cache.New(sessionTTL, sessionSweep)
	c.OnEvicted(func(_ string, v interface{}) {
		if s, ok := v.(*engine.Session); ok {
			s.Close()
		}
	})
	return &SessionStore{cache: c}
}

func (st *SessionStore) Save(id string, s *engine.Session) {
	st.cache.Set(id, s, cache.DefaultExpiration)
}

func (st *SessionStore) Get(id string) (*engine.Session, bool) {
	if v, found := st.cache.Get(id); found {
		return v.(*engine.Session), true
	}
	return nil, false
}

func (st *SessionStore) Delete(id string) {
	st.cache.Delete(id)
}
