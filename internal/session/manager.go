package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL fixes session expiry at creation.
	DefaultTTL = 7 * 24 * time.Hour
	// DefaultTouchAfter is how long a session may go untouched before an
	// otherwise-unchanged request refreshes the backing record. Avoids a
	// store write on every request.
	DefaultTouchAfter = 24 * time.Hour
)

// Options configures a Manager.
type Options struct {
	Secret     string
	TTL        time.Duration
	TouchAfter time.Duration
}

// Manager resolves the session cookie into a server-side record, hands
// it to handlers via the request context, and persists it afterwards
// when it changed or went stale.
type Manager struct {
	store      Store
	codec      *Codec
	ttl        time.Duration
	touchAfter time.Duration
}

func NewManager(store Store, opts Options) *Manager {
	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	touch := opts.TouchAfter
	if touch == 0 {
		touch = DefaultTouchAfter
	}
	return &Manager{
		store:      store,
		codec:      NewCodec(opts.Secret),
		ttl:        ttl,
		touchAfter: touch,
	}
}

func (m *Manager) newSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		LastTouch: now,
	}
}

// Middleware attaches a session to every request. Visitors without a
// valid cookie get a fresh anonymous session, persisted immediately. A
// failing backing store is logged and degraded to an in-memory session;
// it never fails the request.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.resolve(w, r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		m.persist(r.Context(), s)
	})
}

func (m *Manager) resolve(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if id, ok := m.codec.Decode(cookie.Value); ok {
			s, err := m.store.Get(r.Context(), id)
			if err != nil {
				slog.Error("session store lookup failed", "error", err)
			} else if s != nil && !s.expired(time.Now()) {
				return s
			}
		}
	}

	s := m.newSession()
	if err := m.store.Save(r.Context(), s); err != nil {
		slog.Error("session store save failed", "error", err)
	}
	setCookie(w, m.codec.Encode(s.ID), s.ExpiresAt)
	return s
}

func (m *Manager) persist(ctx context.Context, s *Session) {
	now := time.Now()
	if !s.Dirty() && now.Sub(s.LastTouch) < m.touchAfter {
		return
	}
	s.LastTouch = now
	s.dirty = false
	if err := m.store.Save(ctx, s); err != nil {
		slog.Error("session store save failed", "error", err)
	}
}

// Destroy deletes the backing record and restarts the request's session
// as a fresh anonymous one, so a goodbye flash still reaches the next
// page. Used by logout.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	s := FromContext(r.Context())
	if s == nil {
		return
	}
	if err := m.store.Delete(r.Context(), s.ID); err != nil {
		slog.Error("session store delete failed", "error", err)
	}

	now := time.Now()
	s.ID = uuid.NewString()
	s.UserID = ""
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	s.LastTouch = now
	s.Flash = Flash{}
	s.dirty = true
	setCookie(w, m.codec.Encode(s.ID), s.ExpiresAt)
}
