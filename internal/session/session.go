package session

import (
	"context"
	"time"
)

// Flash message categories.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash holds the per-category pending message queues. Messages are
// written during one request and drained by the next page render.
type Flash struct {
	Success []string `bson:"success,omitempty" json:"success,omitempty"`
	Error   []string `bson:"error,omitempty"   json:"error,omitempty"`
}

// Session is the server-side record behind a session cookie. UserID is
// empty for anonymous visitors. ExpiresAt is fixed at creation; only
// LastTouch moves on subsequent saves.
type Session struct {
	ID        string    `bson:"_id"               json:"id"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"        json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"        json:"expires_at"`
	LastTouch time.Time `bson:"last_touch"        json:"last_touch"`
	Flash     Flash     `bson:"flash"             json:"flash"`

	dirty bool
}

// IsAuthenticated reports whether the session belongs to a logged-in user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// SetUser associates the session with a user.
func (s *Session) SetUser(userID string) {
	s.UserID = userID
	s.dirty = true
}

// AddFlash queues a transient message for the next rendered page.
func (s *Session) AddFlash(category, text string) {
	switch category {
	case FlashError:
		s.Flash.Error = append(s.Flash.Error, text)
	default:
		s.Flash.Success = append(s.Flash.Success, text)
	}
	s.dirty = true
}

// PopFlashes drains both queues. At-most-once: a second call returns
// empty slices.
func (s *Session) PopFlashes() (success, errs []string) {
	success, errs = s.Flash.Success, s.Flash.Error
	if len(success) > 0 || len(errs) > 0 {
		s.Flash = Flash{}
		s.dirty = true
	}
	return success, errs
}

// Dirty reports whether the session changed since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type ctxKey struct{}

// NewContext attaches the session to a request context.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, or nil when the manager
// middleware did not run.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
