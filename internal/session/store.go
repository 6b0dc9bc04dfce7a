package session

import "context"

// Store persists session records. Get returns (nil, nil) when no record
// exists for the id; expiry handling is the Manager's job, though
// backends are free to reap expired records on their own.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
