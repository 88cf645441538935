package auth

import (
	"time"

	"obras/internal/cache"
	"obras/internal/core"

	"github.com/google/uuid"
)

type Session struct {
	Username  string
	Name      string
	CreatedAt time.Time
}

// Sessions is an in-memory session store. Tokens are opaque uuids carried
// in a cookie; entries expire after the configured lifetime and logging
// out deletes them eagerly.
type Sessions struct {
	cache *cache.TTLCache[Session]
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{cache: cache.NewTTL[Session](ttl)}
}

// Create opens a session for a verified user and returns its token.
func (s *Sessions) Create(user core.User) string {
	token := uuid.NewString()
	s.cache.Set(token, Session{
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: time.Now(),
	})
	return token
}

// Get resolves a token; expired or unknown tokens read as absent.
func (s *Sessions) Get(token string) (Session, bool) {
	return s.cache.Get(token)
}

// Delete ends a session.
func (s *Sessions) Delete(token string) {
	s.cache.Delete(token)
}

// CleanExpired implements cache.Cleaner.
func (s *Sessions) CleanExpired() int {
	return s.cache.CleanExpired()
}
