package infrastructure

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SeenMessages remembers recently handled message ids so the platform's
// at-least-once redeliveries are not answered twice. Entries expire on
// their own; nothing is persisted.
type SeenMessages struct {
	cache *cache.Cache
}

func NewSeenMessages(ttl, cleanupInterval time.Duration) *SeenMessages {
	return &SeenMessages{cache: cache.New(ttl, cleanupInterval)}
}

// FirstSeen records the id and reports whether this is its first
// appearance. Events without an id are always treated as fresh.
func (s *SeenMessages) FirstSeen(messageID string) bool {
	if messageID == "" {
		return true
	}
	if _, found := s.cache.Get(messageID); found {
		return false
	}
	s.cache.Set(messageID, struct{}{}, cache.DefaultExpiration)
	return true
}
