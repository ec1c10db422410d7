package session

import (
	"sync"
	"time"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// Session holds one room's memories and metadata.
type Session struct {
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any

	mu       sync.Mutex
	memories []schema.Memory
}

func newSession(key string) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  map[string]any{},
	}
}

// Add appends a memory to the session.
func (s *Session) Add(m schema.Memory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = append(s.memories, m)
	s.UpdatedAt = time.Now()
}

// Recent returns the last n memories, oldest first. n <= 0 returns all.
func (s *Session) Recent(n int) []schema.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()

	mems := s.memories
	if n > 0 && len(mems) > n {
		mems = mems[len(mems)-n:]
	}
	out := make([]schema.Memory, len(mems))
	copy(out, mems)
	return out
}

// Len returns the number of memories in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memories)
}

// Clear drops every memory.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = nil
	s.UpdatedAt = time.Now()
}
