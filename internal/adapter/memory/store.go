package memory

import (
	"sync"

	"deepseek-telegram-bot/internal/domain"
)

type conversation struct {
	mu       sync.Mutex
	messages []domain.Message
}

// Store is a process-lifetime conversation store. The map lock is only held
// to find a user's entry; the entry has its own lock.
type Store struct {
	mu            sync.Mutex
	conversations map[int64]*conversation
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[int64]*conversation),
	}
}

func (s *Store) Reset(userID int64, systemPrompt string) {
	c := s.entry(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []domain.Message{{Role: domain.RoleSystem, Content: systemPrompt}}
}

func (s *Store) Append(userID int64, msg domain.Message) {
	c := s.entry(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (s *Store) Messages(userID int64) []domain.Message {
	s.mu.Lock()
	c, ok := s.conversations[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.messages...)
}

func (s *Store) Exists(userID int64) bool {
	s.mu.Lock()
	c, ok := s.conversations[userID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages) > 0
}

func (s *Store) entry(userID int64) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[userID]
	if !ok {
		c = &conversation{}
		s.conversations[userID] = c
	}
	return c
}
