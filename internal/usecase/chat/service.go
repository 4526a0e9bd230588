package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"deepseek-telegram-bot/internal/config"
	"deepseek-telegram-bot/internal/domain"
)

var (
	ErrEmptyMessage     = errors.New("empty message")
	ErrCompletionFailed = errors.New("completion failed")
)

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
}

type Message struct {
	Role    string
	Content string
}

type Service struct {
	store        domain.ConversationStore
	client       Client
	model        string
	systemPrompt string
	timeout      time.Duration
}

func NewService(store domain.ConversationStore, client Client, cfg config.Config) *Service {
	return &Service{
		store:        store,
		client:       client,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		timeout:      cfg.CompletionTimeout,
	}
}

// Reset replaces the user's history with a lone system message.
func (s *Service) Reset(userID int64) {
	s.store.Reset(userID, s.systemPrompt)
}

func (s *Service) History(userID int64) []domain.Message {
	return s.store.Messages(userID)
}

// Respond records the user's text, asks the model with the full history and
// records the reply. When the completion fails the user message stays in the
// history and no assistant message is added.
func (s *Service) Respond(ctx context.Context, userID int64, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	if !s.store.Exists(userID) {
		s.store.Reset(userID, s.systemPrompt)
	}
	s.store.Append(userID, domain.Message{
		Role:    domain.RoleUser,
		Content: text,
	})

	history := s.store.Messages(userID)
	messages := make([]Message, 0, len(history))
	for _, h := range history {
		messages = append(messages, Message{
			Role:    h.Role,
			Content: h.Content,
		})
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	turnID := uuid.NewString()
	start := time.Now()
	resp, err := s.client.Complete(ctx, CompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		log.Printf("turn %s: completion for user %d failed after %s: %v",
			turnID, userID, time.Since(start).Round(time.Millisecond), err)
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	log.Printf("turn %s: user %d got %d bytes in %s",
		turnID, userID, len(resp), time.Since(start).Round(time.Millisecond))

	s.store.Append(userID, domain.Message{
		Role:    domain.RoleAssistant,
		Content: resp,
	})

	return resp, nil
}
