package openai

import (
	"context"
	"errors"
	"math"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"deepseek-telegram-bot/internal/usecase/chat"
)

var (
	ErrEmptyChoices = errors.New("completion returned no choices")
	ErrEmptyContent = errors.New("completion returned empty content")
)

// Client talks to any OpenAI-compatible chat completion endpoint.
type Client struct {
	api *openaiapi.Client
}

func NewClient(token, baseURL string) *Client {
	cfg := openaiapi.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: temperature(req.Temperature),
		Stream:      false,
		Messages:    toAPIMessages(req.Messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	return content, nil
}

// temperature maps 0 to the smallest non-zero float32 because the request
// field is omitempty and a literal zero would be dropped from the payload.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func toAPIMessages(msgs []chat.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}
