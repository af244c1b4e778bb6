package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 2000
	maxAttempts     = 3
)

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// Chat message roles.
const (
	RoleSystem = openai.ChatMessageRoleSystem
	RoleUser   = openai.ChatMessageRoleUser
)

// Completion is the result of a chat completion call.
type Completion struct {
	Text         string
	FinishReason string
	Model        string
}

// Client is a client for the OpenAI chat completions API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a new chat client for the given model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Complete sends the given messages and returns the completion. Transient
// failures are retried up to three times with exponential backoff.
func (c *Client) Complete(ctx context.Context, messages []Message) (Completion, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return Completion{}, fmt.Errorf("no choices returned")
			}
			choice := resp.Choices[0]
			return Completion{
				Text:         choice.Message.Content,
				FinishReason: string(choice.FinishReason),
				Model:        resp.Model,
			}, nil
		}

		lastErr = err
		logger.WarnContext(ctx, "chat completion attempt failed",
			"attempt", attempt, "error", err)

		if attempt < maxAttempts {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return Completion{}, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return Completion{}, fmt.Errorf("failed to get chat completion after %d attempts: %w", maxAttempts, lastErr)
}
