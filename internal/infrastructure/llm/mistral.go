package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/time/rate"

	"github.com/labelwise/backend/internal/domain"
)

const (
	// DefaultBaseURL is the Mistral OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.mistral.ai/v1"

	requestTimeout = 60 * time.Second
)

// Client calls a Mistral chat model through its OpenAI-compatible API.
// It makes exactly one completion call per Query.
type Client struct {
	client      openai.Client
	model       string
	rateLimiter *rate.Limiter
}

// NewClient creates a Mistral client. baseURL falls back to the public
// Mistral endpoint when empty.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Free-tier Mistral allows roughly 1 request per second
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:       model,
		rateLimiter: limiter,
	}
}

// Query sends one chat completion request. The instruction becomes the
// system message and the context documents are joined into the user message.
func (c *Client) Query(ctx context.Context, instruction string, contextDocs []domain.Document) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	parts := make([]string, 0, len(contextDocs))
	for _, doc := range contextDocs {
		parts = append(parts, doc.Text)
	}
	userMessage := strings.Join(parts, "\n\n")

	log.Printf("[MODEL] Query to %s with %d context documents", c.model, len(contextDocs))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			openai.UserMessage(userMessage),
		},
		Model:       c.model,
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrModelUnavailable)
	}

	return completion.Choices[0].Message.Content, nil
}
