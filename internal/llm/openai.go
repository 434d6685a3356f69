package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"PAIBot/internal/assessment"
	"PAIBot/internal/model"
)

// Options configures a provider client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint,
// including Gemini's compatibility layer.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *zap.Logger
}

// NewOpenAIClient creates an OpenAI-compatible client.
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("openai: model is required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		log:         opts.logger(),
	}, nil
}

// Name identifies the provider in logs and metrics.
func (c *OpenAIClient) Name() string { return "openai:" + c.model }

// Infer implements assessment.Inferencer.
func (c *OpenAIClient) Infer(ctx context.Context, req assessment.Request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.Instruction})
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == model.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   SchemaName,
				Schema: Schema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	c.log.Debug("openai response",
		zap.String("model", c.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai returned empty content")
	}
	return []byte(content), nil
}
