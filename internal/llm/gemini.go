package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"PAIBot/internal/assessment"
	"PAIBot/internal/model"
)

// GeminiClient calls the native Gemini GenerateContent API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *zap.Logger
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, opts Options) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}
	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		log:         opts.logger(),
	}, nil
}

// Name identifies the provider in logs and metrics.
func (c *GeminiClient) Name() string { return "gemini:" + c.model }

// Infer implements assessment.Inferencer.
func (c *GeminiClient) Infer(ctx context.Context, req assessment.Request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    GeminiSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) > 0 {
		c.log.Debug("gemini response",
			zap.String("model", c.model),
			zap.String("finish_reason", string(resp.Candidates[0].FinishReason)))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty content")
	}
	return []byte(text), nil
}
