package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"PAIBot/internal/assessment"
	"PAIBot/internal/config"
)

// Provider is a named inference backend.
type Provider interface {
	assessment.Inferencer
	Name() string
}

// Fallback tries providers in order and returns the first successful output.
// Output is never inspected here; a malformed answer from the first provider
// is returned as is.
type Fallback struct {
	providers []Provider
	log       *zap.Logger
}

// NewFallback chains providers. At least one is required.
func NewFallback(log *zap.Logger, providers ...Provider) (*Fallback, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("fallback: no providers")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fallback{providers: providers, log: log}, nil
}

// Name lists the chained providers.
func (f *Fallback) Name() string {
	name := ""
	for i, p := range f.providers {
		if i > 0 {
			name += ">"
		}
		name += p.Name()
	}
	return name
}

// Infer implements assessment.Inferencer.
func (f *Fallback) Infer(ctx context.Context, req assessment.Request) ([]byte, error) {
	var errs []error
	for i, p := range f.providers {
		raw, err := p.Infer(ctx, req)
		if err == nil {
			return raw, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		if ctx.Err() != nil {
			break
		}
		if i < len(f.providers)-1 {
			f.log.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("next", f.providers[i+1].Name()),
				zap.Error(err))
		}
	}
	return nil, errors.Join(errs...)
}

// FromConfig builds the configured provider, chained with its fallback if any.
func FromConfig(ctx context.Context, in config.Inference, log *zap.Logger) (Provider, error) {
	primary, err := newProvider(ctx, in, log)
	if err != nil {
		return nil, err
	}
	if in.Fallback == nil {
		return primary, nil
	}
	secondary, err := newProvider(ctx, *in.Fallback, log)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	return NewFallback(log, primary, secondary)
}

func newProvider(ctx context.Context, in config.Inference, log *zap.Logger) (Provider, error) {
	opts := Options{
		APIKey:      in.APIKey,
		BaseURL:     in.BaseURL,
		Model:       in.Model,
		Temperature: in.Temperature,
		Timeout:     in.Timeout,
		Logger:      log,
	}
	switch in.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(opts)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown inference provider %q", in.Provider)
	}
}
