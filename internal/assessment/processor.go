package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"PAIBot/internal/model"
	"PAIBot/internal/prompts"
)

// Request is the context handed to the inference capability: an instruction
// followed by the conversation, the newest user message last.
type Request struct {
	Instruction string
	Messages    []model.Message
}

// Inferencer turns a conversation into a raw structured result. The returned
// bytes must be the JSON document described by the response schema.
type Inferencer interface {
	Infer(ctx context.Context, req Request) ([]byte, error)
}

// InferFunc adapts a function to Inferencer.
type InferFunc func(ctx context.Context, req Request) ([]byte, error)

func (f InferFunc) Infer(ctx context.Context, req Request) ([]byte, error) { return f(ctx, req) }

// Settings are the advancement hints written into the instruction.
type Settings struct {
	MaxRounds           int
	TurnCeiling         int
	ConfidenceThreshold float64
}

// DefaultSettings returns the stock advancement hints.
func DefaultSettings() Settings {
	return Settings{MaxRounds: 12, TurnCeiling: 10, ConfidenceThreshold: 0.7}
}

// Turn is the input of one conversation cycle.
type Turn struct {
	Message   string
	History   []model.Message
	Stage     model.Stage
	TurnCount int
	Profile   model.PartialProfile
}

// TurnResult is the validated inference result plus the merged profile.
type TurnResult struct {
	Result
	Profile model.Profile
}

// Processor runs one request/response cycle against the inference capability.
type Processor struct {
	inf      Inferencer
	settings Settings
	log      *zap.Logger
}

// NewProcessor creates a Processor. A nil logger disables logging.
func NewProcessor(inf Inferencer, settings Settings, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{inf: inf, settings: settings, log: log}
}

// ProcessTurn builds the inference context, invokes the capability, strictly
// decodes its output and merges the score update. It has no side effects;
// on any error nothing about the turn should be persisted.
func (p *Processor) ProcessTurn(ctx context.Context, turn Turn) (*TurnResult, error) {
	if turn.Stage.Terminal() {
		return nil, ErrSessionComplete
	}
	if !turn.Stage.Valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownStage, turn.Stage)
	}
	if strings.TrimSpace(turn.Message) == "" {
		return nil, ErrEmptyMessage
	}

	req, err := p.BuildRequest(turn)
	if err != nil {
		return nil, err
	}

	raw, err := p.inf.Infer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	res, err := DecodeResult(raw)
	if err != nil {
		p.log.Warn("rejected inference result",
			zap.String("stage", string(turn.Stage)),
			zap.Int("turn", turn.TurnCount),
			zap.Error(err))
		return nil, err
	}

	next, err := Advance(turn.Stage, res.NextStage)
	if err != nil {
		return nil, err
	}
	res.NextStage = next

	p.log.Debug("turn processed",
		zap.String("stage", string(turn.Stage)),
		zap.String("next_stage", string(next)),
		zap.Int("turn", turn.TurnCount))

	return &TurnResult{
		Result:  *res,
		Profile: Merge(turn.Profile, res.ScoresUpdate),
	}, nil
}

// BuildRequest assembles the instruction and message list for a turn.
func (p *Processor) BuildRequest(turn Turn) (Request, error) {
	profileJSON, err := json.MarshalIndent(turn.Profile, "", "  ")
	if err != nil {
		return Request{}, fmt.Errorf("encode profile: %w", err)
	}
	instruction, err := prompts.Assessment(prompts.AssessmentParams{
		Stage:               string(turn.Stage),
		TurnCount:           turn.TurnCount,
		MaxRounds:           p.settings.MaxRounds,
		TurnCeiling:         p.settings.TurnCeiling,
		ConfidenceThreshold: p.settings.ConfidenceThreshold,
		ProfileJSON:         string(profileJSON),
	})
	if err != nil {
		return Request{}, err
	}

	msgs := make([]model.Message, 0, len(turn.History)+1)
	msgs = append(msgs, turn.History...)
	msgs = append(msgs, model.Message{Role: model.RoleUser, Content: turn.Message})

	return Request{Instruction: instruction, Messages: msgs}, nil
}
