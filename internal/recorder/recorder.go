package recorder

import "PAIBot/internal/model"

// Turn outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeInference = "inference_error"
)

// TurnEvent records one processed conversation turn.
type TurnEvent struct {
	SessionID string
	Stage     model.Stage
	NextStage model.Stage // empty when the turn was rejected
	TurnCount int
	Outcome   string // OutcomeOK, OutcomeMalformed or OutcomeInference
	LatencyMs int64
	Error     string
}

// ResultEvent records a finalized assessment and its recommendations.
type ResultEvent struct {
	SessionID       string
	UserID          string
	Profile         model.Profile
	InvestorType    string
	Recommendations []model.Recommendation
}

// Recorder persists assessment telemetry for later analysis.
type Recorder interface {
	RecordTurn(evt *TurnEvent) error
	RecordResult(evt *ResultEvent) error
	Close() error
}
