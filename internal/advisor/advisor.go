// Package advisor runs assessment sessions on top of the turn processor,
// the session store and the recommendation engine.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"PAIBot/internal/assessment"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/metrics"
	"PAIBot/internal/model"
	"PAIBot/internal/recommend"
	"PAIBot/internal/recorder"
	"PAIBot/internal/session"
)

// ErrNotComplete reports a result request for an unfinished assessment.
var ErrNotComplete = errors.New("assessment not complete")

// Service orchestrates assessment sessions.
type Service struct {
	store   session.Store
	proc    *assessment.Processor
	catalog *catalog.Catalog
	rec     recorder.Recorder
	log     *zap.Logger
	locks   *keyedMutex
	results singleflight.Group
	now     func() time.Time
}

// New creates a Service. A nil recorder or logger disables that concern.
func New(store session.Store, proc *assessment.Processor, cat *catalog.Catalog, rec recorder.Recorder, log *zap.Logger) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		proc:    proc,
		catalog: cat,
		rec:     rec,
		log:     log,
		locks:   newKeyedMutex(),
		now:     time.Now,
	}
}

// Started is the outcome of Start.
type Started struct {
	SessionID string      `json:"sessionId"`
	Question  string      `json:"question"`
	Stage     model.Stage `json:"stage"`
	Progress  int         `json:"progress"`
}

// Reply is the outcome of one Chat turn.
type Reply struct {
	Reply      string      `json:"reply"`
	Stage      model.Stage `json:"stage"`
	Progress   int         `json:"progress"`
	IsComplete bool        `json:"isComplete"`
}

// Result is the finalized assessment of a completed session.
type Result struct {
	SessionID       string                 `json:"sessionId"`
	Profile         model.Profile          `json:"profile"`
	InvestorType    string                 `json:"investorType"`
	Summary         string                 `json:"summary"`
	Biases          []model.Bias           `json:"biases"`
	Recommendations []model.Recommendation `json:"recommendations"`
	CompletedAt     *time.Time             `json:"completedAt,omitempty"`
}

// Start creates a session and returns the localized opening question.
func (s *Service) Start(ctx context.Context, userID string, loc i18n.Locale) (*Started, error) {
	question := i18n.For(loc).Opening
	sess, err := s.store.Create(ctx, userID, model.Message{Role: model.RoleAssistant, Content: question})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("session started", zap.String("session_id", sess.ID), zap.String("user_id", sess.UserID))
	return &Started{
		SessionID: sess.ID,
		Question:  question,
		Stage:     sess.Stage,
		Progress:  sess.Progress(),
	}, nil
}

// Chat runs one turn. Turns of the same session are serialized; a failed
// turn leaves the session exactly as it was.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (*Reply, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Complete() {
		metrics.TurnError(metrics.KindComplete, 0)
		return nil, assessment.ErrSessionComplete
	}

	start := s.now()
	res, err := s.proc.ProcessTurn(ctx, assessment.Turn{
		Message:   message,
		History:   sess.History,
		Stage:     sess.Stage,
		TurnCount: sess.TurnCount,
		Profile:   sess.Scores,
	})
	took := s.now().Sub(start)
	if err != nil {
		s.turnFailed(sess, err, took)
		return nil, err
	}

	turns := sess.TurnCount + 1
	history := append(sess.History,
		model.Message{Role: model.RoleUser, Content: message},
		model.Message{Role: model.RoleAssistant, Content: res.NextQuestion})
	scores := res.Profile.Partial()
	update := session.Update{
		Stage:     &res.NextStage,
		TurnCount: &turns,
		History:   history,
		Scores:    &scores,
	}
	complete := res.NextStage.Terminal()
	if complete {
		now := s.now()
		update.CompletedAt = &now
	}
	if err := s.store.Update(ctx, sessionID, update); err != nil {
		metrics.TurnError(metrics.KindInternal, took)
		return nil, fmt.Errorf("save turn: %w", err)
	}

	metrics.Turn(string(sess.Stage), took)
	if complete {
		metrics.Completed()
	}
	s.record(&recorder.TurnEvent{
		SessionID: sessionID,
		Stage:     sess.Stage,
		NextStage: res.NextStage,
		TurnCount: turns,
		Outcome:   recorder.OutcomeOK,
		LatencyMs: took.Milliseconds(),
	})
	s.log.Info("turn processed",
		zap.String("session_id", sessionID),
		zap.String("stage", string(sess.Stage)),
		zap.String("next_stage", string(res.NextStage)),
		zap.Int("turn", turns),
		zap.Duration("took", took))

	return &Reply{
		Reply:      res.NextQuestion,
		Stage:      res.NextStage,
		Progress:   res.NextStage.Progress(),
		IsComplete: complete,
	}, nil
}

func (s *Service) turnFailed(sess *session.Session, err error, took time.Duration) {
	var outcome, kind string
	switch {
	case errors.Is(err, assessment.ErrMalformedResult):
		outcome, kind = recorder.OutcomeMalformed, metrics.KindMalformed
	case errors.Is(err, assessment.ErrInference):
		outcome, kind = recorder.OutcomeInference, metrics.KindInference
	default:
		// Input errors never reached the inference capability.
		return
	}
	metrics.TurnError(kind, took)
	s.record(&recorder.TurnEvent{
		SessionID: sess.ID,
		Stage:     sess.Stage,
		TurnCount: sess.TurnCount,
		Outcome:   outcome,
		LatencyMs: took.Milliseconds(),
		Error:     err.Error(),
	})
	s.log.Warn("turn rejected",
		zap.String("session_id", sess.ID),
		zap.String("stage", string(sess.Stage)),
		zap.Int("turn", sess.TurnCount),
		zap.Error(err))
}

// Result finalizes a completed session. Recommendations are computed once,
// persisted, and only their rationale is re-rendered per locale.
func (s *Service) Result(ctx context.Context, sessionID string, loc i18n.Locale) (*Result, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Complete() {
		return nil, ErrNotComplete
	}

	profile := assessment.Merge(sess.Scores, model.PartialProfile{})
	recs := sess.Result
	if recs == nil {
		// The shared call outlives any one caller's request.
		shared := context.WithoutCancel(ctx)
		v, err, _ := s.results.Do(sessionID, func() (any, error) {
			return s.recommend(shared, sessionID, profile)
		})
		if err != nil {
			return nil, err
		}
		recs = v.([]model.Recommendation)
	}

	ph := i18n.For(loc)
	return &Result{
		SessionID:       sess.ID,
		Profile:         profile,
		InvestorType:    ph.InvestorType(profile.Risk.Raw),
		Summary:         Summary(profile, loc),
		Biases:          profile.Biases,
		Recommendations: recommend.NewEngine(loc).Localize(profile, recs),
		CompletedAt:     sess.CompletedAt,
	}, nil
}

func (s *Service) recommend(ctx context.Context, sessionID string, profile model.Profile) ([]model.Recommendation, error) {
	// A concurrent caller may have persisted the result already.
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Result != nil {
		return sess.Result, nil
	}

	recs := recommend.NewEngine(i18n.Default).Recommend(profile, s.catalog.Tracks())
	if err := s.store.Update(ctx, sessionID, session.Update{Result: recs}); err != nil {
		return nil, fmt.Errorf("save recommendations: %w", err)
	}
	metrics.Recommended(string(i18n.Default))
	if err := s.rec.RecordResult(&recorder.ResultEvent{
		SessionID:       sessionID,
		UserID:          sess.UserID,
		Profile:         profile,
		InvestorType:    i18n.For(i18n.Default).InvestorType(profile.Risk.Raw),
		Recommendations: recs,
	}); err != nil {
		s.log.Error("record result", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.log.Info("recommendations computed",
		zap.String("session_id", sessionID),
		zap.Int("count", len(recs)),
		zap.String("catalog", s.catalog.Version()))
	return recs, nil
}

func (s *Service) record(evt *recorder.TurnEvent) {
	if err := s.rec.RecordTurn(evt); err != nil {
		s.log.Error("record turn", zap.String("session_id", evt.SessionID), zap.Error(err))
	}
}

// Summary describes a profile in one localized sentence.
func Summary(p model.Profile, loc i18n.Locale) string {
	ph := i18n.For(loc)
	return fmt.Sprintf(ph.Summary,
		ph.InvestorType(p.Risk.Raw),
		ph.TimeLabel[i18n.TimeKey(p.TimeHorizon.Raw)],
		ph.ESGName[recommend.DominantESG(p.ESG)])
}
