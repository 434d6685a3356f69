// Package session persists assessment sessions between conversation turns.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"PAIBot/internal/model"
)

// ErrNotFound reports an unknown session id.
var ErrNotFound = errors.New("session not found")

// Session is the persisted state of one assessment conversation.
type Session struct {
	ID          string
	UserID      string
	Stage       model.Stage
	TurnCount   int
	History     []model.Message
	Scores      model.PartialProfile
	Result      []model.Recommendation
	StartedAt   time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// Complete reports whether the assessment reached its final stage.
func (s *Session) Complete() bool { return s.Stage.Terminal() }

// Progress is 0 before the first answer, then the stage's percentage.
func (s *Session) Progress() int {
	if s.TurnCount == 0 {
		return 0
	}
	return s.Stage.Progress()
}

// Update lists the fields to change. Nil fields are left as they are.
type Update struct {
	Stage       *model.Stage
	TurnCount   *int
	History     []model.Message
	Scores      *model.PartialProfile
	Result      []model.Recommendation
	CompletedAt *time.Time
}

// Store is the session persistence contract.
type Store interface {
	// Create stores a new session at the opening stage with the given history.
	Create(ctx context.Context, userID string, history ...model.Message) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, u Update) error
	// DeleteExpired removes unfinished sessions last touched before the cutoff.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// AnonymousUser owns sessions started without a user id.
const AnonymousUser = "anonymous"

func newID() string { return "session_" + uuid.NewString() }

func newSession(userID string, now time.Time, history []model.Message) *Session {
	if userID == "" {
		userID = AnonymousUser
	}
	return &Session{
		ID:        newID(),
		UserID:    userID,
		Stage:     model.StageOpening,
		History:   append([]model.Message{}, history...),
		StartedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) apply(u Update, now time.Time) {
	if u.Stage != nil {
		s.Stage = *u.Stage
	}
	if u.TurnCount != nil {
		s.TurnCount = *u.TurnCount
	}
	if u.History != nil {
		s.History = append([]model.Message(nil), u.History...)
	}
	if u.Scores != nil {
		s.Scores = clonePartial(*u.Scores)
	}
	if u.Result != nil {
		s.Result = cloneRecommendations(u.Result)
	}
	if u.CompletedAt != nil {
		t := *u.CompletedAt
		s.CompletedAt = &t
	}
	s.UpdatedAt = now
}

func (s *Session) clone() *Session {
	c := *s
	c.History = append([]model.Message{}, s.History...)
	c.Scores = clonePartial(s.Scores)
	if s.Result != nil {
		c.Result = cloneRecommendations(s.Result)
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func clonePartial(p model.PartialProfile) model.PartialProfile {
	out := model.PartialProfile{}
	if p.Risk != nil {
		r := *p.Risk
		out.Risk = &r
	}
	if p.TimeHorizon != nil {
		h := *p.TimeHorizon
		out.TimeHorizon = &h
	}
	if p.GoalType != nil {
		g := *p.GoalType
		out.GoalType = &g
	}
	if p.ESG != nil {
		e := *p.ESG
		out.ESG = &e
	}
	if p.Biases != nil {
		out.Biases = append([]model.Bias{}, p.Biases...)
	}
	if p.SDGPriorities != nil {
		out.SDGPriorities = append([]int{}, p.SDGPriorities...)
	}
	return out
}

func cloneRecommendations(in []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, len(in))
	for i, r := range in {
		r.Factors = append([]model.FactorScore(nil), r.Factors...)
		r.Track.SDGs = append([]int(nil), r.Track.SDGs...)
		r.Track.Sectors = append([]model.Localized(nil), r.Track.Sectors...)
		r.Track.Examples = append([]model.Localized(nil), r.Track.Examples...)
		out[i] = r
	}
	return out
}
