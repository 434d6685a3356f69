package advisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PAIBot/internal/assessment"
	"PAIBot/internal/catalog"
	"PAIBot/internal/i18n"
	"PAIBot/internal/model"
	"PAIBot/internal/recorder"
	"PAIBot/internal/session"
)

// script answers each inference call with the next canned reply.
type script struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

func (s *script) Infer(_ context.Context, _ assessment.Request) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.replies) == 0 {
		return nil, errors.New("script exhausted")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return []byte(r), nil
}

func turn(stage model.Stage, scores string) string {
	return fmt.Sprintf(`{"analysis":"a","scores_update":%s,"next_stage":%q,"next_question":"q-%s","reasoning":"r"}`, scores, stage, stage)
}

// memRecorder keeps events in memory.
type memRecorder struct {
	mu      sync.Mutex
	turns   []recorder.TurnEvent
	results []recorder.ResultEvent
}

func (m *memRecorder) RecordTurn(evt *recorder.TurnEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, *evt)
	return nil
}

func (m *memRecorder) RecordResult(evt *recorder.ResultEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *evt)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func newService(inf assessment.Inferencer) (*Service, *session.MemoryStore, *memRecorder) {
	store := session.NewMemoryStore()
	rec := &memRecorder{}
	proc := assessment.NewProcessor(inf, assessment.DefaultSettings(), nil)
	return New(store, proc, catalog.Default(), rec, nil), store, rec
}

func TestStart(t *testing.T) {
	svc, store, _ := newService(&script{})
	ctx := context.Background()

	st, err := svc.Start(ctx, "u1", i18n.Chinese)
	require.NoError(t, err)
	assert.Equal(t, model.StageOpening, st.Stage)
	assert.Zero(t, st.Progress)
	assert.Equal(t, i18n.For(i18n.Chinese).Opening, st.Question)

	sess, err := store.Get(ctx, st.SessionID)
	require.NoError(t, err)
	require.Len(t, sess.History, 1)
	assert.Equal(t, model.RoleAssistant, sess.History[0].Role)
}

// guardedStore fails writes when told to, or when the write context is done.
type guardedStore struct {
	*session.MemoryStore
	failUpdates bool
}

func (g *guardedStore) Update(ctx context.Context, id string, u session.Update) error {
	if g.failUpdates {
		return errors.New("disk full")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.MemoryStore.Update(ctx, id, u)
}

func TestStart_SingleWrite(t *testing.T) {
	store := &guardedStore{MemoryStore: session.NewMemoryStore(), failUpdates: true}
	proc := assessment.NewProcessor(&script{}, assessment.DefaultSettings(), nil)
	svc := New(store, proc, catalog.Default(), nil, nil)
	ctx := context.Background()

	st, err := svc.Start(ctx, "u1", i18n.English)
	require.NoError(t, err)

	sess, err := store.Get(ctx, st.SessionID)
	require.NoError(t, err)
	require.Len(t, sess.History, 1)
	assert.Equal(t, i18n.For(i18n.English).Opening, sess.History[0].Content)
}

func TestResult_CanceledCallerStillPersists(t *testing.T) {
	store := &guardedStore{MemoryStore: session.NewMemoryStore()}
	proc := assessment.NewProcessor(&script{}, assessment.DefaultSettings(), nil)
	svc := New(store, proc, catalog.Default(), nil, nil)

	sess, err := store.Create(context.Background(), "u")
	require.NoError(t, err)
	stage := model.StageComplete
	now := time.Now()
	require.NoError(t, store.Update(context.Background(), sess.ID, session.Update{Stage: &stage, CompletedAt: &now}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.Result(ctx, sess.ID, i18n.English)
	require.NoError(t, err)
	assert.Len(t, res.Recommendations, 3)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Result, 3)
}

func TestFullAssessment(t *testing.T) {
	sc := &script{replies: []string{
		turn(model.StageRisk, `{}`),
		turn(model.StageGoals, `{"risk":{"raw":60,"confidence":0.8}}`),
		turn(model.StageValues, `{"timeHorizon":{"raw":70,"confidence":0.8},"goalType":"impact"}`),
		turn(model.StageConfirmation, `{"esg":{"environmental":90,"social":40,"governance":50},"sdgPriorities":[7,13,9],"biases":[{"type":"herding","strength":"low","evidence":"e"}]}`),
		turn(model.StageComplete, `{}`),
	}}
	svc, store, rec := newService(sc)
	ctx := context.Background()

	st, err := svc.Start(ctx, "", i18n.English)
	require.NoError(t, err)

	_, err = svc.Result(ctx, st.SessionID, i18n.English)
	assert.ErrorIs(t, err, ErrNotComplete)

	wantProgress := []int{30, 50, 90, 95, 100}
	for i, want := range wantProgress {
		reply, err := svc.Chat(ctx, st.SessionID, fmt.Sprintf("answer %d", i))
		require.NoError(t, err, "turn %d", i)
		assert.Equal(t, want, reply.Progress, "turn %d", i)
		assert.Equal(t, i == len(wantProgress)-1, reply.IsComplete)
	}

	sess, err := store.Get(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, sess.TurnCount)
	assert.Len(t, sess.History, 1+2*5)
	assert.Equal(t, "q-complete", sess.History[len(sess.History)-1].Content)
	require.NotNil(t, sess.CompletedAt)
	assert.Len(t, rec.turns, 5)

	_, err = svc.Chat(ctx, st.SessionID, "more")
	assert.ErrorIs(t, err, assessment.ErrSessionComplete)
	assert.Equal(t, 5, sc.calls)

	res, err := svc.Result(ctx, st.SessionID, i18n.English)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, "renewable_energy", res.Recommendations[0].Track.ID)
	assert.Equal(t, 86, res.Recommendations[0].MatchScore)
	assert.Equal(t, "Balanced impact investor", res.InvestorType)
	assert.Equal(t, "Balanced impact investor with a long-term horizon who cares most about environmental issues.", res.Summary)
	assert.Equal(t, model.GoalImpact, res.Profile.GoalType)
	require.Len(t, res.Biases, 1)

	zh, err := svc.Result(ctx, st.SessionID, i18n.Chinese)
	require.NoError(t, err)
	assert.Equal(t, "平衡型永續投資人", zh.InvestorType)
	for i := range zh.Recommendations {
		assert.Equal(t, res.Recommendations[i].Track.ID, zh.Recommendations[i].Track.ID)
		assert.Equal(t, res.Recommendations[i].MatchScore, zh.Recommendations[i].MatchScore)
	}
	assert.NotEqual(t, res.Recommendations[0].Reason, zh.Recommendations[0].Reason)

	assert.Len(t, rec.results, 1, "result recorded once")
	sess, _ = store.Get(ctx, st.SessionID)
	assert.Len(t, sess.Result, 3, "recommendations persisted")
}

func TestChat_FailedTurnLeavesSession(t *testing.T) {
	sc := &script{replies: []string{
		`{"analysis":"a","scores_update":{"risk":{"raw":90}},"next_question":"q","reasoning":"r"}`,
		turn(model.StageOpening, `{}`),
	}}
	svc, store, rec := newService(sc)
	ctx := context.Background()

	st, err := svc.Start(ctx, "u", i18n.English)
	require.NoError(t, err)
	before, _ := store.Get(ctx, st.SessionID)

	_, err = svc.Chat(ctx, st.SessionID, "hello")
	assert.ErrorIs(t, err, assessment.ErrMalformedResult)

	after, _ := store.Get(ctx, st.SessionID)
	assert.Equal(t, before.Stage, after.Stage)
	assert.Equal(t, before.TurnCount, after.TurnCount)
	assert.Equal(t, before.History, after.History)
	assert.True(t, after.Scores.IsEmpty())
	require.Len(t, rec.turns, 1)
	assert.Equal(t, recorder.OutcomeMalformed, rec.turns[0].Outcome)

	reply, err := svc.Chat(ctx, st.SessionID, "hello again")
	require.NoError(t, err)
	assert.Equal(t, model.StageOpening, reply.Stage)
	assert.Equal(t, 10, reply.Progress)
}

func TestChat_Errors(t *testing.T) {
	svc, _, rec := newService(&script{})
	ctx := context.Background()

	_, err := svc.Chat(ctx, "session_missing", "hi")
	assert.ErrorIs(t, err, session.ErrNotFound)

	st, _ := svc.Start(ctx, "u", i18n.English)
	_, err = svc.Chat(ctx, st.SessionID, "  ")
	assert.ErrorIs(t, err, assessment.ErrEmptyMessage)

	_, err = svc.Chat(ctx, st.SessionID, "hi")
	assert.ErrorIs(t, err, assessment.ErrInference)
	require.Len(t, rec.turns, 1)
	assert.Equal(t, recorder.OutcomeInference, rec.turns[0].Outcome)

	_, err = svc.Result(ctx, "session_missing", i18n.English)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

// slowInferencer tracks how many calls overlap.
type slowInferencer struct {
	active, peak atomic.Int32
}

func (s *slowInferencer) Infer(context.Context, assessment.Request) ([]byte, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return []byte(turn(model.StageRisk, `{}`)), nil
}

func TestChat_SerializedPerSession(t *testing.T) {
	inf := &slowInferencer{}
	svc, store, _ := newService(inf)
	ctx := context.Background()
	st, err := svc.Start(ctx, "u", i18n.English)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Chat(ctx, st.SessionID, fmt.Sprintf("m%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), inf.peak.Load(), "turns of one session must not overlap")
	sess, _ := store.Get(ctx, st.SessionID)
	assert.Equal(t, 5, sess.TurnCount)
	assert.Len(t, sess.History, 1+2*5)
	assert.Zero(t, svc.locks.size())
}

func TestResult_ConcurrentComputesOnce(t *testing.T) {
	svc, store, rec := newService(&script{})
	ctx := context.Background()

	sess, err := store.Create(ctx, "u")
	require.NoError(t, err)
	stage := model.StageComplete
	now := time.Now()
	require.NoError(t, store.Update(ctx, sess.ID, session.Update{Stage: &stage, CompletedAt: &now}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Result(ctx, sess.ID, i18n.English)
			assert.NoError(t, err)
			if assert.NotNil(t, res) {
				assert.Len(t, res.Recommendations, 3)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, rec.results, 1)
}

func TestSummary(t *testing.T) {
	p := assessment.Merge(model.PartialProfile{}, model.PartialProfile{})
	assert.Equal(t, "Steady impact investor with a medium-term horizon who cares most about governance issues.", Summary(p, i18n.English))
	assert.Equal(t, "穩健型永續投資人，偏好中期投資，最重視治理議題。", Summary(p, i18n.Chinese))
}
