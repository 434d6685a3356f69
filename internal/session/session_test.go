package session

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PAIBot/internal/model"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "sessions.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{"memory": NewMemoryStore(), "sqlite": sq}
}

func ptr[T any](v T) *T { return &v }

func TestStore_CreateGet(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := st.Create(ctx, "")
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(s.ID, "session_"), s.ID)
			assert.Equal(t, AnonymousUser, s.UserID)
			assert.Equal(t, model.StageOpening, s.Stage)
			assert.Zero(t, s.TurnCount)
			assert.Zero(t, s.Progress())
			assert.False(t, s.Complete())

			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, model.StageOpening, got.Stage)
			assert.Empty(t, got.History)
			assert.True(t, got.Scores.IsEmpty())
			assert.Nil(t, got.Result)
			assert.Nil(t, got.CompletedAt)
			assert.WithinDuration(t, s.StartedAt, got.StartedAt, time.Second)

			other, err := st.Create(ctx, "u-42")
			require.NoError(t, err)
			assert.NotEqual(t, s.ID, other.ID)
			assert.Equal(t, "u-42", other.UserID)

			_, err = st.Get(ctx, "session_missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_CreateWithHistory(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			opening := model.Message{Role: model.RoleAssistant, Content: "What matters to you?"}
			s, err := st.Create(ctx, "u", opening)
			require.NoError(t, err)
			assert.Equal(t, []model.Message{opening}, s.History)

			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, []model.Message{opening}, got.History)
			assert.Zero(t, got.TurnCount)
		})
	}
}

func TestStore_Update(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := st.Create(ctx, "u")
			require.NoError(t, err)

			history := []model.Message{
				{Role: model.RoleUser, Content: "I like solar"},
				{Role: model.RoleAssistant, Content: "Why solar?"},
			}
			scores := model.PartialProfile{
				Risk:          &model.PartialEstimate{Raw: ptr(62.5), Confidence: ptr(0.7)},
				Biases:        []model.Bias{{Type: model.BiasHerding, Strength: model.StrengthLow, Evidence: "e"}},
				SDGPriorities: []int{7},
			}
			require.NoError(t, st.Update(ctx, s.ID, Update{
				Stage:     ptr(model.StageRisk),
				TurnCount: ptr(1),
				History:   history,
				Scores:    &scores,
			}))

			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, model.StageRisk, got.Stage)
			assert.Equal(t, 1, got.TurnCount)
			assert.Equal(t, 30, got.Progress())
			assert.Equal(t, history, got.History)
			if diff := cmp.Diff(scores, got.Scores); diff != "" {
				t.Errorf("scores mismatch (-want +got):\n%s", diff)
			}

			// Untouched fields survive a partial update.
			done := time.Now()
			recs := []model.Recommendation{{Track: model.Track{ID: "renewable_energy", SDGs: []int{7}}, MatchScore: 86, Reason: "r"}}
			require.NoError(t, st.Update(ctx, s.ID, Update{
				Stage:       ptr(model.StageComplete),
				CompletedAt: &done,
				Result:      recs,
			}))
			got, err = st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.True(t, got.Complete())
			assert.Equal(t, 1, got.TurnCount)
			assert.Equal(t, history, got.History)
			require.NotNil(t, got.CompletedAt)
			assert.WithinDuration(t, done, *got.CompletedAt, time.Second)
			require.Len(t, got.Result, 1)
			assert.Equal(t, 86, got.Result[0].MatchScore)
			assert.Equal(t, "renewable_energy", got.Result[0].Track.ID)

			assert.ErrorIs(t, st.Update(ctx, "session_missing", Update{TurnCount: ptr(2)}), ErrNotFound)
		})
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := st.Create(ctx, "u")
			require.NoError(t, st.Update(ctx, s.ID, Update{History: []model.Message{{Role: model.RoleUser, Content: "a"}}}))

			got, _ := st.Get(ctx, s.ID)
			got.History[0].Content = "changed"
			got.Stage = model.StageComplete

			again, _ := st.Get(ctx, s.ID)
			assert.Equal(t, "a", again.History[0].Content)
			assert.Equal(t, model.StageOpening, again.Stage)
		})
	}
}

func TestStore_DeleteExpired(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			idle, _ := st.Create(ctx, "idle")
			done, _ := st.Create(ctx, "done")
			now := time.Now()
			require.NoError(t, st.Update(ctx, done.ID, Update{Stage: ptr(model.StageComplete), CompletedAt: &now}))

			n, err := st.DeleteExpired(ctx, time.Now().Add(-time.Hour))
			require.NoError(t, err)
			assert.Zero(t, n, "nothing is an hour old yet")

			n, err = st.DeleteExpired(ctx, time.Now().Add(time.Minute))
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			_, err = st.Get(ctx, idle.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = st.Get(ctx, done.ID)
			assert.NoError(t, err, "completed sessions are kept")
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sessions.db")

	st, err := NewSQLiteStore(ctx, path, nil)
	require.NoError(t, err)
	s, err := st.Create(ctx, "u")
	require.NoError(t, err)
	require.NoError(t, st.Update(ctx, s.ID, Update{TurnCount: ptr(3)}))
	require.NoError(t, st.Close())

	st, err = NewSQLiteStore(ctx, path, nil)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TurnCount)
}
