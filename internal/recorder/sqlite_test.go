package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PAIBot/internal/model"
)

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "telemetry.db"), nil)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordTurn(&TurnEvent{
		SessionID: "session_1", Stage: model.StageRisk, NextStage: model.StageGoals,
		TurnCount: 2, Outcome: OutcomeOK, LatencyMs: 840,
	}))
	require.NoError(t, r.RecordTurn(&TurnEvent{
		SessionID: "session_1", Stage: model.StageGoals, TurnCount: 3,
		Outcome: OutcomeMalformed, Error: "missing next_stage",
	}))

	var turns, malformed int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM turn_events WHERE session_id = ?`, "session_1").Scan(&turns))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM turn_events WHERE outcome = ?`, OutcomeMalformed).Scan(&malformed))
	assert.Equal(t, 2, turns)
	assert.Equal(t, 1, malformed)

	require.NoError(t, r.RecordResult(&ResultEvent{
		SessionID: "session_1",
		UserID:    "u",
		Profile: model.Profile{
			Risk:        model.Estimate{Raw: 60},
			TimeHorizon: model.Estimate{Raw: 70},
			GoalType:    model.GoalImpact,
			ESG:         model.ESG{Environmental: 90, Social: 40, Governance: 50},
		},
		InvestorType: "Balanced impact investor",
		Recommendations: []model.Recommendation{
			{Track: model.Track{ID: "renewable_energy"}, MatchScore: 86},
			{Track: model.Track{ID: "circular_economy"}, MatchScore: 76},
		},
	}))

	var (
		track1, goal string
		score1       int
		track3       *string
	)
	require.NoError(t, r.db.QueryRow(`SELECT track1_id, track1_score, track3_id, goal_type FROM assessment_results`).
		Scan(&track1, &score1, &track3, &goal))
	assert.Equal(t, "renewable_energy", track1)
	assert.Equal(t, 86, score1)
	assert.Nil(t, track3)
	assert.Equal(t, "impact", goal)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordTurn(&TurnEvent{}))
	assert.NoError(t, r.RecordResult(&ResultEvent{}))
	assert.NoError(t, r.Close())
}
