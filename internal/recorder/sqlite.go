package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"PAIBot/internal/sqlitedb"
)

// topTracks is the number of ranked tracks kept in dedicated columns.
const topTracks = 3

// SQLiteRecorder persists assessment telemetry to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sqlitedb.Open(dbPath)
	if err != nil {
		return nil, err
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	return sqlitedb.Migrate(context.Background(), r.db, []string{
		`CREATE TABLE IF NOT EXISTS turn_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			stage      TEXT,
			next_stage TEXT,
			turn_count INTEGER,
			outcome    TEXT,
			latency_ms INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turn_ts ON turn_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_turn_session ON turn_events(session_id)`,

		`CREATE TABLE IF NOT EXISTS assessment_results (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			session_id    TEXT NOT NULL,
			user_id       TEXT,
			risk          REAL,
			time_horizon  REAL,
			goal_type     TEXT,
			esg_e         REAL,
			esg_s         REAL,
			esg_g         REAL,
			investor_type TEXT,
			track1_id     TEXT,
			track1_score  INTEGER,
			track2_id     TEXT,
			track2_score  INTEGER,
			track3_id     TEXT,
			track3_score  INTEGER,
			profile       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_result_ts ON assessment_results(timestamp)`,
	})
}

func (r *SQLiteRecorder) RecordTurn(evt *TurnEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO turn_events
		(timestamp, session_id, stage, next_stage, turn_count, outcome, latency_ms, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, string(evt.Stage), string(evt.NextStage),
		evt.TurnCount, evt.Outcome, evt.LatencyMs, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordResult(evt *ResultEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := evt.Profile
	profile, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	// Top-ranked tracks, padded with empty columns.
	ids := make([]any, topTracks)
	scores := make([]any, topTracks)
	for i := 0; i < topTracks; i++ {
		if i < len(evt.Recommendations) {
			ids[i] = evt.Recommendations[i].Track.ID
			scores[i] = evt.Recommendations[i].MatchScore
		}
	}

	_, err = r.db.Exec(`INSERT INTO assessment_results
		(timestamp, session_id, user_id, risk, time_horizon, goal_type,
		 esg_e, esg_s, esg_g, investor_type,
		 track1_id, track1_score, track2_id, track2_score, track3_id, track3_score,
		 profile)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.UserID,
		p.Risk.Raw, p.TimeHorizon.Raw, string(p.GoalType),
		p.ESG.Environmental, p.ESG.Social, p.ESG.Governance, evt.InvestorType,
		ids[0], scores[0], ids[1], scores[1], ids[2], scores[2],
		string(profile),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
