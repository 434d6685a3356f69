package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"PAIBot/internal/model"
	"PAIBot/internal/sqlitedb"
)

// SQLiteStore persists sessions to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(ctx context.Context, dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sqlitedb.Open(dbPath)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db, log: log, now: time.Now}
	if err := sqlitedb.Migrate(ctx, db, migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("session store opened", zap.String("path", dbPath))
	return s, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessment_sessions (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL,
		stage                TEXT NOT NULL,
		conversation_count   INTEGER NOT NULL DEFAULT 0,
		conversation_history TEXT NOT NULL DEFAULT '[]',
		scores               TEXT NOT NULL DEFAULT '{}',
		result               TEXT,
		start_time           INTEGER NOT NULL,
		completed_at         INTEGER,
		updated_at           INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON assessment_sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_updated ON assessment_sessions(updated_at)`,
}

func (s *SQLiteStore) Create(ctx context.Context, userID string, history ...model.Message) (*Session, error) {
	sess := newSession(userID, s.now(), history)
	hist, err := json.Marshal(sess.History)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `INSERT INTO assessment_sessions
		(id, user_id, stage, conversation_count, conversation_history, scores, start_time, updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		sess.ID, sess.UserID, string(sess.Stage), 0, string(hist), "{}",
		sess.StartedAt.UnixMilli(), sess.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, user_id, stage, conversation_count, conversation_history, scores, result,
		start_time, completed_at, updated_at
		FROM assessment_sessions WHERE id = ?`, id)

	var (
		sess             Session
		stage            string
		history, scores  string
		result           sql.NullString
		started, updated int64
		completed        sql.NullInt64
	)
	err := row.Scan(&sess.ID, &sess.UserID, &stage, &sess.TurnCount, &history, &scores, &result,
		&started, &completed, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	sess.Stage = model.Stage(stage)
	if err := json.Unmarshal([]byte(history), &sess.History); err != nil {
		return nil, fmt.Errorf("decode history of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(scores), &sess.Scores); err != nil {
		return nil, fmt.Errorf("decode scores of %s: %w", id, err)
	}
	if result.Valid {
		if err := json.Unmarshal([]byte(result.String), &sess.Result); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", id, err)
		}
	}
	if sess.History == nil {
		sess.History = []model.Message{}
	}
	sess.StartedAt = time.UnixMilli(started)
	sess.UpdatedAt = time.UnixMilli(updated)
	if completed.Valid {
		t := time.UnixMilli(completed.Int64)
		sess.CompletedAt = &t
	}
	return &sess, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, u Update) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	setJSON := func(col string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", col, err)
		}
		set(col, string(b))
		return nil
	}

	if u.Stage != nil {
		set("stage", string(*u.Stage))
	}
	if u.TurnCount != nil {
		set("conversation_count", *u.TurnCount)
	}
	if u.History != nil {
		if err := setJSON("conversation_history", u.History); err != nil {
			return err
		}
	}
	if u.Scores != nil {
		if err := setJSON("scores", u.Scores); err != nil {
			return err
		}
	}
	if u.Result != nil {
		if err := setJSON("result", u.Result); err != nil {
			return err
		}
	}
	if u.CompletedAt != nil {
		set("completed_at", u.CompletedAt.UnixMilli())
	}
	set("updated_at", s.now().UnixMilli())
	args = append(args, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE assessment_sessions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM assessment_sessions WHERE completed_at IS NULL AND updated_at < ?`,
		before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	s.log.Info("closing session store")
	return s.db.Close()
}
