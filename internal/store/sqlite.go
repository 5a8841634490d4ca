package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/scorecard/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS score_history (
	id              TEXT PRIMARY KEY,
	subcomponent_id TEXT NOT NULL,
	session_id      TEXT NOT NULL,
	overall_score   REAL NOT NULL DEFAULT 0,
	responses       TEXT,
	result          TEXT,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (subcomponent_id, session_id)
);

CREATE INDEX IF NOT EXISTS idx_score_history_subcomponent ON score_history(subcomponent_id);
CREATE INDEX IF NOT EXISTS idx_score_history_updated_at ON score_history(updated_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveHistory(ctx context.Context, rec *model.HistoryRecord) error {
	prepare(rec)

	responsesJSON, resultJSON, err := marshalRecord(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal history")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO score_history (id, subcomponent_id, session_id, overall_score, responses, result, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (subcomponent_id, session_id) DO UPDATE SET
			overall_score = excluded.overall_score,
			responses = excluded.responses,
			result = excluded.result,
			updated_at = excluded.updated_at`,
		rec.ID, rec.SubcomponentID, rec.SessionID, rec.OverallScore,
		responsesJSON, resultJSON, rec.CreatedAt, rec.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: save history %s/%s", rec.SubcomponentID, rec.SessionID)
}

func (s *SQLiteStore) GetHistory(ctx context.Context, subcomponentID, sessionID string) (*model.HistoryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, subcomponent_id, session_id, overall_score, responses, result, created_at, updated_at
		 FROM score_history WHERE subcomponent_id = ? AND session_id = ?`,
		subcomponentID, sessionID,
	)
	rec, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get history")
	}
	return rec, nil
}

func (s *SQLiteStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryRecord, error) {
	query := `SELECT id, subcomponent_id, session_id, overall_score, responses, result, created_at, updated_at
		FROM score_history WHERE 1=1`
	var args []any

	if filter.SubcomponentID != "" {
		query += ` AND subcomponent_id = ?`
		args = append(args, filter.SubcomponentID)
	}
	query += ` ORDER BY updated_at DESC, id LIMIT ?`
	args = append(args, limitOf(filter))

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list history")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list history iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanHistory(row scannable) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var responsesJSON, resultJSON sql.NullString

	err := row.Scan(&rec.ID, &rec.SubcomponentID, &rec.SessionID, &rec.OverallScore,
		&responsesJSON, &resultJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalRecord(&rec, []byte(responsesJSON.String), []byte(resultJSON.String)); err != nil {
		return nil, err
	}
	return &rec, nil
}

func marshalRecord(rec *model.HistoryRecord) (responses, result []byte, err error) {
	if rec.Responses != nil {
		if responses, err = json.Marshal(rec.Responses); err != nil {
			return nil, nil, eris.Wrap(err, "marshal responses")
		}
	}
	if rec.Result != nil {
		if result, err = json.Marshal(rec.Result); err != nil {
			return nil, nil, eris.Wrap(err, "marshal result")
		}
	}
	return responses, result, nil
}

func unmarshalRecord(rec *model.HistoryRecord, responses, result []byte) error {
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &rec.Responses); err != nil {
			return eris.Wrap(err, "unmarshal responses")
		}
	}
	if len(result) > 0 {
		rec.Result = &model.AnalysisResult{}
		if err := json.Unmarshal(result, rec.Result); err != nil {
			return eris.Wrap(err, "unmarshal result")
		}
	}
	return nil
}
