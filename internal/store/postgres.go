package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scorecard/internal/db"
	"github.com/sells-group/scorecard/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const historyColumns = `id, subcomponent_id, session_id, overall_score, responses, result, created_at, updated_at`

var saveHistorySQL = func() string {
	q, err := db.UpsertSQL(db.UpsertConfig{
		Table:        "score_history",
		Columns:      []string{"id", "subcomponent_id", "session_id", "overall_score", "responses", "result", "created_at", "updated_at"},
		ConflictKeys: []string{"subcomponent_id", "session_id"},
		UpdateCols:   []string{"overall_score", "responses", "result", "updated_at"},
	})
	if err != nil {
		panic(err)
	}
	return q
}()

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS score_history (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	subcomponent_id TEXT NOT NULL,
	session_id      TEXT NOT NULL,
	overall_score   DOUBLE PRECISION NOT NULL DEFAULT 0,
	responses       JSONB,
	result          JSONB,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (subcomponent_id, session_id)
);

CREATE INDEX IF NOT EXISTS idx_score_history_subcomponent ON score_history(subcomponent_id);
CREATE INDEX IF NOT EXISTS idx_score_history_updated_at ON score_history(updated_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveHistory(ctx context.Context, rec *model.HistoryRecord) error {
	prepare(rec)

	responsesJSON, resultJSON, err := marshalRecord(rec)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal history")
	}

	_, err = s.pool.Exec(ctx, saveHistorySQL,
		rec.ID, rec.SubcomponentID, rec.SessionID, rec.OverallScore,
		responsesJSON, resultJSON, rec.CreatedAt, rec.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: save history %s/%s", rec.SubcomponentID, rec.SessionID)
}

func (s *PostgresStore) GetHistory(ctx context.Context, subcomponentID, sessionID string) (*model.HistoryRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+historyColumns+` FROM score_history WHERE subcomponent_id = $1 AND session_id = $2`,
		subcomponentID, sessionID,
	)
	rec, err := scanPgHistory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get history")
	}
	return rec, nil
}

func (s *PostgresStore) ListHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM score_history`
	var args []any

	if filter.SubcomponentID != "" {
		args = append(args, filter.SubcomponentID)
		query += ` WHERE subcomponent_id = $1`
	}
	args = append(args, limitOf(filter), max(filter.Offset, 0))
	query += ` ORDER BY updated_at DESC, id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list history")
	}
	defer rows.Close()

	var out []model.HistoryRecord
	for rows.Next() {
		rec, err := scanPgHistory(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan history")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list history iterate")
}

func scanPgHistory(row pgx.Row) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var responsesJSON, resultJSON []byte

	err := row.Scan(&rec.ID, &rec.SubcomponentID, &rec.SessionID, &rec.OverallScore,
		&responsesJSON, &resultJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalRecord(&rec, responsesJSON, resultJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}
