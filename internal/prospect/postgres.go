package prospect

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
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
CREATE TABLE IF NOT EXISTS prospects (
	id           TEXT PRIMARY KEY,
	record       JSONB NOT NULL,
	status       TEXT NOT NULL DEFAULT 'new',
	credit_score INTEGER,
	notes        TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS criteria (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_prospects_status ON prospects(status);
CREATE INDEX IF NOT EXISTS idx_prospects_created_at ON prospects(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveProspect(ctx context.Context, p *Prospect) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = StatusNew
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO prospects (id, record, status, credit_score, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, recordJSON, string(p.Status), p.CreditScore, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	return eris.Wrap(err, "postgres: insert prospect")
}

func (s *PostgresStore) GetProspect(ctx context.Context, id string) (*Prospect, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, record, status, credit_score, notes, created_at, updated_at FROM prospects WHERE id = $1`,
		id,
	)
	p, err := scanProspectPgx(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get prospect %s", id)
	}
	return p, nil
}

func (s *PostgresStore) ListProspects(ctx context.Context, filter ListFilter) ([]Prospect, error) {
	query := `SELECT id, record, status, credit_score, notes, created_at, updated_at FROM prospects`
	var args []any

	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list prospects")
	}
	defer rows.Close()

	var prospects []Prospect
	for rows.Next() {
		p, err := scanProspectPgx(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan prospect")
		}
		prospects = append(prospects, *p)
	}
	return prospects, eris.Wrap(rows.Err(), "postgres: list prospects iterate")
}

func (s *PostgresStore) UpdateProspect(ctx context.Context, p *Prospect) error {
	p.UpdatedAt = time.Now().UTC()

	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE prospects SET record = $1, status = $2, credit_score = $3, notes = $4, updated_at = $5 WHERE id = $6`,
		recordJSON, string(p.Status), p.CreditScore, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update prospect %s", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "id %s", p.ID)
	}
	return nil
}

func (s *PostgresStore) DeleteProspect(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete prospect %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}

func (s *PostgresStore) Criteria(ctx context.Context) (qualify.Criteria, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM criteria WHERE id = 1`).Scan(&data)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return qualify.DefaultCriteria(), nil
		}
		return qualify.Criteria{}, eris.Wrap(err, "postgres: get criteria")
	}

	var c qualify.Criteria
	if err := json.Unmarshal(data, &c); err != nil {
		return qualify.Criteria{}, eris.Wrap(err, "postgres: unmarshal criteria")
	}
	return c, nil
}

func (s *PostgresStore) SetCriteria(ctx context.Context, c qualify.Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal criteria")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO criteria (id, data, updated_at) VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		data, time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: set criteria")
}

func scanProspectPgx(row pgx.Row) (*Prospect, error) {
	var (
		p           Prospect
		recordJSON  []byte
		status      string
		creditScore *int
	)
	if err := row.Scan(&p.ID, &recordJSON, &status, &creditScore, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recordJSON, &p.Record); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal record")
	}
	p.Status = Status(status)
	p.CreditScore = creditScore
	return &p, nil
}

