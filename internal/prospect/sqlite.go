package prospect

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL mode.
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
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS prospects (
	id           TEXT PRIMARY KEY,
	record       TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'new',
	credit_score INTEGER,
	notes        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS criteria (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	data       TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_prospects_status ON prospects(status);
CREATE INDEX IF NOT EXISTS idx_prospects_created_at ON prospects(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveProspect(ctx context.Context, p *Prospect) error {
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
		return eris.Wrap(err, "sqlite: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prospects (id, record, status, credit_score, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(recordJSON), string(p.Status), p.CreditScore, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	return eris.Wrap(err, "sqlite: insert prospect")
}

func (s *SQLiteStore) GetProspect(ctx context.Context, id string) (*Prospect, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, record, status, credit_score, notes, created_at, updated_at FROM prospects WHERE id = ?`,
		id,
	)
	p, err := scanProspect(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get prospect %s", id)
	}
	return p, nil
}

func (s *SQLiteStore) ListProspects(ctx context.Context, filter ListFilter) ([]Prospect, error) {
	query := `SELECT id, record, status, credit_score, notes, created_at, updated_at FROM prospects WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list prospects")
	}
	defer rows.Close()

	var prospects []Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan prospect")
		}
		prospects = append(prospects, *p)
	}
	return prospects, eris.Wrap(rows.Err(), "sqlite: list prospects iterate")
}

func (s *SQLiteStore) UpdateProspect(ctx context.Context, p *Prospect) error {
	p.UpdatedAt = time.Now().UTC()

	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE prospects SET record = ?, status = ?, credit_score = ?, notes = ?, updated_at = ? WHERE id = ?`,
		string(recordJSON), string(p.Status), p.CreditScore, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update prospect %s", p.ID)
	}
	return checkRowsAffected(res, p.ID)
}

func (s *SQLiteStore) DeleteProspect(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prospects WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete prospect %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) Criteria(ctx context.Context) (qualify.Criteria, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM criteria WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return qualify.DefaultCriteria(), nil
		}
		return qualify.Criteria{}, eris.Wrap(err, "sqlite: get criteria")
	}

	var c qualify.Criteria
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return qualify.Criteria{}, eris.Wrap(err, "sqlite: unmarshal criteria")
	}
	return c, nil
}

func (s *SQLiteStore) SetCriteria(ctx context.Context, c qualify.Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal criteria")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO criteria (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: set criteria")
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanProspect(row scannable) (*Prospect, error) {
	var (
		p           Prospect
		recordJSON  string
		status      string
		creditScore sql.NullInt64
	)
	if err := row.Scan(&p.ID, &recordJSON, &status, &creditScore, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recordJSON), &p.Record); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal record")
	}
	p.Status = Status(status)
	if creditScore.Valid {
		v := int(creditScore.Int64)
		p.CreditScore = &v
	}
	return &p, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}
