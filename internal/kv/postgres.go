package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a Store backed by a single table with an expires_at column.
// A row whose expires_at has passed reads as absent and is deleted on sight,
// so TTL semantics hold even though Postgres has no native key expiry.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Migrate creates the backing table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS persona_sessions (
			key        text PRIMARY KEY,
			value      text NOT NULL,
			expires_at timestamptz NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create persona_sessions: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	var expiresAt time.Time
	err := p.pool.QueryRow(ctx,
		`SELECT value, expires_at FROM persona_sessions WHERE key = $1`,
		key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	if time.Now().After(expiresAt) {
		_, _ = p.pool.Exec(ctx, `DELETE FROM persona_sessions WHERE key = $1`, key)
		return "", false, nil
	}
	return value, true, nil
}

func (p *Postgres) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)
	_, err := p.pool.Exec(ctx, `
		INSERT INTO persona_sessions (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, expires_at = $3`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
