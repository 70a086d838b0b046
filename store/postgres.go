package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybot/types"
)

const pgUniqueViolation = "23505"

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pgx pool and applies the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	schema, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Printf("✅ Connected to postgres at %s", config.ConnConfig.Host)
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) CreateUser(ctx context.Context, email, description string) (*types.User, error) {
	u := &types.User{Email: normalizeEmail(email), Description: description}
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (email, description) VALUES ($1, $2) RETURNING id, created_at`,
		u.Email, u.Description,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, conflict("create user", err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (p *Postgres) CreateEmail(ctx context.Context, email string) (*types.EmailRecord, error) {
	e := &types.EmailRecord{Email: normalizeEmail(email)}
	err := p.pool.QueryRow(ctx,
		`INSERT INTO emails (email) VALUES ($1) RETURNING id, created_at`,
		e.Email,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, conflict("create email", err)
		}
		return nil, fmt.Errorf("insert email: %w", err)
	}
	return e, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int64) (*types.User, error) {
	u := &types.User{}
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, description, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Description, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("get user")
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
