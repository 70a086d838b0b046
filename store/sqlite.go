package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"studybot/types"
)

// sqliteConstraintUnique is SQLITE_CONSTRAINT_UNIQUE.
const sqliteConstraintUnique = 2067

// SQLite is a Store backed by a local sqlite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	schema, err := schemaFS.ReadFile("schema/sqlite.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) CreateUser(ctx context.Context, email, description string) (*types.User, error) {
	u := &types.User{Email: normalizeEmail(email), Description: description, CreatedAt: s.now().UTC()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, description, created_at) VALUES (?, ?, ?)`,
		u.Email, u.Description, u.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, conflict("create user", err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLite) CreateEmail(ctx context.Context, email string) (*types.EmailRecord, error) {
	e := &types.EmailRecord{Email: normalizeEmail(email), CreatedAt: s.now().UTC()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO emails (email, created_at) VALUES (?, ?)`,
		e.Email, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, conflict("create email", err)
		}
		return nil, fmt.Errorf("insert email: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("insert email: %w", err)
	}
	return e, nil
}

func (s *SQLite) GetUser(ctx context.Context, id int64) (*types.User, error) {
	u := &types.User{}
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, description, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.Description, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("get user")
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return u, nil
}

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close() error { return s.db.Close() }

func isSQLiteUniqueViolation(err error) bool {
	var coded interface{ Code() int }
	if errors.As(err, &coded) && coded.Code() == sqliteConstraintUnique {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
