// Package store persists user and email records in postgres or sqlite.
package store

import (
	"context"
	"embed"
	"errors"
	"log"
	"strings"

	"studybot/apperror"
	"studybot/types"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is the relational store behind the /user endpoints.
// Duplicate emails fail with an error matching apperror.ErrPersistenceConflict.
type Store interface {
	CreateUser(ctx context.Context, email, description string) (*types.User, error)
	CreateEmail(ctx context.Context, email string) (*types.EmailRecord, error)
	GetUser(ctx context.Context, id int64) (*types.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config selects the backend: postgres when DatabaseURL is set, sqlite otherwise.
type Config struct {
	DatabaseURL string
	SQLitePath  string
}

// Open connects to the configured backend and applies the schema.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.DatabaseURL != "" {
		return OpenPostgres(ctx, cfg.DatabaseURL)
	}
	log.Printf("DATABASE_URL not set, using sqlite at %s", cfg.SQLitePath)
	return OpenSQLite(ctx, cfg.SQLitePath)
}

// normalizeEmail trims the address and lowercases its domain. The local part is
// kept as given, since mailboxes may be case sensitive.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func conflict(op string, err error) error {
	return apperror.New(apperror.KindPersistenceConflict, op, err)
}

func notFound(op string) error {
	return apperror.New(apperror.KindNotFound, op, errors.New("no such record"))
}
