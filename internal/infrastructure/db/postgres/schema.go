package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/fashionhub/auth-service/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the users table DDL. Idempotent; run at startup in
// dev so a fresh database works without a migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
