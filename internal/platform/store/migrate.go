package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"regexp"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

const migrationsPath = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// schemaNameRE guards the schema identifier we interpolate into DDL
var schemaNameRE = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// InitSchema creates the configured namespace if absent and applies all
// pending migrations inside it. Idempotent; safe to run at every boot.
func (s *Store) InitSchema(ctx context.Context) error {
	if s == nil || s.PG == nil {
		return errors.New("init schema: store has no postgres backend")
	}
	schema := s.cfg.PG.Schema
	if schema == "" {
		schema = "public"
	}
	if !schemaNameRE.MatchString(schema) {
		return fmt.Errorf("init schema: invalid schema name %q", schema)
	}

	if _, err := s.PG.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, schema)); err != nil {
		return fmt.Errorf("init schema: create schema: %w", err)
	}

	// migrate wants its own database/sql handle; scope it to the same namespace
	db, err := sql.Open("pgx", WithSchema(s.cfg.PG.URL, schema))
	if err != nil {
		return fmt.Errorf("init schema: open migration conn: %w", err)
	}
	defer func() { _ = db.Close() }()

	sourceDriver, err := iofs.New(migrationsFS, migrationsPath)
	if err != nil {
		return fmt.Errorf("init schema: init source: %w", err)
	}

	dbDriver, err := migratepgx.WithInstance(db, &migratepgx.Config{
		MigrationsTable: "schema_migrations",
		SchemaName:      schema,
	})
	if err != nil {
		return fmt.Errorf("init schema: init db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "pgx", dbDriver)
	if err != nil {
		return fmt.Errorf("init schema: init migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("init schema: up: %w", err)
	}
	s.Log.Info().Str("schema", schema).Msg("schema up to date")
	return nil
}
