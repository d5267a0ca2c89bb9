// Package migrations embeds the schema and applies it
// postgres goes through golang-migrate, clickhouse files are idempotent DDL run in name order
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql clickhouse/*.sql
var files embed.FS

const (
	pgDir = "postgres"
	chDir = "clickhouse"
)

// Status is the schema version after a run
type Status struct {
	Version uint
	Dirty   bool
	Changed bool
}

// newMigrate builds a migrator for a postgres:// or postgresql:// DSN
func newMigrate(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, pgDir)
	if err != nil {
		return nil, fmt.Errorf("migrations: source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migrations: open: %w", err)
	}
	return m, nil
}

// DriverURL rewrites a libpq style url to the pgx5 scheme golang-migrate dispatches on
func DriverURL(dsn string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, p) {
			return "pgx5://" + strings.TrimPrefix(dsn, p)
		}
	}
	return dsn
}

// Up applies every pending postgres migration
func Up(dsn string) (Status, error) {
	m, err := newMigrate(dsn)
	if err != nil {
		return Status{}, err
	}
	defer closeQuietly(m)

	changed := true
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return Status{}, fmt.Errorf("migrations: up: %w", err)
		}
		changed = false
	}
	return status(m, changed)
}

// Down rolls back steps migrations, steps <= 0 rolls back everything
func Down(dsn string, steps int) (Status, error) {
	m, err := newMigrate(dsn)
	if err != nil {
		return Status{}, err
	}
	defer closeQuietly(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	changed := true
	if err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return Status{}, fmt.Errorf("migrations: down: %w", err)
		}
		changed = false
	}
	return status(m, changed)
}

// Version reports the applied version without migrating
func Version(dsn string) (Status, error) {
	m, err := newMigrate(dsn)
	if err != nil {
		return Status{}, err
	}
	defer closeQuietly(m)
	return status(m, false)
}

func status(m *migrate.Migrate, changed bool) (Status, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{Changed: changed}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("migrations: version: %w", err)
	}
	return Status{Version: v, Dirty: dirty, Changed: changed}, nil
}

func closeQuietly(m *migrate.Migrate) { _, _ = m.Close() }

// Execer runs a statement, store.Clickhouse satisfies it
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// ClickhouseFiles lists the embedded clickhouse DDL in apply order
func ClickhouseFiles() ([]string, error) {
	names, err := fs.Glob(files, chDir+"/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ApplyClickhouse runs each clickhouse file, every statement is IF NOT EXISTS so reruns are safe
func ApplyClickhouse(ctx context.Context, db Execer) (int, error) {
	names, err := ClickhouseFiles()
	if err != nil {
		return 0, err
	}
	for i, n := range names {
		b, err := files.ReadFile(n)
		if err != nil {
			return i, err
		}
		if err := db.Exec(ctx, strings.TrimSpace(string(b))); err != nil {
			return i, fmt.Errorf("migrations: %s: %w", n, err)
		}
	}
	return len(names), nil
}
