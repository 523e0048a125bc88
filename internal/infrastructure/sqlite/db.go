// Package sqlite provides the SQLite-backed persistence layer for strand.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Registers the "sqlite3" database/sql driver backed by a wasm build,
	// so no cgo toolchain is needed.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/strand/internal/log"
	"github.com/zjrosen/strand/internal/programs/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the SQLite connection and owns schema migrations.
type DB struct {
	conn *sql.DB
}

// NewDB opens the database at dbPath, creating parent directories and the
// file on first run, and brings the schema up to date. An existing database
// is copied to a .bak file before migrations touch it.
func NewDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	if _, err := os.Stat(dbPath); err == nil {
		backupPath := dbPath + ".bak"
		if err := copyFile(dbPath, backupPath); err != nil {
			return nil, fmt.Errorf("creating pre-migration backup: %w", err)
		}
		log.Debug(log.CatStore, "pre-migration backup written", "path", backupPath)
	}

	dsn := "file:" + dbPath +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info(log.CatStore, "database ready", "path", dbPath)
	return &DB{conn: conn}, nil
}

// runMigrations applies every embedded migration not yet recorded in the
// schema_migrations table.
func runMigrations(conn *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	// Not calling m.Close(): the database driver would take the shared
	// connection down with it.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- path derives from the configured db location
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// ProgramRepository returns the repository for saved programs.
func (d *DB) ProgramRepository() domain.ProgramRepository {
	return newProgramRepository(d.conn)
}

// Connection returns the underlying *sql.DB for callers that need raw access.
func (d *DB) Connection() *sql.DB {
	return d.conn
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
