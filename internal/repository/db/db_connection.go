package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported values of db.driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "pgx"
)

// Open connects to the configured database and ensures tables exist.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, "":
		return InitSQLite(dsn)
	case DriverPostgres:
		return InitPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// InitSQLite opens/creates a SQLite DB file and ensures tables exist.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	return finishInit(db, "sqlite")
}

// InitPostgres opens a pgx-backed pool and ensures tables exist.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return finishInit(db, "postgres")
}

func finishInit(db *sql.DB, name string) (*sql.DB, error) {
	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", name, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL DEFAULT 'Medium',
    status TEXT NOT NULL DEFAULT 'Todo',
    due_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);
`

const indexTasksOwner = `CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks (user_id, created_at);`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaTasks,
		indexTasksOwner,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
