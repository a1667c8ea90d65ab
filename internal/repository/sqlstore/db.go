// Package sqlstore persists events and participants with database/sql. The
// same queries run against SQLite (the default, a single file) and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// sqliteDriver is go-sqlite3 with lower() replaced by a Unicode-aware
// version, so LOWER() folds non-ASCII letters the way PostgreSQL does.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Dialect names the database/sql driver in use.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

var schema = map[Dialect][]string{
	SQLite: {
		`CREATE TABLE IF NOT EXISTS eventos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL,
			data TEXT NOT NULL,
			local TEXT NOT NULL,
			capacidade INTEGER NOT NULL,
			categoria TEXT NOT NULL,
			preco REAL NOT NULL,
			extra TEXT,
			tipo TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS participantes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL,
			email TEXT NOT NULL,
			checkin INTEGER DEFAULT 0,
			evento_id INTEGER,
			FOREIGN KEY(evento_id) REFERENCES eventos(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participantes_evento_id ON participantes(evento_id)`,
	},
	Postgres: {
		`CREATE TABLE IF NOT EXISTS eventos (
			id BIGSERIAL PRIMARY KEY,
			nome TEXT NOT NULL,
			data TEXT NOT NULL,
			local TEXT NOT NULL,
			capacidade INTEGER NOT NULL,
			categoria TEXT NOT NULL,
			preco DOUBLE PRECISION NOT NULL,
			extra TEXT,
			tipo TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS participantes (
			id BIGSERIAL PRIMARY KEY,
			nome TEXT NOT NULL,
			email TEXT NOT NULL,
			checkin INTEGER DEFAULT 0,
			evento_id BIGINT REFERENCES eventos(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_participantes_evento_id ON participantes(evento_id)`,
	},
}

// Open connects to the database. For SQLite, dsn is a file path whose parent
// directory is created if absent, and the pool is capped at one connection so
// write transactions never interleave.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case SQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	case Postgres:
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the eventos and participantes tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (d Dialect) driverName() string {
	if d == SQLite {
		return sqliteDriver
	}
	return string(d)
}

// lockClause is appended to row reads inside write transactions.
func (d Dialect) lockClause() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...any) error
}
