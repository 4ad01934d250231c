// Package storage provides the SQLite persistence layer for the ledger.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/service"
	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with the tally SQL functions registered on every
// connection.
const driverName = "sqlite3_tally"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// SQLite's LOWER only folds ASCII.
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
}

// SQLiteStorage implements the service storage interfaces using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
// Use ":memory:" for a throwaway database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Path returns the database location.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection. Later calls fail with common.ErrNoConnection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn returns the open handle or common.ErrNoConnection.
func (s *SQLiteStorage) conn() (*sql.DB, error) {
	if s == nil || s.db == nil {
		return nil, common.ErrNoConnection
	}
	return s.db, nil
}

// begin validates ctx and returns the open handle.
func (s *SQLiteStorage) begin(ctx context.Context) (*sql.DB, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.conn()
}

var _ service.Storage = (*SQLiteStorage)(nil)
