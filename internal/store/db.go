// Package store keeps the refresh and notification history of a session
// in SQLite. The database is opened in memory; nothing outlives the
// process.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SessionDSN opens a private in-memory database.
const SessionDSN = ":memory:"

// ErrNotInitialized is returned when a query runs before CreateSchema.
var ErrNotInitialized = errors.New("history store not initialized")

// Store provides SQLite database operations for bizlens.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New creates a new Store with the specified data source.
// Use SessionDSN for the session history.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Store{db: db, log: zap.NewNop().Sugar()}, nil
}

// OpenSession opens an in-memory store with the schema in place.
func OpenSession(log *zap.SugaredLogger) (*Store, error) {
	s, err := New(SessionDSN)
	if err != nil {
		return nil, err
	}
	if log != nil {
		s.log = log
	}
	if err := s.CreateSchema(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateSchema creates all tables and indexes.
func (s *Store) CreateSchema() error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// wrapErr maps a missing table to ErrNotInitialized.
func wrapErr(op string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("failed to %s: %w", op, ErrNotInitialized)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
