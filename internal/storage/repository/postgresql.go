// Package repository implements the PostgreSQL record store for
// subscribers, installation clients and orders. It provides the create,
// read, update and filter operations the services build on, with errors
// wrapped by operation name.
package repository

import (
	"context"
	"errors"
	"fmt"

	"database/sql"

	// Registers the pgx driver for use with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned by single-record reads and updates when the id
// does not resolve to an existing record.
var ErrNotFound = errors.New("record not found")

// Storage encapsulates the PostgreSQL connection and implements the
// repository methods for all three entities.
type Storage struct {
	DB *sql.DB
}

// New opens a connection to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'subscribers'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table subscribers missing or query error: %w", err)
	}
	return nil
}
