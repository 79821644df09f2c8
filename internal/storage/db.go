package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("not found")

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection, runs migrations and seeds the default
// categories.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one pooled connection also keeps
	// in-memory databases on the same handle across queries.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := db.seedDefaultCategories(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	driver, err := sqlite.WithInstance(db.conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Categories every user starts with.
var defaultCategories = []struct {
	Name string
	Type string
}{
	{"Food & Dining", models.TypeExpense},
	{"Transportation", models.TypeExpense},
	{"Shopping", models.TypeExpense},
	{"Entertainment", models.TypeExpense},
	{"Bills & Utilities", models.TypeExpense},
	{"Healthcare", models.TypeExpense},
	{"Salary", models.TypeIncome},
	{"Freelance", models.TypeIncome},
	{"Investments", models.TypeIncome},
	{"Gifts", models.TypeIncome},
}

// seedDefaultCategories inserts the default category set on first boot.
// The row-count guard keeps startup idempotent across restarts.
func (db *DB) seedDefaultCategories() error {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultCategories {
		if _, err := db.conn.Exec(
			"INSERT INTO categories (name, type, is_default) VALUES (?, ?, 1)",
			c.Name, c.Type,
		); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
