package storage

import (
	"fintrack/internal/models"
)

// CreateUser inserts a new user and returns the stored row.
func (db *DB) CreateUser(name, email, passwordHash string) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (name, email, password) VALUES (?, ?, ?)",
		name, email, passwordHash,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, name, password, created_at FROM users WHERE id = ?",
		id,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. The error is sql.ErrNoRows when
// no account matches.
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, email, name, password, created_at FROM users WHERE email = ?",
		email,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
