package storage

import (
	"fintrack/internal/models"
)

// ListCategories returns the default categories plus the user's own,
// optionally filtered by type, ordered by type then name.
func (db *DB) ListCategories(userID int64, typeFilter string) ([]models.Category, error) {
	query := "SELECT id, name, type, user_id, is_default FROM categories WHERE (user_id = ? OR user_id IS NULL)"
	args := []any{userID}
	if typeFilter != "" {
		query += " AND type = ?"
		args = append(args, typeFilter)
	}
	query += " ORDER BY type, name"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.UserID, &c.IsDefault); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CreateCategory inserts a custom category owned by the user and returns its id.
func (db *DB) CreateCategory(userID int64, name, categoryType string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO categories (name, type, user_id, is_default) VALUES (?, ?, ?, 0)",
		name, categoryType, userID,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
