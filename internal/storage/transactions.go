package storage

import (
	"database/sql"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Fixed-width UTC layout so text ordering of created_at matches insertion order.
const timestampLayout = "2006-01-02 15:04:05.000000"

const transactionSelect = `
	SELECT t.id, t.amount, t.description, t.category_id, t.date, t.type, t.user_id, t.created_at, c.name AS category_name
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id`

// ListTransactions returns all of the user's transactions joined with their
// category names, newest first: date descending, creation time as tie-break.
func (db *DB) ListTransactions(userID int64) ([]models.Transaction, error) {
	rows, err := db.conn.Query(
		transactionSelect+" WHERE t.user_id = ? ORDER BY t.date DESC, t.created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

// CreateTransaction inserts a transaction for the user, then re-reads the
// stored row joined with its category name. Whether the category belongs to
// the user, or matches the transaction's type, is not checked.
func (db *DB) CreateTransaction(userID int64, amount decimal.Decimal, description string, categoryID int64, date, transactionType string) (*models.Transaction, error) {
	createdAt := time.Now().UTC().Format(timestampLayout)

	result, err := db.conn.Exec(
		"INSERT INTO transactions (amount, description, category_id, date, type, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		amount, description, categoryID, date, transactionType, userID, createdAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTransaction(id)
}

// GetTransaction retrieves a single transaction by ID joined with its
// category name.
func (db *DB) GetTransaction(id int64) (*models.Transaction, error) {
	row := db.conn.QueryRow(transactionSelect+" WHERE t.id = ?", id)

	var t models.Transaction
	if err := row.Scan(&t.ID, &t.Amount, &t.Description, &t.CategoryID, &t.Date, &t.Type, &t.UserID, &t.CreatedAt, &t.CategoryName); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTransaction removes the user's transaction. It returns ErrNotFound
// when the row does not exist or belongs to another user; the two cases are
// indistinguishable to callers.
func (db *DB) DeleteTransaction(userID, id int64) error {
	result, err := db.conn.Exec(
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MonthlyTotal sums the user's transaction amounts of the given type whose
// date falls in month (YYYY-MM). Zero when there are none.
func (db *DB) MonthlyTotal(userID int64, transactionType, month string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.conn.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND type = ? AND strftime('%Y-%m', date) = ?",
		userID, transactionType, month,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RecentTransactions returns the user's most recent transactions across all
// time, in the same order as ListTransactions.
func (db *DB) RecentTransactions(userID int64, limit int) ([]models.Transaction, error) {
	rows, err := db.conn.Query(
		transactionSelect+" WHERE t.user_id = ? ORDER BY t.date DESC, t.created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Description, &t.CategoryID, &t.Date, &t.Type, &t.UserID, &t.CreatedAt, &t.CategoryName); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
