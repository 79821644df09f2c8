package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fintrack/internal/models"
	"fintrack/internal/storage"

	"github.com/shopspring/decimal"
)

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
}

// ListTransactions returns the caller's transactions, newest first.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	transactions, err := h.db.ListTransactions(claims.UserID)
	if err != nil {
		storageError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, transactions)
}

// CreateTransaction records a transaction for the caller and returns the
// stored row joined with its category name. Only field presence is validated;
// the category's owner and type are not checked against the transaction.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount.IsZero() || req.Description == "" || req.CategoryID == 0 || req.Date == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	transaction, err := h.db.CreateTransaction(claims.UserID, req.Amount, req.Description, req.CategoryID, req.Date, req.Type)
	if err != nil {
		storageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transaction": transaction,
		"message":     "Transaction added successfully",
	})
}

// DeleteTransaction removes one of the caller's transactions.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.db.DeleteTransaction(claims.UserID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		storageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}
