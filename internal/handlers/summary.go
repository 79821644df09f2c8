package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// recentTransactionLimit caps the activity feed in the summary.
const recentTransactionLimit = 5

type summaryResponse struct {
	TotalIncome        decimal.Decimal      `json:"totalIncome"`
	TotalExpenses      decimal.Decimal      `json:"totalExpenses"`
	Balance            decimal.Decimal      `json:"balance"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
}

// Summary reports the month's income and expense totals plus recent activity.
// The month query parameter (YYYY-MM) defaults to the current month; recent
// transactions are not month-filtered. The three reads are independent
// queries, so a write landing between them can show up in one result and not
// another.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	claims := requireClaims(w, r)
	if claims == nil {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	income, err := h.db.MonthlyTotal(claims.UserID, models.TypeIncome, month)
	if err != nil {
		storageError(w, err)
		return
	}

	expenses, err := h.db.MonthlyTotal(claims.UserID, models.TypeExpense, month)
	if err != nil {
		storageError(w, err)
		return
	}

	recent, err := h.db.RecentTransactions(claims.UserID, recentTransactionLimit)
	if err != nil {
		storageError(w, err)
		return
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		Balance:            income.Sub(expenses),
		RecentTransactions: recent,
	})
}
