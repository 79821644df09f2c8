package handlers

import (
	"fmt"
	"net/http"

	"fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionResult struct {
	Message     string             `json:"message"`
	Transaction models.Transaction `json:"transaction"`
}

// createTransaction records a transaction through the API and returns the
// stored row.
func (suite *HandlersTestSuite) createTransaction(token string, userID int64, amount, description, date, transactionType string) models.Transaction {
	w := suite.do("POST", "/api/transactions", token, map[string]any{
		"amount":      amount,
		"description": description,
		"category_id": suite.expenseCategoryID(userID),
		"date":        date,
		"type":        transactionType,
	})
	require.Equal(suite.T(), http.StatusOK, w.Code, "create transaction failed: %s", w.Body.String())

	var res transactionResult
	suite.decode(w, &res)
	return res.Transaction
}

func (suite *HandlersTestSuite) TestCreateTransaction() {
	res := suite.registerUser("Alice", "alice@example.com")

	created := suite.createTransaction(res.Token, res.User.ID, "12.50", "Lunch", "2024-03-15", "expense")

	assert.NotZero(suite.T(), created.ID)
	assert.Equal(suite.T(), "12.5", created.Amount.String())
	assert.Equal(suite.T(), "Lunch", created.Description)
	assert.Equal(suite.T(), "2024-03-15", created.Date)
	assert.Equal(suite.T(), models.TypeExpense, created.Type)
	require.NotNil(suite.T(), created.CategoryName)
	assert.Equal(suite.T(), "Bills & Utilities", *created.CategoryName)
}

func (suite *HandlersTestSuite) TestCreateTransactionValidation() {
	res := suite.registerUser("Alice", "alice@example.com")

	cases := []map[string]any{
		{"description": "Lunch", "category_id": 1, "date": "2024-03-15", "type": "expense"},
		{"amount": "12.50", "category_id": 1, "date": "2024-03-15", "type": "expense"},
		{"amount": "12.50", "description": "Lunch", "date": "2024-03-15", "type": "expense"},
		{"amount": "12.50", "description": "Lunch", "category_id": 1, "type": "expense"},
		{"amount": "12.50", "description": "Lunch", "category_id": 1, "date": "2024-03-15"},
		{"amount": "0", "description": "Lunch", "category_id": 1, "date": "2024-03-15", "type": "expense"},
	}
	for i, body := range cases {
		w := suite.do("POST", "/api/transactions", res.Token, body)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "case %d", i)
		assert.Contains(suite.T(), w.Body.String(), "All fields are required", "case %d", i)
	}
}

func (suite *HandlersTestSuite) TestListTransactions() {
	res := suite.registerUser("Alice", "alice@example.com")

	// Empty list is an array, not null.
	w := suite.do("GET", "/api/transactions", res.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "[]\n", w.Body.String())

	suite.createTransaction(res.Token, res.User.ID, "10", "Older", "2024-03-01", "expense")
	suite.createTransaction(res.Token, res.User.ID, "20", "Newer", "2024-03-20", "expense")

	w = suite.do("GET", "/api/transactions", res.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var transactions []models.Transaction
	suite.decode(w, &transactions)
	require.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), "Newer", transactions[0].Description)
	assert.Equal(suite.T(), "Older", transactions[1].Description)
}

func (suite *HandlersTestSuite) TestListTransactionsScopedToOwner() {
	alice := suite.registerUser("Alice", "alice@example.com")
	bob := suite.registerUser("Bob", "bob@example.com")

	suite.createTransaction(alice.Token, alice.User.ID, "10", "Alice's lunch", "2024-03-15", "expense")

	w := suite.do("GET", "/api/transactions", bob.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var transactions []models.Transaction
	suite.decode(w, &transactions)
	assert.Empty(suite.T(), transactions)
}

func (suite *HandlersTestSuite) TestDeleteTransaction() {
	res := suite.registerUser("Alice", "alice@example.com")
	created := suite.createTransaction(res.Token, res.User.ID, "10", "Lunch", "2024-03-15", "expense")

	w := suite.do("DELETE", fmt.Sprintf("/api/transactions/%d", created.ID), res.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Transaction deleted successfully")

	// A second delete reports not found.
	w = suite.do("DELETE", fmt.Sprintf("/api/transactions/%d", created.ID), res.Token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Transaction not found")
}

func (suite *HandlersTestSuite) TestDeleteTransactionOtherUsers() {
	alice := suite.registerUser("Alice", "alice@example.com")
	bob := suite.registerUser("Bob", "bob@example.com")
	created := suite.createTransaction(alice.Token, alice.User.ID, "10", "Lunch", "2024-03-15", "expense")

	// Someone else's transaction looks identical to a missing one.
	w := suite.do("DELETE", fmt.Sprintf("/api/transactions/%d", created.ID), bob.Token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Transaction not found")

	// And the row survives.
	w = suite.do("GET", "/api/transactions", alice.Token, nil)
	var transactions []models.Transaction
	suite.decode(w, &transactions)
	assert.Len(suite.T(), transactions, 1)
}

func (suite *HandlersTestSuite) TestDeleteTransactionInvalidID() {
	res := suite.registerUser("Alice", "alice@example.com")

	w := suite.do("DELETE", "/api/transactions/abc", res.Token, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid transaction ID")
}
