package handlers

import (
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) getSummary(token, month string) summaryResponse {
	path := "/api/transactions/summary"
	if month != "" {
		path += "?month=" + month
	}
	w := suite.do("GET", path, token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code, "summary failed: %s", w.Body.String())

	var res summaryResponse
	suite.decode(w, &res)
	return res
}

func (suite *HandlersTestSuite) TestSummaryEmpty() {
	res := suite.registerUser("Alice", "alice@example.com")

	summary := suite.getSummary(res.Token, "")
	assert.True(suite.T(), summary.TotalIncome.IsZero())
	assert.True(suite.T(), summary.TotalExpenses.IsZero())
	assert.True(suite.T(), summary.Balance.IsZero())
	assert.Empty(suite.T(), summary.RecentTransactions)
	assert.NotNil(suite.T(), summary.RecentTransactions)
}

func (suite *HandlersTestSuite) TestSummaryTotalsAndBalance() {
	res := suite.registerUser("Alice", "alice@example.com")

	suite.createTransaction(res.Token, res.User.ID, "100", "Paycheck", "2024-03-01", "income")
	suite.createTransaction(res.Token, res.User.ID, "12.50", "Lunch", "2024-03-15", "expense")
	suite.createTransaction(res.Token, res.User.ID, "7.50", "Coffee", "2024-03-16", "expense")

	summary := suite.getSummary(res.Token, "2024-03")
	assert.Equal(suite.T(), "100", summary.TotalIncome.String())
	assert.Equal(suite.T(), "20", summary.TotalExpenses.String())
	assert.Equal(suite.T(), "80", summary.Balance.String())
	assert.Len(suite.T(), summary.RecentTransactions, 3)
	assert.Equal(suite.T(), "Coffee", summary.RecentTransactions[0].Description)
}

func (suite *HandlersTestSuite) TestSummaryMonthFilterSkipsRecent() {
	res := suite.registerUser("Alice", "alice@example.com")

	suite.createTransaction(res.Token, res.User.ID, "12.50", "Lunch", "2024-03-15", "expense")

	// Totals follow the requested month; the activity feed does not.
	summary := suite.getSummary(res.Token, "2024-04")
	assert.True(suite.T(), summary.TotalIncome.IsZero())
	assert.True(suite.T(), summary.TotalExpenses.IsZero())
	require.Len(suite.T(), summary.RecentTransactions, 1)
	assert.Equal(suite.T(), "Lunch", summary.RecentTransactions[0].Description)
}

func (suite *HandlersTestSuite) TestSummaryDefaultsToCurrentMonth() {
	res := suite.registerUser("Alice", "alice@example.com")

	today := time.Now().Format("2006-01-02")
	suite.createTransaction(res.Token, res.User.ID, "42", "Groceries", today, "expense")

	summary := suite.getSummary(res.Token, "")
	assert.Equal(suite.T(), "42", summary.TotalExpenses.String())
}

func (suite *HandlersTestSuite) TestSummaryRecentLimit() {
	res := suite.registerUser("Alice", "alice@example.com")

	for day := 1; day <= 7; day++ {
		date := time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		suite.createTransaction(res.Token, res.User.ID, "5", "Snack", date, "expense")
	}

	summary := suite.getSummary(res.Token, "2024-03")
	require.Len(suite.T(), summary.RecentTransactions, 5)
	assert.Equal(suite.T(), "2024-03-07", summary.RecentTransactions[0].Date)
	assert.Equal(suite.T(), "2024-03-03", summary.RecentTransactions[4].Date)
}

func (suite *HandlersTestSuite) TestSummaryScopedToOwner() {
	alice := suite.registerUser("Alice", "alice@example.com")
	bob := suite.registerUser("Bob", "bob@example.com")

	suite.createTransaction(alice.Token, alice.User.ID, "100", "Paycheck", "2024-03-01", "income")

	summary := suite.getSummary(bob.Token, "2024-03")
	assert.True(suite.T(), summary.TotalIncome.IsZero())
	assert.Empty(suite.T(), summary.RecentTransactions)
}
