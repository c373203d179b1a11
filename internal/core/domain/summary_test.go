package domain_test

import (
	"testing"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTransactionType(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.TransactionType
		ok   bool
	}{
		{"INCOME", domain.Income, true},
		{"income", domain.Income, true},
		{" Credit ", domain.Income, true},
		{"in", domain.Income, true},
		{"inc", domain.Income, true},
		{"i", domain.Income, true},
		{"EXPENSE", domain.Expense, true},
		{"debit", domain.Expense, true},
		{"out", domain.Expense, true},
		{"exp", domain.Expense, true},
		{"ex", domain.Expense, true},
		{"e", domain.Expense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := domain.NormalizeTransactionType(tt.raw)
		assert.Equalf(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equalf(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestComputeSummary(t *testing.T) {
	list := []domain.Transaction{
		{ID: "1", Type: domain.Income, Amount: decimal.NewFromInt(100)},
		{ID: "2", Type: domain.Expense, Amount: decimal.NewFromInt(40)},
		{ID: "3", Type: domain.Income, Amount: decimal.RequireFromString("10.50")},
	}

	got := domain.ComputeSummary(list)

	assert.True(t, got.TotalIncome.Equal(decimal.RequireFromString("110.50")))
	assert.True(t, got.TotalExpense.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("70.50")))
	assert.Equal(t, 3, got.TransactionCount)
}

func TestComputeSummary_Empty(t *testing.T) {
	got := domain.ComputeSummary(nil)
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, 0, got.TransactionCount)
}

func TestSummary_BalanceDiffers(t *testing.T) {
	eps := decimal.RequireFromString("0.005")
	recomputed := domain.Summary{Balance: decimal.NewFromInt(100)}

	within := domain.Summary{Balance: decimal.RequireFromString("100.004")}
	beyond := domain.Summary{Balance: decimal.RequireFromString("99.50")}

	assert.False(t, recomputed.BalanceDiffers(within, eps))
	assert.True(t, recomputed.BalanceDiffers(beyond, eps))
}

func TestTransaction_SignedAmount(t *testing.T) {
	income := domain.Transaction{Type: domain.Income, Amount: decimal.NewFromInt(25)}
	expense := domain.Transaction{Type: domain.Expense, Amount: decimal.NewFromInt(25)}

	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(25)))
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-25)))
}
