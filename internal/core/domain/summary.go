package domain

import "github.com/shopspring/decimal"

// Summary aggregates a ledger's transaction list.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// ComputeSummary recomputes the summary from a transaction list by summing
// magnitudes grouped by type. The balance is always income minus expense over
// exactly the transactions given, so a summary computed from a filtered list
// can never disagree with what the user sees.
func ComputeSummary(transactions []Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, txn := range transactions {
		switch txn.Type {
		case Income:
			income = income.Add(txn.Amount.Abs())
		case Expense:
			expense = expense.Add(txn.Amount.Abs())
		}
	}
	return Summary{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          income.Sub(expense),
		TransactionCount: len(transactions),
	}
}

// BalanceDiffers reports whether another summary's balance diverges from this
// one by more than epsilon. Used to detect backend aggregates that disagree
// with the visible transaction list.
func (s Summary) BalanceDiffers(other Summary, epsilon decimal.Decimal) bool {
	return s.Balance.Sub(other.Balance).Abs().GreaterThan(epsilon)
}
