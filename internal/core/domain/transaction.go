package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is income or an expense.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Synonym sets the backend has been observed to emit for the two transaction
// types. Matching is case-insensitive after trimming.
var (
	incomeSynonyms  = map[string]struct{}{"income": {}, "in": {}, "credit": {}, "i": {}, "inc": {}}
	expenseSynonyms = map[string]struct{}{"expense": {}, "ex": {}, "out": {}, "debit": {}, "exp": {}, "e": {}}
)

// NormalizeTransactionType maps a raw wire type string onto the canonical
// TransactionType. The second return is false when the string matches neither
// synonym set.
func NormalizeTransactionType(raw string) (TransactionType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := incomeSynonyms[s]; ok {
		return Income, true
	}
	if _, ok := expenseSynonyms[s]; ok {
		return Expense, true
	}
	return "", false
}

// Transaction is the canonical internal transaction shape. All wire-format
// tolerance (legacy field names, type synonyms, signed amounts) is resolved
// at the dto boundary; downstream logic operates only on these fields.
type Transaction struct {
	ID string `json:"id"`

	// LedgerID is the owning ledger as received, canonicalized to a string:
	// empty for personal, a decimal account id for shared entries. A value
	// that matches no known ledger keeps its raw form so the isolation
	// filter can exclude it from every view.
	LedgerID string `json:"ledgerID"`

	Type TransactionType `json:"type"`

	// Amount is always a non-negative magnitude; the sign is derived from
	// Type at aggregation time, never stored.
	Amount decimal.Decimal `json:"amount"`

	CategoryID  string    `json:"categoryID"`
	Note        string    `json:"note,omitempty"`
	PaymentMode string    `json:"paymentMode,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedBy   string    `json:"createdBy"`
}

// SignedAmount returns the amount signed by type: income positive, expense
// negative.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
