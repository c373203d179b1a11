package domain_test

import (
	"testing"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txnWithLedger(id, ledgerID string) domain.Transaction {
	return domain.Transaction{
		ID:       id,
		LedgerID: ledgerID,
		Type:     domain.Income,
		Amount:   decimal.NewFromInt(10),
	}
}

func TestFilterForLedger_Personal(t *testing.T) {
	list := []domain.Transaction{
		txnWithLedger("1", ""),
		txnWithLedger("2", "personal"),
		txnWithLedger("3", "0"),
		txnWithLedger("4", "7"),
		txnWithLedger("5", "corrupted-id"),
	}

	got := domain.FilterForLedger(list, "personal")

	ids := make([]string, 0, len(got))
	for _, txn := range got {
		ids = append(ids, txn.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestFilterForLedger_Shared(t *testing.T) {
	list := []domain.Transaction{
		txnWithLedger("1", "7"),
		txnWithLedger("2", "007"), // same id, numeric comparison
		txnWithLedger("3", "8"),
		txnWithLedger("4", ""),
		txnWithLedger("5", "corrupted-id"),
	}

	got := domain.FilterForLedger(list, "7")

	ids := make([]string, 0, len(got))
	for _, txn := range got {
		ids = append(ids, txn.ID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
}

// Views for distinct ledger keys must never overlap, whatever the input.
func TestFilterForLedger_DisjointViews(t *testing.T) {
	list := []domain.Transaction{
		txnWithLedger("1", ""),
		txnWithLedger("2", "personal"),
		txnWithLedger("3", "0"),
		txnWithLedger("4", "7"),
		txnWithLedger("5", "8"),
		txnWithLedger("6", "corrupted-id"),
		txnWithLedger("7", "7 "),
	}

	keys := []string{"personal", "7", "8", "9"}
	seen := map[string]string{}
	for _, key := range keys {
		for _, txn := range domain.FilterForLedger(list, key) {
			prev, dup := seen[txn.ID]
			assert.Falsef(t, dup, "transaction %s matched both %s and %s", txn.ID, prev, key)
			seen[txn.ID] = key
		}
	}

	// The ambiguous id matched nobody: fail closed.
	_, matched := seen["6"]
	assert.False(t, matched)
}

func TestMatchesLedger_FailClosed(t *testing.T) {
	tests := []struct {
		name      string
		ledgerID  string
		ledgerKey string
		want      bool
	}{
		{"unparseable id excluded from shared", "abc", "7", false},
		{"unparseable id excluded from personal", "abc", "personal", false},
		{"empty excluded from shared", "", "7", false},
		{"numeric equality across formats", "07", "7", true},
		{"zero spelling kept by personal", "00", "personal", true},
		{"fractional zero excluded from personal", "0.0", "personal", false},
		{"different shared ledgers", "8", "7", false},
		{"whitespace trimmed", " 7 ", "7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MatchesLedger(tt.ledgerID, tt.ledgerKey))
		})
	}
}
