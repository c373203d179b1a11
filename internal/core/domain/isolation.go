package domain

import (
	"strconv"
	"strings"
)

// FilterForLedger returns the subset of transactions owned by the given
// ledger key. It is applied to every transaction list regardless of origin
// (cache or network) as the last line of defense against a backend or cache
// bug leaking another ledger's entries into the current view.
//
// Classification is fail-closed: a transaction whose ledger id is ambiguous
// or unparseable matches no ledger and is excluded everywhere. The function
// is pure, deterministic and total.
func FilterForLedger(transactions []Transaction, ledgerKey string) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if MatchesLedger(txn.LedgerID, ledgerKey) {
			out = append(out, txn)
		}
	}
	return out
}

// MatchesLedger reports whether a transaction's effective ledger id belongs
// to the ledger identified by ledgerKey.
//
// Personal keeps entries whose id is empty, the literal "personal", or zero;
// the backend has historically marked personal entries all three ways. Shared
// ledgers keep entries whose id equals the key compared as a string or, when
// both parse, as a number ("007" still belongs to ledger "7").
func MatchesLedger(ledgerID, ledgerKey string) bool {
	id := strings.TrimSpace(ledgerID)
	if ledgerKey == PersonalLedgerKey {
		if id == "" || strings.EqualFold(id, PersonalLedgerKey) {
			return true
		}
		// Zero ids mark personal entries too, in whatever spelling the
		// backend used ("0", "00").
		n, err := strconv.ParseInt(id, 10, 64)
		return err == nil && n == 0
	}
	if id == ledgerKey {
		return true
	}
	idNum, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false
	}
	keyNum, err := strconv.ParseInt(ledgerKey, 10, 64)
	if err != nil {
		return false
	}
	return idNum == keyNum
}
