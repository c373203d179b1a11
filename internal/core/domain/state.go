package domain

import "time"

// LedgerState is the application state published to UI consumers for one
// ledger: the filtered transaction list, the reconciled summary, and the
// freshness flags.
type LedgerState struct {
	LedgerKey    string        `json:"ledgerKey"`
	Transactions []Transaction `json:"transactions"`
	Summary      Summary       `json:"summary"`

	// Degraded is set when the most recent network refresh failed and the
	// displayed data may be stale.
	Degraded bool `json:"degraded"`

	// SummaryMismatch is set when the backend summary disagreed with the
	// recomputed one and the recomputed value was preferred.
	SummaryMismatch bool `json:"summaryMismatch,omitempty"`

	// Provisional is set while cached data is shown ahead of an in-flight
	// network refresh.
	Provisional bool `json:"provisional,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// Clone returns a deep copy of the state. Mutations operate on copies and
// swap whole snapshots so that rollback restores the exact previous state.
func (s *LedgerState) Clone() *LedgerState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Transactions = make([]Transaction, len(s.Transactions))
	copy(cp.Transactions, s.Transactions)
	return &cp
}

// TransactionSnapshot is the cached transaction list for one ledger key.
type TransactionSnapshot struct {
	Transactions []Transaction `json:"transactions"`
	FetchedAt    time.Time     `json:"fetchedAt"`
}

// SummarySnapshot is the cached summary for one ledger key.
type SummarySnapshot struct {
	Summary   Summary   `json:"summary"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// MemberSnapshot is the cached member list for one shared account.
type MemberSnapshot struct {
	Members   []AccountMember `json:"members"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// MutationAction identifies the kind of transaction mutation requested.
type MutationAction string

const (
	MutationAdd    MutationAction = "add"
	MutationEdit   MutationAction = "edit"
	MutationDelete MutationAction = "delete"
)
