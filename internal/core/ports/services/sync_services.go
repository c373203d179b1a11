package services

import (
	"context"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// SyncReaderSvc loads ledger state, serving from the durable cache first and
// refreshing from the remote gateway in the background.
//
// LoadLedger guarantees at most one in-flight remote load per ledger key for
// non-forced calls. Results from a load that was superseded by a newer load
// for the same key, or whose key is no longer the active ledger, still land
// in the cache but are never published as current state.
type SyncReaderSvc interface {
	// LoadLedger resolves and loads the given ledger's transactions and
	// summary. With forceReload false the cached copy, when present, is
	// published immediately as provisional while the call waits on the
	// shared remote refresh. With forceReload true the remote is always
	// consulted and the refresh is not shared.
	LoadLedger(ctx context.Context, ledger domain.Ledger, userID string, forceReload bool) (*domain.LedgerState, error)

	// CurrentState returns a deep copy of the published state for the
	// ledger key, or apperrors.ErrNotFound when nothing has been loaded.
	CurrentState(ledgerKey string) (*domain.LedgerState, error)

	// ActivateLedger marks the ledger as the active view. Completions for
	// other keys stop publishing from this point on.
	ActivateLedger(ledger domain.Ledger)
}

// SyncMutatorSvc applies a transaction mutation optimistically: local state
// is updated first, the remote call follows, and on failure the pre-mutation
// snapshot is restored and a forced reload is scheduled.
type SyncMutatorSvc interface {
	Mutate(ctx context.Context, action domain.MutationAction, ledger domain.Ledger, userID string, txn domain.Transaction) (*domain.LedgerState, error)
}

// SyncSvcFacade is the full synchronization surface exposed to handlers.
type SyncSvcFacade interface {
	SyncReaderSvc
	SyncMutatorSvc
}
