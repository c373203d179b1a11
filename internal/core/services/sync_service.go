package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/utils"
)

const defaultMutationTimeout = 15 * time.Second

// summaryEpsilon is the tolerated absolute difference between the backend's
// reported balance and the locally recomputed one before the recomputed
// value takes over.
var summaryEpsilon = decimal.RequireFromString("0.005")

// membershipResolver is the slice of the membership service the sync
// orchestrator needs for permission checks on shared ledgers.
type membershipResolver interface {
	MembershipFor(ctx context.Context, userID, accountID string) (*domain.AccountMember, error)
}

// SyncService orchestrates cache-first loads and optimistic mutations per
// ledger. It owns the published in-memory state, the per-key load
// generations, and the active-ledger tag that gates publication.
type SyncService struct {
	BaseService
	gateway    portssvc.TransactionGateway
	cache      portsrepo.CacheRepository
	membership membershipResolver
	telemetry  *utils.PosthogClientWrapper

	mutationTimeout time.Duration

	group singleflight.Group

	mu          sync.Mutex
	states      map[string]*domain.LedgerState
	generations map[string]uint64
	activeKey   string
}

// NewSyncService creates a new SyncService.
func NewSyncService(gateway portssvc.TransactionGateway, cache portsrepo.CacheRepository, membership membershipResolver, telemetry *utils.PosthogClientWrapper, mutationTimeout time.Duration) portssvc.SyncSvcFacade {
	if mutationTimeout <= 0 {
		mutationTimeout = defaultMutationTimeout
	}
	return &SyncService{
		gateway:         gateway,
		cache:           cache,
		membership:      membership,
		telemetry:       telemetry,
		mutationTimeout: mutationTimeout,
		states:          make(map[string]*domain.LedgerState),
		generations:     make(map[string]uint64),
	}
}

var _ portssvc.SyncSvcFacade = (*SyncService)(nil)

// ActivateLedger marks the ledger as the active view. In-flight loads for
// other keys keep running and still land in the cache, but their results are
// no longer published.
func (s *SyncService) ActivateLedger(ledger domain.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeKey = ledger.CacheKey()
}

// CurrentState returns a deep copy of the published state for the ledger key.
func (s *SyncService) CurrentState(ledgerKey string) (*domain.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[ledgerKey]
	if !ok {
		return nil, fmt.Errorf("no state loaded for ledger %s: %w", ledgerKey, apperrors.ErrNotFound)
	}
	return st.Clone(), nil
}

// LoadLedger loads the ledger's transactions and summary. Without
// forceReload a cached copy, when present, is published immediately as
// provisional and concurrent callers for the same key share one remote
// refresh. With forceReload the remote is always consulted and the
// singleflight group is bypassed.
func (s *SyncService) LoadLedger(ctx context.Context, ledger domain.Ledger, userID string, forceReload bool) (*domain.LedgerState, error) {
	key := ledger.CacheKey()

	if forceReload {
		return s.refresh(ctx, ledger, userID)
	}

	if cached := s.readCache(ctx, key); cached != nil {
		cached.Provisional = true
		s.publishProvisional(key, cached)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.refresh(ctx, ledger, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.LedgerState).Clone(), nil
}

// refresh performs one remote load for the ledger, reconciles the summary,
// writes the cache and publishes the result unless a newer load for the same
// key started in the meantime or the key lost active status.
func (s *SyncService) refresh(ctx context.Context, ledger domain.Ledger, userID string) (*domain.LedgerState, error) {
	key := ledger.CacheKey()
	gen := s.beginGeneration(key)
	filter := ledger.WireFilter()

	var (
		remoteTxns    []domain.Transaction
		remoteSummary *domain.Summary
		listErr       error
		summaryErr    error
		wg            sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		remoteTxns, listErr = s.gateway.List(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		remoteSummary, summaryErr = s.gateway.Summarize(ctx, filter)
	}()
	wg.Wait()

	if listErr != nil {
		return s.degrade(ctx, key, userID, gen, listErr)
	}

	now := time.Now().UTC()
	filtered := domain.FilterForLedger(remoteTxns, key)
	st := &domain.LedgerState{
		LedgerKey:    key,
		Transactions: filtered,
		FetchedAt:    now,
	}
	st.Summary = s.reconcileSummary(ctx, key, userID, filtered, remoteSummary, summaryErr, &st.SummaryMismatch)

	if err := s.cache.PutTransactions(ctx, key, domain.TransactionSnapshot{Transactions: filtered, FetchedAt: now}); err != nil {
		s.LogError(ctx, err, "failed to cache transactions", slog.String("ledger", key))
	}
	if err := s.cache.PutSummary(ctx, key, domain.SummarySnapshot{Summary: st.Summary, FetchedAt: now}); err != nil {
		s.LogError(ctx, err, "failed to cache summary", slog.String("ledger", key))
	}

	s.publish(key, gen, st)
	return st.Clone(), nil
}

// degrade serves the cached copy, flagged stale, when the remote list fetch
// failed. With no cached copy the network error surfaces to the caller. The
// publication is generation gated like a successful load's; a slow failure
// must not overwrite state a newer load already installed.
func (s *SyncService) degrade(ctx context.Context, key, userID string, gen uint64, cause error) (*domain.LedgerState, error) {
	s.LogWarn(ctx, "remote load failed, serving cached data", slog.String("ledger", key), slog.String("error", cause.Error()))
	if s.telemetry != nil {
		s.telemetry.Enqueue(userID, "sync_degraded", map[string]any{"ledger": key})
	}

	cached := s.readCache(ctx, key)
	if cached == nil {
		return nil, fmt.Errorf("loading ledger %s: %w", key, cause)
	}
	cached.Degraded = true

	s.publish(key, gen, cached)
	return cached, nil
}

// reconcileSummary picks between the backend's reported summary and the one
// recomputed from the filtered list. The recomputed one wins when the
// reported balance is off by more than the tolerance, or when the summary
// fetch failed outright.
func (s *SyncService) reconcileSummary(ctx context.Context, key, userID string, filtered []domain.Transaction, reported *domain.Summary, fetchErr error, mismatch *bool) domain.Summary {
	recomputed := domain.ComputeSummary(filtered)
	if fetchErr != nil || reported == nil {
		if fetchErr != nil {
			s.LogWarn(ctx, "summary fetch failed, using recomputed totals", slog.String("ledger", key), slog.String("error", fetchErr.Error()))
		}
		return recomputed
	}
	if reported.BalanceDiffers(recomputed, summaryEpsilon) {
		*mismatch = true
		mismatchErr := &apperrors.ReconciliationMismatch{
			LedgerKey:  key,
			Reported:   reported.Balance.String(),
			Recomputed: recomputed.Balance.String(),
		}
		s.LogWarn(ctx, mismatchErr.Error(), slog.String("ledger", key))
		if s.telemetry != nil {
			s.telemetry.Enqueue(userID, "summary_mismatch", map[string]any{
				"ledger":     key,
				"reported":   reported.Balance.String(),
				"recomputed": recomputed.Balance.String(),
			})
		}
		return recomputed
	}
	reported.TransactionCount = recomputed.TransactionCount
	return *reported
}

// Mutate validates permissions, applies the mutation to the published state
// optimistically, then performs the remote call. On success the cache entry
// is invalidated and a forced reload re-establishes the authoritative
// snapshot. On failure the pre-mutation snapshot is restored and the forced
// reload runs in the background.
func (s *SyncService) Mutate(ctx context.Context, action domain.MutationAction, ledger domain.Ledger, userID string, txn domain.Transaction) (*domain.LedgerState, error) {
	key := ledger.CacheKey()

	if !ledger.IsPersonal() {
		var membership *domain.AccountMember
		if s.membership != nil {
			m, err := s.membership.MembershipFor(ctx, userID, key)
			if err != nil {
				return nil, fmt.Errorf("resolving membership for account %s: %w", key, err)
			}
			membership = m
		}
		if err := ValidateTransactionAction(domain.User{ID: userID}, action, &txn, key, membership); err != nil {
			return nil, err
		}
	}

	snapshot := s.baseState(ctx, key)
	optimistic := applyMutation(snapshot.Clone(), action, txn)
	s.publishOptimistic(key, optimistic)

	callCtx, cancel := context.WithTimeout(ctx, s.mutationTimeout)
	defer cancel()

	var (
		updated []domain.Transaction
		err     error
	)
	filter := ledger.WireFilter()
	switch action {
	case domain.MutationAdd:
		updated, err = s.gateway.Create(callCtx, filter, txn)
	case domain.MutationEdit:
		updated, err = s.gateway.Update(callCtx, filter, txn.ID, txn)
	case domain.MutationDelete:
		updated, err = s.gateway.Delete(callCtx, filter, txn.ID)
	default:
		return nil, fmt.Errorf("unknown mutation action %q: %w", action, apperrors.ErrValidation)
	}

	if err != nil {
		// A timed-out delete may have been applied by the backend. Keep
		// the optimistic removal and let the forced reload settle it.
		if action == domain.MutationDelete && errors.Is(err, context.DeadlineExceeded) {
			s.LogWarn(ctx, "delete timed out, assuming it succeeded", slog.String("ledger", key), slog.String("transaction_id", txn.ID))
			s.reloadInBackground(ctx, ledger, userID)
			return optimistic.Clone(), nil
		}
		return s.rollback(ctx, ledger, userID, action, snapshot, err)
	}

	// The optimistic state is never trusted as final. Drop the cache entry
	// and re-establish an authoritative snapshot from the backend.
	if cacheErr := s.cache.Invalidate(ctx, key); cacheErr != nil {
		s.LogWarn(ctx, "failed to invalidate cache after mutation", slog.String("ledger", key), slog.String("error", cacheErr.Error()))
	}
	st, reloadErr := s.refresh(ctx, ledger, userID)
	if reloadErr != nil {
		// The mutation itself landed and the gateway echoed the updated
		// list, so publish that rather than failing the whole call.
		s.LogWarn(ctx, "post-mutation reload failed, publishing gateway response", slog.String("ledger", key), slog.String("error", reloadErr.Error()))
		return s.publishMutationResult(ctx, key, action, updated, optimistic), nil
	}
	return st, nil
}

// publishMutationResult builds state from a mutation's response list when the
// follow-up reload could not run. A delete that returned no body confirms
// the removal without echoing the list, so the optimistic list stands.
func (s *SyncService) publishMutationResult(ctx context.Context, key string, action domain.MutationAction, updated []domain.Transaction, optimistic *domain.LedgerState) *domain.LedgerState {
	now := time.Now().UTC()
	filtered := domain.FilterForLedger(updated, key)
	if updated == nil && action == domain.MutationDelete {
		filtered = optimistic.Transactions
	}
	st := &domain.LedgerState{
		LedgerKey:    key,
		Transactions: filtered,
		Summary:      domain.ComputeSummary(filtered),
		FetchedAt:    now,
	}
	if cacheErr := s.cache.PutTransactions(ctx, key, domain.TransactionSnapshot{Transactions: filtered, FetchedAt: now}); cacheErr != nil {
		s.LogError(ctx, cacheErr, "failed to cache transactions", slog.String("ledger", key))
	}
	if cacheErr := s.cache.PutSummary(ctx, key, domain.SummarySnapshot{Summary: st.Summary, FetchedAt: now}); cacheErr != nil {
		s.LogError(ctx, cacheErr, "failed to cache summary", slog.String("ledger", key))
	}

	s.mu.Lock()
	s.states[key] = st.Clone()
	s.mu.Unlock()
	return st
}

// rollback restores the pre-mutation snapshot and schedules a forced reload
// so the published state reconverges with the backend.
func (s *SyncService) rollback(ctx context.Context, ledger domain.Ledger, userID string, action domain.MutationAction, snapshot *domain.LedgerState, cause error) (*domain.LedgerState, error) {
	key := ledger.CacheKey()
	s.LogError(ctx, cause, "mutation failed, rolling back", slog.String("ledger", key), slog.String("action", string(action)))
	if s.telemetry != nil {
		s.telemetry.Enqueue(userID, "mutation_rollback", map[string]any{"ledger": key, "action": string(action)})
	}

	s.mu.Lock()
	s.states[key] = snapshot.Clone()
	s.mu.Unlock()

	s.reloadInBackground(ctx, ledger, userID)
	return nil, fmt.Errorf("applying %s on ledger %s: %w", action, key, cause)
}

func (s *SyncService) reloadInBackground(ctx context.Context, ledger domain.Ledger, userID string) {
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		reloadCtx, cancel := context.WithTimeout(bgCtx, s.mutationTimeout)
		defer cancel()
		if _, err := s.refresh(reloadCtx, ledger, userID); err != nil {
			s.LogWarn(reloadCtx, "background reload failed", slog.String("ledger", ledger.CacheKey()), slog.String("error", err.Error()))
		}
	}()
}

// baseState returns the state a mutation starts from: the published state
// when present, otherwise the cached copy, otherwise an empty ledger.
func (s *SyncService) baseState(ctx context.Context, key string) *domain.LedgerState {
	s.mu.Lock()
	st, ok := s.states[key]
	if ok {
		defer s.mu.Unlock()
		return st.Clone()
	}
	s.mu.Unlock()

	if cached := s.readCache(ctx, key); cached != nil {
		return cached
	}
	return &domain.LedgerState{LedgerKey: key, Transactions: []domain.Transaction{}}
}

// applyMutation edits the state in place and recomputes its summary.
func applyMutation(st *domain.LedgerState, action domain.MutationAction, txn domain.Transaction) *domain.LedgerState {
	switch action {
	case domain.MutationAdd:
		st.Transactions = append([]domain.Transaction{txn}, st.Transactions...)
	case domain.MutationEdit:
		for i := range st.Transactions {
			if st.Transactions[i].ID == txn.ID {
				st.Transactions[i] = txn
				break
			}
		}
	case domain.MutationDelete:
		kept := st.Transactions[:0]
		for _, t := range st.Transactions {
			if t.ID != txn.ID {
				kept = append(kept, t)
			}
		}
		st.Transactions = kept
	}
	st.Summary = domain.ComputeSummary(st.Transactions)
	st.Provisional = true
	st.FetchedAt = time.Now().UTC()
	return st
}

// readCache assembles a ledger state from the durable cache, or nil when the
// transaction snapshot is absent. Cached snapshots go through the ledger
// filter like remote ones; entries another ledger wrote into the slot must
// not surface here either.
func (s *SyncService) readCache(ctx context.Context, key string) *domain.LedgerState {
	snap, err := s.cache.GetTransactions(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "cache read failed", slog.String("ledger", key), slog.String("error", err.Error()))
		}
		return nil
	}

	filtered := domain.FilterForLedger(snap.Transactions, key)
	st := &domain.LedgerState{
		LedgerKey:    key,
		Transactions: filtered,
		FetchedAt:    snap.FetchedAt,
	}
	if len(filtered) != len(snap.Transactions) {
		s.LogWarn(ctx, "cached snapshot held foreign ledger entries",
			slog.String("ledger", key), slog.Int("dropped", len(snap.Transactions)-len(filtered)))
		st.Summary = domain.ComputeSummary(filtered)
		return st
	}
	if sumSnap, err := s.cache.GetSummary(ctx, key); err == nil {
		st.Summary = sumSnap.Summary
	} else {
		st.Summary = domain.ComputeSummary(filtered)
	}
	return st
}

// beginGeneration records the start of a load for the key and returns its
// generation number. A completion publishes only while its generation is
// still the latest.
func (s *SyncService) beginGeneration(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	return s.generations[key]
}

// publish installs the state for the key unless a newer load started or the
// key is no longer the active ledger. Discarded completions have already
// been cached by the caller.
func (s *SyncService) publish(key string, gen uint64, st *domain.LedgerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		return
	}
	if s.activeKey != "" && s.activeKey != key {
		return
	}
	s.states[key] = st.Clone()
}

// publishProvisional installs a cached copy ahead of a refresh, without
// overwriting fresher published state.
func (s *SyncService) publishProvisional(key string, st *domain.LedgerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.states[key]; ok {
		return
	}
	if s.activeKey != "" && s.activeKey != key {
		return
	}
	s.states[key] = st.Clone()
}

func (s *SyncService) publishOptimistic(key string, st *domain.LedgerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = st.Clone()
}
