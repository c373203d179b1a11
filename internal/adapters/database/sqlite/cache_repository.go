package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
)

// Namespaces partition the cache table so each ledger key can hold a
// transaction list, a summary and a member list side by side.
const (
	nsTransactions = "txcache"
	nsSummary      = "summarycache"
	nsMembers      = "memberscache"
)

type SQLiteCacheRepository struct {
	db *sql.DB
}

// NewSQLiteCacheRepository creates the durable cache store on the given
// database handle.
func NewSQLiteCacheRepository(db *sql.DB) portsrepo.CacheRepository {
	return &SQLiteCacheRepository{db: db}
}

var _ portsrepo.CacheRepository = (*SQLiteCacheRepository)(nil)

func (r *SQLiteCacheRepository) get(ctx context.Context, namespace, cacheKey string, out any) (time.Time, error) {
	query := `
		SELECT payload, fetched_at
		FROM cache_entries
		WHERE namespace = ? AND cache_key = ?;
	`
	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query, namespace, cacheKey).Scan(&payload, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to read cache entry %s/%s: %w", namespace, cacheKey, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode cache entry %s/%s: %w", namespace, cacheKey, err)
	}
	return fetchedAt, nil
}

// put replaces the entry for (namespace, cacheKey) in one statement, so a
// reader sees either the old snapshot or the new one, never a mix.
func (r *SQLiteCacheRepository) put(ctx context.Context, namespace, cacheKey string, payload any, fetchedAt time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s/%s: %w", namespace, cacheKey, err)
	}

	query := `
		INSERT INTO cache_entries (namespace, cache_key, payload, fetched_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (namespace, cache_key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at,
			updated_at = excluded.updated_at;
	`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, namespace, cacheKey, data, fetchedAt.UTC(), now); err != nil {
		return fmt.Errorf("failed to write cache entry %s/%s: %w", namespace, cacheKey, err)
	}
	return nil
}

func (r *SQLiteCacheRepository) GetTransactions(ctx context.Context, cacheKey string) (*domain.TransactionSnapshot, error) {
	var txns []domain.Transaction
	fetchedAt, err := r.get(ctx, nsTransactions, cacheKey, &txns)
	if err != nil {
		return nil, err
	}
	return &domain.TransactionSnapshot{Transactions: txns, FetchedAt: fetchedAt}, nil
}

func (r *SQLiteCacheRepository) PutTransactions(ctx context.Context, cacheKey string, snap domain.TransactionSnapshot) error {
	return r.put(ctx, nsTransactions, cacheKey, snap.Transactions, snap.FetchedAt)
}

func (r *SQLiteCacheRepository) GetSummary(ctx context.Context, cacheKey string) (*domain.SummarySnapshot, error) {
	var summary domain.Summary
	fetchedAt, err := r.get(ctx, nsSummary, cacheKey, &summary)
	if err != nil {
		return nil, err
	}
	return &domain.SummarySnapshot{Summary: summary, FetchedAt: fetchedAt}, nil
}

func (r *SQLiteCacheRepository) PutSummary(ctx context.Context, cacheKey string, snap domain.SummarySnapshot) error {
	return r.put(ctx, nsSummary, cacheKey, snap.Summary, snap.FetchedAt)
}

func (r *SQLiteCacheRepository) GetMembers(ctx context.Context, cacheKey string) (*domain.MemberSnapshot, error) {
	var members []domain.AccountMember
	fetchedAt, err := r.get(ctx, nsMembers, cacheKey, &members)
	if err != nil {
		return nil, err
	}
	return &domain.MemberSnapshot{Members: members, FetchedAt: fetchedAt}, nil
}

func (r *SQLiteCacheRepository) PutMembers(ctx context.Context, cacheKey string, snap domain.MemberSnapshot) error {
	return r.put(ctx, nsMembers, cacheKey, snap.Members, snap.FetchedAt)
}

// Invalidate drops every namespace's entry for the cache key.
func (r *SQLiteCacheRepository) Invalidate(ctx context.Context, cacheKey string) error {
	query := `DELETE FROM cache_entries WHERE cache_key = ?;`
	if _, err := r.db.ExecContext(ctx, query, cacheKey); err != nil {
		return fmt.Errorf("failed to invalidate cache entries for %s: %w", cacheKey, err)
	}
	return nil
}
