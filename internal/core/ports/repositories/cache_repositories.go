package repositories

import (
	"context"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// CacheRepository is the durable per-ledger cache store. Keys are the
// canonical ledger cache keys; each namespace (transactions, summary,
// members) is stored independently under a namespaced storage key.
//
// Guarantees required of implementations:
//   - Put is an atomic replace: readers observe either the previous snapshot
//     or the complete new one, never a partial write.
//   - No cross-key interference.
//   - No automatic expiry; staleness is the orchestrator's concern.
//
// Get methods return apperrors.ErrNotFound when no snapshot exists.
type CacheRepository interface {
	GetTransactions(ctx context.Context, cacheKey string) (*domain.TransactionSnapshot, error)
	PutTransactions(ctx context.Context, cacheKey string, snap domain.TransactionSnapshot) error

	GetSummary(ctx context.Context, cacheKey string) (*domain.SummarySnapshot, error)
	PutSummary(ctx context.Context, cacheKey string, snap domain.SummarySnapshot) error

	GetMembers(ctx context.Context, cacheKey string) (*domain.MemberSnapshot, error)
	PutMembers(ctx context.Context, cacheKey string, snap domain.MemberSnapshot) error

	// Invalidate removes every namespace stored for the given cache key.
	Invalidate(ctx context.Context, cacheKey string) error
}
