package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/cashbook-app/cashbook-sync/internal/adapters/database/sqlite"
	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
	"github.com/cashbook-app/cashbook-sync/pkg/database"
)

type CacheRepositoryTestSuite struct {
	suite.Suite
	repo portsrepo.CacheRepository
}

func (suite *CacheRepositoryTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "cache.db")
	require.NoError(suite.T(), sqlite.RunMigrations(dbPath))

	db, err := database.NewSQLiteDB(dbPath)
	require.NoError(suite.T(), err)
	suite.T().Cleanup(func() { db.Close() })
	suite.repo = sqlite.NewSQLiteCacheRepository(db)
}

func (suite *CacheRepositoryTestSuite) TestGetTransactions_MissingReturnsNotFound() {
	_, err := suite.repo.GetTransactions(context.Background(), "personal")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CacheRepositoryTestSuite) TestTransactions_RoundTrip() {
	ctx := context.Background()
	fetchedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{
			ID:        "t-1",
			LedgerID:  "7",
			Type:      domain.Expense,
			Amount:    decimal.RequireFromString("12.34"),
			Note:      "coffee",
			Timestamp: fetchedAt,
			CreatedBy: "u-1",
		}},
		FetchedAt: fetchedAt,
	}

	suite.Require().NoError(suite.repo.PutTransactions(ctx, "7", snap))

	got, err := suite.repo.GetTransactions(ctx, "7")
	suite.Require().NoError(err)
	suite.Require().Len(got.Transactions, 1)
	suite.Equal("t-1", got.Transactions[0].ID)
	suite.Equal(domain.Expense, got.Transactions[0].Type)
	suite.True(got.Transactions[0].Amount.Equal(decimal.RequireFromString("12.34")))
	suite.True(got.FetchedAt.Equal(fetchedAt))
}

func (suite *CacheRepositoryTestSuite) TestPutTransactions_ReplacesWholeSnapshot() {
	ctx := context.Background()
	first := domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{ID: "t-1"}, {ID: "t-2"}},
		FetchedAt:    time.Now().UTC(),
	}
	second := domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{ID: "t-3"}},
		FetchedAt:    time.Now().UTC(),
	}

	suite.Require().NoError(suite.repo.PutTransactions(ctx, "personal", first))
	suite.Require().NoError(suite.repo.PutTransactions(ctx, "personal", second))

	got, err := suite.repo.GetTransactions(ctx, "personal")
	suite.Require().NoError(err)
	suite.Require().Len(got.Transactions, 1)
	suite.Equal("t-3", got.Transactions[0].ID)
}

func (suite *CacheRepositoryTestSuite) TestNamespaces_DoNotCollide() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.Require().NoError(suite.repo.PutTransactions(ctx, "7", domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{ID: "t-1"}},
		FetchedAt:    now,
	}))
	suite.Require().NoError(suite.repo.PutSummary(ctx, "7", domain.SummarySnapshot{
		Summary:   domain.Summary{TransactionCount: 1},
		FetchedAt: now,
	}))
	suite.Require().NoError(suite.repo.PutMembers(ctx, "7", domain.MemberSnapshot{
		Members:   []domain.AccountMember{{ID: "m-1", AccountID: "7", UserID: "u-1"}},
		FetchedAt: now,
	}))

	txns, err := suite.repo.GetTransactions(ctx, "7")
	suite.Require().NoError(err)
	suite.Len(txns.Transactions, 1)

	summary, err := suite.repo.GetSummary(ctx, "7")
	suite.Require().NoError(err)
	suite.Equal(1, summary.Summary.TransactionCount)

	members, err := suite.repo.GetMembers(ctx, "7")
	suite.Require().NoError(err)
	suite.Len(members.Members, 1)
}

func (suite *CacheRepositoryTestSuite) TestKeys_DoNotInterfere() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.Require().NoError(suite.repo.PutTransactions(ctx, "personal", domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{ID: "p-1"}},
		FetchedAt:    now,
	}))
	suite.Require().NoError(suite.repo.PutTransactions(ctx, "7", domain.TransactionSnapshot{
		Transactions: []domain.Transaction{{ID: "s-1"}},
		FetchedAt:    now,
	}))

	personal, err := suite.repo.GetTransactions(ctx, "personal")
	suite.Require().NoError(err)
	suite.Equal("p-1", personal.Transactions[0].ID)

	shared, err := suite.repo.GetTransactions(ctx, "7")
	suite.Require().NoError(err)
	suite.Equal("s-1", shared.Transactions[0].ID)
}

func (suite *CacheRepositoryTestSuite) TestInvalidate_DropsAllNamespacesForKey() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.Require().NoError(suite.repo.PutTransactions(ctx, "7", domain.TransactionSnapshot{FetchedAt: now}))
	suite.Require().NoError(suite.repo.PutSummary(ctx, "7", domain.SummarySnapshot{FetchedAt: now}))
	suite.Require().NoError(suite.repo.PutTransactions(ctx, "personal", domain.TransactionSnapshot{FetchedAt: now}))

	suite.Require().NoError(suite.repo.Invalidate(ctx, "7"))

	_, err := suite.repo.GetTransactions(ctx, "7")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.repo.GetSummary(ctx, "7")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// Other keys survive.
	_, err = suite.repo.GetTransactions(ctx, "personal")
	suite.NoError(err)
}

func TestCacheRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CacheRepositoryTestSuite))
}
