package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// --- Mock TransactionGateway ---

type MockTransactionGateway struct {
	mock.Mock
}

func (m *MockTransactionGateway) List(ctx context.Context, filter domain.WireFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionGateway) Create(ctx context.Context, filter domain.WireFilter, txn domain.Transaction) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionGateway) Update(ctx context.Context, filter domain.WireFilter, id string, txn domain.Transaction) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter, id, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionGateway) Delete(ctx context.Context, filter domain.WireFilter, id string) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionGateway) Summarize(ctx context.Context, filter domain.WireFilter) (*domain.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

// --- Mock CacheRepository ---

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetTransactions(ctx context.Context, cacheKey string) (*domain.TransactionSnapshot, error) {
	args := m.Called(ctx, cacheKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSnapshot), args.Error(1)
}

func (m *MockCacheRepository) PutTransactions(ctx context.Context, cacheKey string, snap domain.TransactionSnapshot) error {
	args := m.Called(ctx, cacheKey, snap)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSummary(ctx context.Context, cacheKey string) (*domain.SummarySnapshot, error) {
	args := m.Called(ctx, cacheKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummarySnapshot), args.Error(1)
}

func (m *MockCacheRepository) PutSummary(ctx context.Context, cacheKey string, snap domain.SummarySnapshot) error {
	args := m.Called(ctx, cacheKey, snap)
	return args.Error(0)
}

func (m *MockCacheRepository) GetMembers(ctx context.Context, cacheKey string) (*domain.MemberSnapshot, error) {
	args := m.Called(ctx, cacheKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberSnapshot), args.Error(1)
}

func (m *MockCacheRepository) PutMembers(ctx context.Context, cacheKey string, snap domain.MemberSnapshot) error {
	args := m.Called(ctx, cacheKey, snap)
	return args.Error(0)
}

func (m *MockCacheRepository) Invalidate(ctx context.Context, cacheKey string) error {
	args := m.Called(ctx, cacheKey)
	return args.Error(0)
}

// --- Mock MembershipGateway ---

type MockMembershipGateway struct {
	mock.Mock
}

func (m *MockMembershipGateway) ListAccounts(ctx context.Context) ([]domain.SharedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SharedAccount), args.Error(1)
}

func (m *MockMembershipGateway) ListMembers(ctx context.Context, accountID string) ([]domain.AccountMember, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMember), args.Error(1)
}

func (m *MockMembershipGateway) UpdateMemberPermissions(ctx context.Context, accountID, memberID string, perms domain.MemberPermissions) (*domain.AccountMember, error) {
	args := m.Called(ctx, accountID, memberID, perms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMember), args.Error(1)
}

func (m *MockMembershipGateway) RemoveMember(ctx context.Context, accountID, memberID string) error {
	args := m.Called(ctx, accountID, memberID)
	return args.Error(0)
}

func (m *MockMembershipGateway) ListInvites(ctx context.Context) ([]domain.AccountInvite, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountInvite), args.Error(1)
}

func (m *MockMembershipGateway) RespondToInvite(ctx context.Context, inviteID string, accept bool) (*domain.AccountInvite, error) {
	args := m.Called(ctx, inviteID, accept)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountInvite), args.Error(1)
}

func (m *MockMembershipGateway) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockMembershipGateway) MarkNotificationRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

// --- Mock membership resolver for the sync service ---

type MockMembershipResolver struct {
	mock.Mock
}

func (m *MockMembershipResolver) MembershipFor(ctx context.Context, userID, accountID string) (*domain.AccountMember, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMember), args.Error(1)
}
