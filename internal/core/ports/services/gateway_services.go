package services

import (
	"context"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// TransactionGateway is the collaborator interface to the remote backend's
// transaction API, parameterized by ledger filter. Mutating calls return the
// backend's full updated transaction list for the filtered ledger.
//
// Transport failures are reported wrapped in apperrors.ErrNetwork so callers
// can distinguish transient faults from policy or validation errors.
type TransactionGateway interface {
	List(ctx context.Context, filter domain.WireFilter) ([]domain.Transaction, error)
	Create(ctx context.Context, filter domain.WireFilter, txn domain.Transaction) ([]domain.Transaction, error)
	Update(ctx context.Context, filter domain.WireFilter, id string, txn domain.Transaction) ([]domain.Transaction, error)
	Delete(ctx context.Context, filter domain.WireFilter, id string) ([]domain.Transaction, error)
	Summarize(ctx context.Context, filter domain.WireFilter) (*domain.Summary, error)
}

// MembershipGateway is the collaborator interface to the backend's
// account-management API: members, invitations and notifications.
type MembershipGateway interface {
	ListAccounts(ctx context.Context) ([]domain.SharedAccount, error)
	ListMembers(ctx context.Context, accountID string) ([]domain.AccountMember, error)
	UpdateMemberPermissions(ctx context.Context, accountID, memberID string, perms domain.MemberPermissions) (*domain.AccountMember, error)
	RemoveMember(ctx context.Context, accountID, memberID string) error

	ListInvites(ctx context.Context) ([]domain.AccountInvite, error)
	RespondToInvite(ctx context.Context, inviteID string, accept bool) (*domain.AccountInvite, error)

	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}
