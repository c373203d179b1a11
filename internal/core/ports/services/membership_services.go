package services

import (
	"context"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// MembershipSvcFacade exposes shared-account membership, invitations and
// notifications, with a cached member list per account.
type MembershipSvcFacade interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.SharedAccount, error)
	ListMembers(ctx context.Context, userID, accountID string, forceRefresh bool) ([]domain.AccountMember, error)

	// MembershipFor returns the caller's membership row for the account,
	// or nil when the caller is not a member. Serves from the member cache
	// when populated.
	MembershipFor(ctx context.Context, userID, accountID string) (*domain.AccountMember, error)

	UpdateMemberPermissions(ctx context.Context, userID, accountID, memberID string, perms domain.MemberPermissions) (*domain.AccountMember, error)
	RemoveMember(ctx context.Context, userID, accountID, memberID string) error

	ListInvites(ctx context.Context, userID string) ([]domain.AccountInvite, error)
	RespondToInvite(ctx context.Context, userID, inviteID string, accept bool) (*domain.AccountInvite, error)

	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}
