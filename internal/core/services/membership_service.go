package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
)

// MembershipService handles shared-account members, invitations and
// notifications, with a durable cache for member lists so permission checks
// keep working while the backend is unreachable.
type MembershipService struct {
	BaseService
	gateway portssvc.MembershipGateway
	cache   portsrepo.CacheRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(gateway portssvc.MembershipGateway, cache portsrepo.CacheRepository) portssvc.MembershipSvcFacade {
	return &MembershipService{
		gateway: gateway,
		cache:   cache,
	}
}

var _ portssvc.MembershipSvcFacade = (*MembershipService)(nil)

func (s *MembershipService) ListAccounts(ctx context.Context, userID string) ([]domain.SharedAccount, error) {
	accounts, err := s.gateway.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shared accounts: %w", err)
	}
	return accounts, nil
}

// ListMembers serves the cached member list unless forceRefresh is set or
// nothing is cached yet. A failed refresh falls back to the cached copy.
func (s *MembershipService) ListMembers(ctx context.Context, userID, accountID string, forceRefresh bool) ([]domain.AccountMember, error) {
	if !forceRefresh {
		if snap, err := s.cache.GetMembers(ctx, accountID); err == nil {
			return snap.Members, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "member cache read failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
	}

	members, err := s.gateway.ListMembers(ctx, accountID)
	if err != nil {
		if snap, cacheErr := s.cache.GetMembers(ctx, accountID); cacheErr == nil {
			s.LogWarn(ctx, "member refresh failed, serving cached list", slog.String("account_id", accountID), slog.String("error", err.Error()))
			return snap.Members, nil
		}
		return nil, fmt.Errorf("listing members of account %s: %w", accountID, err)
	}

	snap := domain.MemberSnapshot{Members: members, FetchedAt: time.Now().UTC()}
	if err := s.cache.PutMembers(ctx, accountID, snap); err != nil {
		s.LogError(ctx, err, "failed to cache member list", slog.String("account_id", accountID))
	}
	return members, nil
}

// MembershipFor returns the caller's membership row for the account, or nil
// when the caller is not a member.
func (s *MembershipService) MembershipFor(ctx context.Context, userID, accountID string) (*domain.AccountMember, error) {
	members, err := s.ListMembers(ctx, userID, accountID, false)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].UserID == userID {
			return &members[i], nil
		}
	}
	return nil, nil
}

// UpdateMemberPermissions changes another member's permission flags. Only
// the account owner may do this.
func (s *MembershipService) UpdateMemberPermissions(ctx context.Context, userID, accountID, memberID string, perms domain.MemberPermissions) (*domain.AccountMember, error) {
	if err := s.requireOwner(ctx, userID, accountID, "update permissions"); err != nil {
		return nil, err
	}

	member, err := s.gateway.UpdateMemberPermissions(ctx, accountID, memberID, perms)
	if err != nil {
		return nil, fmt.Errorf("updating permissions for member %s: %w", memberID, err)
	}

	s.invalidateMembers(ctx, accountID)
	return member, nil
}

// RemoveMember removes a member from the account. The owner may remove
// anyone; a member may remove only themselves, which is how leaving works.
func (s *MembershipService) RemoveMember(ctx context.Context, userID, accountID, memberID string) error {
	caller, err := s.MembershipFor(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if caller == nil {
		return apperrors.NewPermissionError("remove member", accountID, "you are not a member of this account")
	}
	if caller.Role != domain.RoleOwner && caller.ID != memberID {
		return apperrors.NewPermissionError("remove member", accountID, "only the account owner can remove other members")
	}

	if err := s.gateway.RemoveMember(ctx, accountID, memberID); err != nil {
		return fmt.Errorf("removing member %s: %w", memberID, err)
	}

	s.invalidateMembers(ctx, accountID)
	return nil
}

func (s *MembershipService) ListInvites(ctx context.Context, userID string) ([]domain.AccountInvite, error) {
	invites, err := s.gateway.ListInvites(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invites, nil
}

// RespondToInvite accepts or rejects a pending invitation. Accepting makes
// the cached member list for that account stale, so it is dropped.
func (s *MembershipService) RespondToInvite(ctx context.Context, userID, inviteID string, accept bool) (*domain.AccountInvite, error) {
	invite, err := s.gateway.RespondToInvite(ctx, inviteID, accept)
	if err != nil {
		return nil, fmt.Errorf("responding to invitation %s: %w", inviteID, err)
	}
	s.LogInfo(ctx, "invitation answered",
		slog.String("invite_id", inviteID),
		slog.Bool("accepted", accept),
		slog.String("account_id", invite.AccountID))

	if accept && invite.AccountID != "" {
		s.invalidateMembers(ctx, invite.AccountID)
	}
	return invite, nil
}

func (s *MembershipService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := s.gateway.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

func (s *MembershipService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if err := s.gateway.MarkNotificationRead(ctx, notificationID); err != nil {
		return fmt.Errorf("marking notification %s read: %w", notificationID, err)
	}
	return nil
}

func (s *MembershipService) requireOwner(ctx context.Context, userID, accountID, action string) error {
	caller, err := s.MembershipFor(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if caller == nil {
		return apperrors.NewPermissionError(action, accountID, "you are not a member of this account")
	}
	if caller.Role != domain.RoleOwner {
		return apperrors.NewPermissionError(action, accountID, "only the account owner can do this")
	}
	return nil
}

func (s *MembershipService) invalidateMembers(ctx context.Context, accountID string) {
	if err := s.cache.Invalidate(ctx, accountID); err != nil {
		s.LogWarn(ctx, "failed to invalidate member cache", slog.String("account_id", accountID), slog.String("error", err.Error()))
	}
}
