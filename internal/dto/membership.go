package dto

import (
	"time"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
)

// --- Shared account DTOs ---

// SharedAccountResponse defines data returned for a shared account.
type SharedAccountResponse struct {
	ID          string    `json:"id"`
	AccountName string    `json:"accountName"`
	OwnerID     string    `json:"ownerID"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToSharedAccountResponse(a *domain.SharedAccount) SharedAccountResponse {
	return SharedAccountResponse{
		ID:          a.ID,
		AccountName: a.AccountName,
		OwnerID:     a.OwnerID,
		MemberCount: a.MemberCount,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// --- Membership DTOs ---

// MemberPermissionsDTO mirrors domain.MemberPermissions on the API surface.
type MemberPermissionsDTO struct {
	CanAddEntry       bool `json:"canAddEntry"`
	CanEditOwnEntry   bool `json:"canEditOwnEntry"`
	CanEditAllEntries bool `json:"canEditAllEntries"`
	CanDeleteEntry    bool `json:"canDeleteEntry"`
}

func (p MemberPermissionsDTO) ToDomain() domain.MemberPermissions {
	return domain.MemberPermissions{
		CanAddEntry:       p.CanAddEntry,
		CanEditOwnEntry:   p.CanEditOwnEntry,
		CanEditAllEntries: p.CanEditAllEntries,
		CanDeleteEntry:    p.CanDeleteEntry,
	}
}

// UpdateMemberPermissionsRequest defines data for changing a member's
// permissions. Only the account owner may do this.
type UpdateMemberPermissionsRequest struct {
	Permissions MemberPermissionsDTO `json:"permissions" binding:"required"`
}

// AccountMemberResponse defines data returned for an account member.
type AccountMemberResponse struct {
	ID          string               `json:"id"`
	AccountID   string               `json:"accountID"`
	UserID      string               `json:"userID"`
	UserName    string               `json:"userName,omitempty"`
	Role        string               `json:"role"`
	Status      string               `json:"status"`
	Permissions MemberPermissionsDTO `json:"permissions"`
	InvitedAt   *time.Time           `json:"invitedAt,omitempty"`
	AcceptedAt  *time.Time           `json:"acceptedAt,omitempty"`
	InvitedBy   string               `json:"invitedBy,omitempty"`
}

func ToAccountMemberResponse(m *domain.AccountMember) AccountMemberResponse {
	return AccountMemberResponse{
		ID:        m.ID,
		AccountID: m.AccountID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		Role:      string(m.Role),
		Status:    string(m.Status),
		Permissions: MemberPermissionsDTO{
			CanAddEntry:       m.Permissions.CanAddEntry,
			CanEditOwnEntry:   m.Permissions.CanEditOwnEntry,
			CanEditAllEntries: m.Permissions.CanEditAllEntries,
			CanDeleteEntry:    m.Permissions.CanDeleteEntry,
		},
		InvitedAt:  m.InvitedAt,
		AcceptedAt: m.AcceptedAt,
		InvitedBy:  m.InvitedBy,
	}
}

// ListMembersResponse wraps a list of members.
type ListMembersResponse struct {
	Members []AccountMemberResponse `json:"members"`
}

func ToListMembersResponse(ms []domain.AccountMember) ListMembersResponse {
	list := make([]AccountMemberResponse, len(ms))
	for i := range ms {
		list[i] = ToAccountMemberResponse(&ms[i])
	}
	return ListMembersResponse{Members: list}
}

// --- Invitation DTOs ---

// RespondToInviteRequest defines data for accepting or rejecting an invite.
type RespondToInviteRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// AccountInviteResponse defines data returned for an invitation.
type AccountInviteResponse struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountID"`
	AccountName string    `json:"accountName,omitempty"`
	InvitedBy   string    `json:"invitedBy,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToAccountInviteResponse(inv *domain.AccountInvite) AccountInviteResponse {
	return AccountInviteResponse{
		ID:          inv.ID,
		AccountID:   inv.AccountID,
		AccountName: inv.AccountName,
		InvitedBy:   inv.InvitedBy,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
	}
}

// ListInvitesResponse wraps a list of invitations.
type ListInvitesResponse struct {
	Invites []AccountInviteResponse `json:"invites"`
}

func ToListInvitesResponse(invs []domain.AccountInvite) ListInvitesResponse {
	list := make([]AccountInviteResponse, len(invs))
	for i := range invs {
		list[i] = ToAccountInviteResponse(&invs[i])
	}
	return ListInvitesResponse{Invites: list}
}

// --- Notification DTOs ---

// NotificationResponse defines data returned for a notification.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	AccountID   string    `json:"accountID,omitempty"`
	AccountName string    `json:"accountName,omitempty"`
	TriggeredBy string    `json:"triggeredBy,omitempty"`
	Read        bool      `json:"read"`
	Timestamp   time.Time `json:"timestamp"`
}

func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Type:        string(n.Type),
		Message:     n.Message,
		AccountID:   n.AccountID,
		AccountName: n.AccountName,
		TriggeredBy: n.TriggeredBy,
		Read:        n.Read,
		Timestamp:   n.Timestamp,
	}
}

// ListNotificationsResponse wraps a list of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	list := make([]NotificationResponse, len(ns))
	for i := range ns {
		list[i] = ToNotificationResponse(&ns[i])
	}
	return ListNotificationsResponse{Notifications: list}
}
