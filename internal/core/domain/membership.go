package domain

import "time"

// AccountMemberRole defines the possible roles a user can have within a
// shared account.
type AccountMemberRole string

const (
	RoleOwner  AccountMemberRole = "OWNER"
	RoleMember AccountMemberRole = "MEMBER"
)

// AccountMemberStatus tracks the lifecycle of a membership.
type AccountMemberStatus string

const (
	StatusInvited  AccountMemberStatus = "INVITED"
	StatusAccepted AccountMemberStatus = "ACCEPTED"
	StatusRejected AccountMemberStatus = "REJECTED"
	StatusPending  AccountMemberStatus = "PENDING"
)

// MemberPermissions is the stored per-member capability record. The four
// flags are independent booleans with no implied hierarchy. Owners bypass
// this record entirely; the bypass lives in the permission validator, not
// here, so the stored record and the effective computation stay separately
// auditable.
type MemberPermissions struct {
	CanAddEntry       bool `json:"canAddEntry"`
	CanEditOwnEntry   bool `json:"canEditOwnEntry"`
	CanEditAllEntries bool `json:"canEditAllEntries"`
	CanDeleteEntry    bool `json:"canDeleteEntry"`
}

// AccountMember represents the membership of a user in a shared account.
type AccountMember struct {
	ID          string              `json:"id"`
	AccountID   string              `json:"accountID"`
	UserID      string              `json:"userID"`
	UserName    string              `json:"userName,omitempty"`
	Role        AccountMemberRole   `json:"role"`
	Status      AccountMemberStatus `json:"status"`
	Permissions MemberPermissions   `json:"permissions"`
	InvitedAt   *time.Time          `json:"invitedAt,omitempty"`
	AcceptedAt  *time.Time          `json:"acceptedAt,omitempty"`
	InvitedBy   string              `json:"invitedBy,omitempty"`
}
