package domain

import "time"

// NotificationType enumerates account activity events the backend emits.
type NotificationType string

const (
	NotifyInvitation         NotificationType = "INVITATION"
	NotifyInvitationAccepted NotificationType = "INVITATION_ACCEPTED"
	NotifyTransactionAdded   NotificationType = "TRANSACTION_ADDED"
	NotifyTransactionEdited  NotificationType = "TRANSACTION_EDITED"
	NotifyPermissionChanged  NotificationType = "PERMISSION_CHANGED"
	NotifyMemberRemoved      NotificationType = "MEMBER_REMOVED"
)

// Notification is an ephemeral account-activity record. The core only reads
// these and flips the read flag; they are rendered by the surrounding UI.
type Notification struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	AccountID   string           `json:"accountID,omitempty"`
	AccountName string           `json:"accountName,omitempty"`
	TriggeredBy string           `json:"triggeredBy"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	Timestamp   time.Time        `json:"timestamp"`
}

// AccountInvite describes a pending membership change. The only transitions
// the core performs are INVITED → ACCEPTED and INVITED → REJECTED.
type AccountInvite struct {
	ID          string              `json:"id"`
	AccountID   string              `json:"accountID"`
	AccountName string              `json:"accountName"`
	InvitedBy   string              `json:"invitedBy"`
	UserID      string              `json:"userID,omitempty"`
	Email       string              `json:"email,omitempty"`
	Status      AccountMemberStatus `json:"status"`
	Permissions *MemberPermissions  `json:"permissions,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}
