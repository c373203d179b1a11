package domain

import "time"

// SharedAccount is a shared ledger collaboratively owned by multiple members.
type SharedAccount struct {
	ID          string    `json:"id"`
	AccountName string    `json:"accountName"`
	OwnerID     string    `json:"ownerID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	MemberCount int       `json:"memberCount,omitempty"`
}
