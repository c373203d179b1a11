package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cashbook-app/cashbook-sync/internal/core/domain"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/dto"
)

const (
	accountsPath      = "/api/accounts/"
	invitationsPath   = "/api/accounts/invitations/"
	notificationsPath = "/api/notifications/"
)

// RestMembershipGateway talks to the backend's account, invitation and
// notification endpoints.
type RestMembershipGateway struct {
	client *Client
}

// NewRestMembershipGateway creates a membership gateway on the shared client.
func NewRestMembershipGateway(client *Client) portssvc.MembershipGateway {
	return &RestMembershipGateway{client: client}
}

var _ portssvc.MembershipGateway = (*RestMembershipGateway)(nil)

func decodeListInto(body []byte, out any) error {
	raw, err := dto.UnwrapList(body)
	if err != nil {
		return fmt.Errorf("failed to unwrap list: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	return nil
}

func decodeObjectInto(body []byte, out any) error {
	raw, err := dto.UnwrapObject(body)
	if err != nil {
		return fmt.Errorf("failed to unwrap object: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode object: %w", err)
	}
	return nil
}

func (g *RestMembershipGateway) ListAccounts(ctx context.Context) ([]domain.SharedAccount, error) {
	body, err := g.client.do(ctx, http.MethodGet, accountsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	var accounts []domain.SharedAccount
	if err := decodeListInto(body, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (g *RestMembershipGateway) ListMembers(ctx context.Context, accountID string) ([]domain.AccountMember, error) {
	body, err := g.client.do(ctx, http.MethodGet, accountsPath+accountID+"/members/", nil, nil)
	if err != nil {
		return nil, err
	}
	var members []domain.AccountMember
	if err := decodeListInto(body, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (g *RestMembershipGateway) UpdateMemberPermissions(ctx context.Context, accountID, memberID string, perms domain.MemberPermissions) (*domain.AccountMember, error) {
	payload := map[string]any{"permissions": perms}
	body, err := g.client.do(ctx, http.MethodPatch, accountsPath+accountID+"/members/"+memberID+"/", nil, payload)
	if err != nil {
		return nil, err
	}
	var member domain.AccountMember
	if err := decodeObjectInto(body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (g *RestMembershipGateway) RemoveMember(ctx context.Context, accountID, memberID string) error {
	_, err := g.client.do(ctx, http.MethodDelete, accountsPath+accountID+"/members/"+memberID+"/", nil, nil)
	return err
}

func (g *RestMembershipGateway) ListInvites(ctx context.Context) ([]domain.AccountInvite, error) {
	body, err := g.client.do(ctx, http.MethodGet, invitationsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	var invites []domain.AccountInvite
	if err := decodeListInto(body, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (g *RestMembershipGateway) RespondToInvite(ctx context.Context, inviteID string, accept bool) (*domain.AccountInvite, error) {
	action := "reject"
	if accept {
		action = "accept"
	}
	payload := map[string]any{"action": action}
	body, err := g.client.do(ctx, http.MethodPost, invitationsPath+inviteID+"/respond/", nil, payload)
	if err != nil {
		return nil, err
	}
	var invite domain.AccountInvite
	if err := decodeObjectInto(body, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (g *RestMembershipGateway) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	body, err := g.client.do(ctx, http.MethodGet, notificationsPath, nil, nil)
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := decodeListInto(body, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (g *RestMembershipGateway) MarkNotificationRead(ctx context.Context, notificationID string) error {
	payload := map[string]any{"read": true}
	_, err := g.client.do(ctx, http.MethodPatch, notificationsPath+notificationID+"/", nil, payload)
	return err
}
