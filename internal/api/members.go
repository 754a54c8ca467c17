package api

import (
	"context"
	"net/http"

	"github.com/certipro/certipro-cli/internal"
)

// AdminUsers lists every platform user. ADMIN only.
func (c *Client) AdminUsers(ctx context.Context) ([]internal.User, error) {
	return c.listUsers(ctx, "/admin/users")
}

// OrganizationMembers lists the members of the viewer's organization
func (c *Client) OrganizationMembers(ctx context.Context) ([]internal.User, error) {
	return c.listUsers(ctx, "/organization/members")
}

func (c *Client) listUsers(ctx context.Context, path string) ([]internal.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var users []internal.User
	if err := c.doJSON(req, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Role = internal.NormalizeRole(users[i].Role)
	}
	return users, nil
}

type removeMemberRequest struct {
	UserID string `json:"user_id"`
}

// RemoveOrganizationMember removes a user from the viewer's organization
func (c *Client) RemoveOrganizationMember(ctx context.Context, userID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/organization/members/remove", nil, removeMemberRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// Invitations lists the organization's outstanding invitations
func (c *Client) Invitations(ctx context.Context) ([]internal.Invitation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/organization/invitations", nil, nil)
	if err != nil {
		return nil, err
	}

	var invitations []internal.Invitation
	if err := c.doJSON(req, &invitations); err != nil {
		return nil, err
	}
	for i := range invitations {
		invitations[i].Role = internal.NormalizeRole(invitations[i].Role)
	}
	return invitations, nil
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SendInvitation invites an email address into the organization with the
// given role. MANAGER only; the ADMIN role cannot be assigned this way.
func (c *Client) SendInvitation(ctx context.Context, email, role string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/organization/invitations", nil, inviteRequest{
		Email: email,
		Role:  role,
	})
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

type revokeRequest struct {
	ID string `json:"id"`
}

// RevokeInvitation revokes a pending invitation by id
func (c *Client) RevokeInvitation(ctx context.Context, invitationID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/organization/invitations/revoke", nil, revokeRequest{
		ID: invitationID,
	})
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
