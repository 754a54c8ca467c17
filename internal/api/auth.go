package api

import (
	"context"
	"net/http"
	"net/url"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message,omitempty"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// RegisterParams is the registration form. InvitationToken is set only when
// joining an existing organization through an emailed invitation.
type RegisterParams struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	InvitationToken string `json:"token,omitempty"`
}

// Register creates a new account. The account must be verified by email
// before login succeeds.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", nil, params)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// VerifyEmail confirms a registration token and returns the issued access
// token on success.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	query := url.Values{"token": {token}}
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/verify-email", query, nil)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Logout invalidates the token server-side. Best effort: the local token is
// cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
