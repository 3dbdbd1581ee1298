package client

import (
	"context"
	"net/http"
)

// Login authenticates and stores the access token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}
	return c.authenticate(ctx, "/auth/login", req)
}

// Register creates an account and stores the access token on the client
func (c *Client) Register(ctx context.Context, email, username, password string) (*AuthResponse, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}
	if username != "" {
		req["username"] = username
	}
	return c.authenticate(ctx, "/auth/register", req)
}

// Refresh exchanges a refresh token for a new token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, APIPrefix+path, body, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Logout clears the server cookies and the client token
func (c *Client) Logout(ctx context.Context) error {
	err := c.doRequest(ctx, http.MethodPost, APIPrefix+"/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetPreferences returns the caller's notification preferences
func (c *Client) GetPreferences(ctx context.Context) (*Preferences, error) {
	var p Preferences
	if err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/users/me/preferences", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePreferences replaces the caller's notification preferences
func (c *Client) UpdatePreferences(ctx context.Context, prefs Preferences) (*Preferences, error) {
	var p Preferences
	if err := c.doRequest(ctx, http.MethodPut, APIPrefix+"/users/me/preferences", prefs, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
