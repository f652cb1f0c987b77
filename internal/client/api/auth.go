package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/equiply/equiply-cli/internal/client/session"
)

const (
	pathLogin          = "/api/v1/auth"
	pathLogout         = "/api/v1/auth/logout"
	pathRegister       = "/api/v1/register"
	pathForgotPassword = "/api/v1/auth/forgot-password"
)

func (c *Client) cookieQuery(key string) url.Values {
	return url.Values{key: {strconv.FormatBool(c.clientType.UseCookies())}}
}

// Login performs the password grant. On mobile clients the returned token
// pair is persisted locally; on desktop the server sets cookies and the
// response body carries no tokens.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	form := url.Values{
		"grant_type":    {"password"},
		"username":      {strings.TrimSpace(username)},
		"password":      {password},
		"scope":         {""},
		"client_id":     {""},
		"client_secret": {""},
	}

	var auth AuthResponse
	if err := c.postForm(ctx, pathLogin, c.cookieQuery("use_cookies"), form, &auth); err != nil {
		return nil, err
	}

	if !c.clientType.UseCookies() && auth.AccessToken != "" {
		if err := c.store.SetTokens(ctx, auth.AccessToken, auth.RefreshToken); err != nil {
			return nil, err
		}
	}
	c.bus.Publish(session.EventAuthChanged)
	return &auth, nil
}

// Register creates an account. When the deployment does not require email
// verification the response also carries a token pair, and the new session
// is activated immediately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisteredUser, error) {
	var envelope response[RegisteredUser]
	if err := c.postJSON(ctx, pathRegister, c.cookieQuery("use_cookies"), req, &envelope); err != nil {
		return nil, err
	}
	user := envelope.Data

	if user.RequiresVerification {
		return &user, nil
	}
	if !c.clientType.UseCookies() && user.AccessToken != "" {
		if err := c.store.SetTokens(ctx, user.AccessToken, user.RefreshToken); err != nil {
			return nil, err
		}
	}
	c.bus.Publish(session.EventAuthChanged)
	return &user, nil
}

// Logout ends the session on the server and always clears local state,
// even when the server round trip fails: a logout must never leave the
// client authenticated.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.do(ctx, "POST", pathLogout, c.cookieQuery("clear_cookies"), "", nil, nil)

	if err := c.store.ClearTokens(ctx); err != nil {
		c.log.Error(ctx, "failed to clear local tokens on logout", "error", err)
	}
	c.bus.Publish(session.EventAuthChanged)
	return reqErr
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{Email: strings.TrimSpace(email)}
	return c.postJSON(ctx, pathForgotPassword, nil, payload, nil)
}
