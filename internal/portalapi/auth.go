package portalapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Login exchanges resident credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.token(ctx, "Login", "/api/v1/login", LoginRequest{Username: username, Password: password})
}

// AdminLogin exchanges administrator credentials for a token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, error) {
	return c.token(ctx, "AdminLogin", "/api/admin/login", AdminLoginRequest{Email: email, Password: password})
}

// Register creates a resident account.
func (c *Client) Register(ctx context.Context, payload RegisterRequest) error {
	req, err := jsonRequest(http.MethodPost, "/api/v1/register", payload)
	if err != nil {
		return &Error{Op: "Register", Kind: KindValidation, Err: err}
	}
	return c.call(ctx, "Register", req, nil)
}

func (c *Client) token(ctx context.Context, op, path string, payload any) (string, error) {
	req, err := jsonRequest(http.MethodPost, path, payload)
	if err != nil {
		return "", &Error{Op: op, Kind: KindValidation, Err: err}
	}
	var body tokenResponse
	if err := c.call(ctx, op, req, &body); err != nil {
		return "", err
	}
	if strings.TrimSpace(body.Token) == "" {
		return "", &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: errors.New("empty token")}
	}
	return body.Token, nil
}
