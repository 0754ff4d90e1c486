package api

import (
	"context"
	"net/http"

	"taskdeck/internal/model"
)

// Login exchanges credentials for a token and user summary. The caller (the
// session manager) owns persisting the result.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return model.AuthResponse{}, err
	}
	return out, nil
}

// Register creates a new account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}
