package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Login exchanges credentials for the caller identity.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (user.Identity, error) {
	req, err := jsonRequest(http.MethodPost, "/login", "/login", creds)
	if err != nil {
		return user.Identity{}, err
	}
	var out struct {
		User user.Identity `json:"user"`
	}
	if err := c.do(ctx, req, &out); err != nil {
		return user.Identity{}, err
	}
	return out.User, nil
}

// Logout ends the server-side session for passkey.
func (c *Client) Logout(ctx context.Context, passkey string) error {
	path := "/logout?passkey=" + url.QueryEscape(passkey)
	req, err := jsonRequest(http.MethodPost, path, "/logout", nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// Signup registers a member as a multipart form.
func (c *Client) Signup(ctx context.Context, signup session.SignupRequest) error {
	req, err := formRequest(http.MethodPost, "/createaccount", "/createaccount", signup.Form())
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
