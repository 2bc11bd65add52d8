package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/clubboard/internal/domain/user"
)

// FetchUsers loads all members.
func (c *Client) FetchUsers(ctx context.Context) (*user.List, error) {
	req, err := jsonRequest(http.MethodGet, "/users", "/users", nil)
	if err != nil {
		return nil, err
	}
	var out user.List
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser sets a member's role and team.
func (c *Client) UpdateUser(ctx context.Context, id string, role user.Role, team user.Team) error {
	body := struct {
		Role user.Role `json:"role"`
		Team user.Team `json:"team"`
	}{role, team}
	req, err := jsonRequest(http.MethodPut, "/user/"+url.PathEscape(id), "/user/{id}", body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// DeleteUser removes a member.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	req, err := jsonRequest(http.MethodDelete, "/del/user/"+url.PathEscape(id), "/del/user/{id}", nil)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
