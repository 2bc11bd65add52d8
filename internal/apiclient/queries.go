package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// ListQueries loads the queries visible to caller.
func (c *Client) ListQueries(ctx context.Context, caller user.Identity) (*query.List, error) {
	req, err := jsonRequest(http.MethodGet, "/queries", "/queries", nil)
	if err != nil {
		return nil, err
	}
	req.caller = &caller
	var out query.List
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuery posts a query as a multipart form.
func (c *Client) SubmitQuery(ctx context.Context, sub query.Submission) error {
	req, err := formRequest(http.MethodPost, "/submit_query", "/submit_query", [][2]string{
		{"name", sub.Name},
		{"category", string(sub.Category)},
		{"message", sub.Message},
	})
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}

// AddressQuery records a solution.
func (c *Client) AddressQuery(ctx context.Context, id, solution, addressedBy string) error {
	body := map[string]string{"solution": solution, "addressed_by": addressedBy}
	req, err := jsonRequest(http.MethodPut, "/address_query/"+url.PathEscape(id), "/address_query/{id}", body)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
