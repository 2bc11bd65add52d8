// Package apiclient talks to the club management REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/otel"
)

// IdentitySource supplies the caller sent in the X-User header.
type IdentitySource interface {
	Current() user.Identity
}

// StaticIdentity is an IdentitySource that never changes.
type StaticIdentity user.Identity

func (s StaticIdentity) Current() user.Identity { return user.Identity(s) }

// IdentityFunc adapts a function to IdentitySource.
type IdentityFunc func() user.Identity

func (f IdentityFunc) Current() user.Identity { return f() }

// Client calls the club API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	identity IdentitySource
	logger   *slog.Logger
}

// New returns a client for baseURL. A nil httpClient uses http.DefaultClient
// and a nil identity sends an anonymous X-User header.
func New(baseURL string, httpClient *http.Client, identity IdentitySource, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if identity == nil {
		identity = StaticIdentity{}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		identity: identity,
		logger:   logger,
	}
}

type request struct {
	method string
	path   string
	// route is the path template used for metrics and logs.
	route string
	body  io.Reader
	ctype string
	// caller, when set, is sent JSON-encoded in X-User.
	caller *user.Identity
}

func jsonRequest(method, path, route string, body any) (request, error) {
	req := request{method: method, path: path, route: route}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return request{}, fmt.Errorf("encoding %s body: %w", route, err)
		}
		req.body = bytes.NewReader(b)
		req.ctype = "application/json"
	}
	return req, nil
}

func formRequest(method, path, route string, fields [][2]string) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return request{}, fmt.Errorf("encoding %s form: %w", route, err)
		}
	}
	if err := w.Close(); err != nil {
		return request{}, fmt.Errorf("encoding %s form: %w", route, err)
	}
	return request{method: method, path: path, route: route, body: &buf, ctype: w.FormDataContentType()}, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return &NetworkError{Method: r.method, Path: r.path, Err: err}
	}
	if r.ctype != "" {
		httpReq.Header.Set("Content-Type", r.ctype)
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)
	if r.caller != nil {
		header, err := encodeCaller(*r.caller)
		if err != nil {
			return err
		}
		httpReq.Header.Set("X-User", header)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		otel.RecordAPIRequest(ctx, r.method, r.route, 0, time.Since(start))
		c.logFailure(r, requestID, 0, err)
		return &NetworkError{Method: r.method, Path: r.path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	otel.RecordAPIRequest(ctx, r.method, r.route, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		netErr := &NetworkError{Method: r.method, Path: r.path, Status: resp.StatusCode, Detail: errorDetail(resp.Body)}
		c.logFailure(r, requestID, resp.StatusCode, netErr)
		return netErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Method: r.method, Path: r.path, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if c.logger != nil {
		c.logger.Debug("api request", "method", r.method, "route", r.route, "status", resp.StatusCode, "request_id", requestID)
	}
	return nil
}

func (c *Client) logFailure(r request, requestID string, status int, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("api request failed",
		"method", r.method,
		"route", r.route,
		"status", status,
		"request_id", requestID,
		"error", err,
	)
}

// encodeCaller renders the X-User header. A zero identity encodes as null.
func encodeCaller(id user.Identity) (string, error) {
	if id.IsZero() {
		return "null", nil
	}
	b, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("encoding X-User: %w", err)
	}
	return string(b), nil
}

func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var parsed struct {
		Detail  any    `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		switch {
		case parsed.Error != "":
			return parsed.Error
		case parsed.Message != "":
			return parsed.Message
		case parsed.Detail != nil:
			if s, ok := parsed.Detail.(string); ok {
				return s
			}
			b, _ := json.Marshal(parsed.Detail)
			return string(b)
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) caller() *user.Identity {
	id := c.identity.Current()
	return &id
}
