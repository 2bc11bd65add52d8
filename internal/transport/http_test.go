package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/clubboard/internal/store"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	method string
	err    error
}

func (h *testHandler) Handle(_ context.Context, method string, params json.RawMessage) (any, error) {
	h.method = method
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"method": method, "params": string(params)}, nil
}

type testSnapshots map[store.Resource]store.Snapshot

func (s testSnapshots) Snapshot(r store.Resource) (store.Snapshot, bool) {
	snap, ok := s[r]
	return snap, ok
}

func newTestServer(t *testing.T, handler RPCHandler) *httptest.Server {
	t.Helper()
	snaps := testSnapshots{
		store.ResourceCounters: {Resource: store.ResourceCounters, UpdatedAt: time.Now(), Data: map[string]int{"total_events": 3}},
	}
	server := httptest.NewServer(NewServer(Options{
		RPC:       handler,
		Snapshots: snaps,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		Auth: AuthMiddleware(StaticToken{Token: "token"}),
	}))
	t.Cleanup(server.Close)
	return server
}

func authedRequest(t *testing.T, method, url string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	server := newTestServer(t, handler)

	resp := authedRequest(t, http.MethodPost, server.URL+"/rpc", []byte(`{"jsonrpc":"2.0","method":"list_events","id":1}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "list_events", handler.method)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Nil(t, out.Error)
}

func TestHTTPServer_RPCError(t *testing.T) {
	server := newTestServer(t, &testHandler{err: codedErr{}})

	resp := authedRequest(t, http.MethodPost, server.URL+"/rpc", []byte(`{"jsonrpc":"2.0","method":"submit_media_stats","id":2}`))
	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, ErrApplication, out.Error.Code)
}

func TestHTTPServer_RequiresAuth(t *testing.T) {
	server := newTestServer(t, &testHandler{})

	resp, err := http.Post(server.URL+"/rpc", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_Snapshot(t *testing.T) {
	server := newTestServer(t, &testHandler{})

	resp := authedRequest(t, http.MethodGet, server.URL+"/snapshot/counters", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap struct {
		Resource string         `json:"resource"`
		Data     map[string]int `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Equal(t, "counters", snap.Resource)
	require.Equal(t, 3, snap.Data["total_events"])

	resp = authedRequest(t, http.MethodGet, server.URL+"/snapshot/users", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, server.URL+"/snapshot/bogus", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, server.URL+"/snapshot", nil)
	var all []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
}

func TestHTTPServer_HealthAndMetricsAreOpen(t *testing.T) {
	server := newTestServer(t, &testHandler{})

	for _, path := range []string{"/health", "/metrics"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
