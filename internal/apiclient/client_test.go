package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/clubboard/internal/apiclient"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/stretchr/testify/require"
)

var caller = user.Identity{ID: "u1", Name: "Asha", Role: user.RolePresident, Team: user.TeamIntellexa}

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/", srv.Client(), apiclient.StaticIdentity(caller), nil)
}

func TestFetchEvents_SendsCallerAndRequestID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var got user.Identity
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("X-User")), &got))
		require.Equal(t, "Asha", got.Name)

		_, _ = w.Write([]byte(`{"events":[{"_id":"1","eventName":"Hack","status":"Under Approval","progressIndex":0}]}`))
	})

	list, err := c.FetchEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Events, 1)
	require.Equal(t, event.StatusUnderApproval, list.Events[0].Status)
}

func TestUpdateEvent_SendsFlatPatch(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/editevent/42", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"progressIndex":6,"marketingFile":"m"}`, string(body))
		_, _ = w.Write([]byte(`{"data":{"_id":"42","progressIndex":6}}`))
	})

	idx := 6
	ev, err := c.UpdateEvent(context.Background(), "42", event.Patch{
		ProgressIndex: &idx,
		Fields:        map[event.Field]string{event.FieldMarketingFile: "m"},
	})
	require.NoError(t, err)
	require.Equal(t, 6, ev.ProgressIndex)
}

func TestNonSuccessStatusIsNetworkError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"maintenance"}`))
	})

	_, err := c.FetchCounters(context.Background())
	require.ErrorIs(t, err, apiclient.ErrNetwork)
	require.Equal(t, http.StatusServiceUnavailable, apiclient.StatusOf(err))
	require.Contains(t, err.Error(), "maintenance")
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := apiclient.New(url, nil, nil, nil)
	_, err := c.FetchUsers(context.Background())
	require.ErrorIs(t, err, apiclient.ErrNetwork)
	require.Zero(t, apiclient.StatusOf(err))
}

func TestAddMediaStat_ReturnsUpdatedSeries(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats/media/add", r.URL.Path)
		var got stats.MediaEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "March", got.Month)
		_, _ = w.Write([]byte(`{"updated_data":{"stat":[{"month":"March","year":2024,"instagram":5,"linkedin":6,"youtube":7}]}}`))
	})

	out, err := c.AddMediaStat(context.Background(), stats.MediaEntry{
		Period: stats.Period{Month: "March", Year: 2024}, Instagram: 5, Linkedin: 6, Youtube: 7,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 7, out[0].Youtube)
}

func TestSubmitQuery_Multipart(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "help", r.FormValue("category"))
		require.Equal(t, "Ann", r.FormValue("name"))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.SubmitQuery(context.Background(), query.Submission{Name: "Ann", Category: query.CategoryHelp, Message: "hi"}))
}

func TestLoginAndLogout(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"user":{"_id":"u9","name":"Ravi","role":"Lead","team":"Media","passkey":"pk"}}`))
		case "/logout":
			require.Equal(t, "pk", r.URL.Query().Get("passkey"))
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	id, err := c.Login(context.Background(), session.Credentials{Email: "r@x.org", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, user.TeamMedia, id.Team)
	require.NoError(t, c.Logout(context.Background(), id.Passkey))
}

func TestIncrementCompleted(t *testing.T) {
	called := false
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = r.URL.Path == "/stats/events/increment" && r.Method == http.MethodGet
	})
	require.NoError(t, c.IncrementCompleted(context.Background()))
	require.True(t, called)
}

func TestDecodeFailureIsNetworkError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	_, err := c.FetchMediaStats(context.Background())
	require.True(t, errors.Is(err, apiclient.ErrNetwork))
}
