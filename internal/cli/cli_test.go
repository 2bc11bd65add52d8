package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) *testserver.TestServer {
	t.Helper()
	now := stats.PeriodOf(time.Now())
	return testserver.New(t, testserver.State{
		Events: []event.Event{
			{ID: "1", Name: "Hackathon", Organiser: "Web", Status: event.StatusOngoing, ProgressIndex: 6, MarketingFile: "x"},
			{ID: "2", Name: "Workshop", Organiser: "AI", Status: event.StatusOngoing, ProgressIndex: 3},
		},
		Design:   []stats.DesignEntry{{Period: now, Posters: 3}},
		Counters: stats.Counters{TotalEvents: 2, Completed: 1},
		Users: []user.User{
			{ID: "m1", Name: "Ravi", Email: "ravi@club.org", Role: user.RoleCoreMember, Team: user.TeamMedia},
		},
		Queries: []query.Query{
			{ID: "q1", Name: "Meena", Category: query.CategoryHelp, Message: "Where is the lab?"},
		},
		Accounts: map[string]testserver.Account{
			"ravi@club.org": {
				Password: "secret",
				Identity: user.Identity{ID: "m1", Name: "Ravi", Email: "ravi@club.org", Role: user.RoleCoreMember, Team: user.TeamMedia, Passkey: "pk-ravi"},
			},
		},
	})
}

// actAs isolates the test from local config and sets the caller identity.
func actAs(t *testing.T, name string, role user.Role, team user.Team) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CLUBBOARD_CONFIG_PATH", "")
	t.Setenv("CLUBBOARD_IDENTITY_NAME", name)
	t.Setenv("CLUBBOARD_IDENTITY_ROLE", string(role))
	t.Setenv("CLUBBOARD_IDENTITY_TEAM", string(team))
}

func run(t *testing.T, api *testserver.TestServer, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--api", api.URL()}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd("1.2.3")
	require.Equal(t, "1.2.3", root.Version)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"events", "stats", "users", "queries", "login", "signup"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
	require.NotNil(t, root.PersistentFlags().Lookup("api"))
	require.NotNil(t, root.PersistentFlags().Lookup("json"))
}

func TestEventsList(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	out, err := run(t, api, "events", "list")
	require.NoError(t, err)
	require.Contains(t, out, `"Hackathon" by Web: Marketing (6/7)`)
	require.Contains(t, out, `"Workshop"`)

	out, err = run(t, api, "events", "list", "--status", "completed")
	require.NoError(t, err)
	require.Contains(t, out, "No events.")
}

func TestEventsList_JSON(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	out, err := run(t, api, "events", "list", "--json")
	require.NoError(t, err)
	var events []event.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 2)
}

func TestEventsTransition_Complete(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	out, err := run(t, api, "events", "transition", "1", "complete")
	require.NoError(t, err)
	require.Contains(t, out, "Completed (7), status completed")
	require.Equal(t, 1, api.Calls("GET /stats/events/increment"))
	require.Equal(t, 2, api.State().Counters.Completed)
}

func TestEventsTransition_WrongActorIssuesNoRequest(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Ravi", user.RoleCoreMember, user.TeamMedia)

	_, err := run(t, api, "events", "transition", "2", "advance")
	require.Error(t, err)
	require.Zero(t, api.Calls("PUT /editevent/{id}"))
	require.Equal(t, 3, api.State().Events[1].ProgressIndex)
}

func TestEventsCreate(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Meena", user.RoleCoreMember, user.TeamWeb)

	_, err := run(t, api, "events", "create", "--name", "Demo Day")
	require.Error(t, err)

	out, err := run(t, api, "events", "create", "--name", "Demo Day", "--organiser", "Web", "--date", "2030-01-10")
	require.NoError(t, err)
	require.Contains(t, out, `Proposed event "Demo Day"`)

	events := api.State().Events
	require.Len(t, events, 3)
	require.Equal(t, 0, events[2].ProgressIndex)
	require.Equal(t, event.StatusUnderApproval, events[2].Status)
	require.Equal(t, "Meena", events[2].ProposedBy)
}

func TestStatsSubmit_MissingMetricIssuesNoRequest(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Ravi", user.RoleCoreMember, user.TeamMedia)

	_, err := run(t, api, "stats", "submit", "media", "--instagram", "10", "--linkedin", "5")
	require.ErrorIs(t, err, stats.ErrMissingField)
	require.Zero(t, api.Calls("POST /stats/media/add"))

	out, err := run(t, api, "stats", "submit", "media", "--instagram", "10", "--linkedin", "5", "--youtube", "0")
	require.NoError(t, err)
	require.Contains(t, out, "Recorded media stats")
	require.Equal(t, 1, api.Calls("POST /stats/media/add"))
}

func TestStatsSubmit_DuplicateDesignMonth(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Divya", user.RoleCoreMember, user.TeamDesign)

	_, err := run(t, api, "stats", "submit", "design", "--posters", "2")
	require.ErrorIs(t, err, stats.ErrDuplicatePeriod)
	require.Zero(t, api.Calls("POST /stats/design/add"))
}

func TestStatsShow(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	out, err := run(t, api, "stats", "show")
	require.NoError(t, err)
	require.Contains(t, out, "Events: 2 total, 1 completed, 1 pending")
	require.Contains(t, out, "Media stats for this month are missing.")
	require.NotContains(t, out, "Design stats for this month are missing.")
}

func TestUsers_UpdateAndDelete(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	_, err := run(t, api, "users", "update", "m1", "--role", "Lead", "--team", "Media")
	require.NoError(t, err)
	require.Equal(t, user.RoleLead, api.State().Users[0].Role)

	_, err = run(t, api, "users", "delete", "m1")
	require.Error(t, err)
	require.Len(t, api.State().Users, 1)

	_, err = run(t, api, "users", "delete", "m1", "--yes")
	require.NoError(t, err)
	require.Empty(t, api.State().Users)
}

func TestUsers_NonAdminDenied(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Ravi", user.RoleCoreMember, user.TeamMedia)

	_, err := run(t, api, "users", "list")
	require.ErrorIs(t, err, user.ErrAccessDenied)
	require.Zero(t, api.Calls("GET /users"))
}

func TestQueries_ListAndAddress(t *testing.T) {
	api := newAPI(t)
	actAs(t, "Asha", user.RolePresident, user.TeamIntellexa)

	out, err := run(t, api, "queries", "list", "--pending")
	require.NoError(t, err)
	require.Contains(t, out, "Where is the lab?")

	_, err = run(t, api, "queries", "address", "q1", "--solution", "Block C")
	require.NoError(t, err)
	q := api.State().Queries[0]
	require.True(t, q.Addressed)
	require.Equal(t, "Asha", q.AddressedBy)

	_, err = run(t, api, "queries", "address", "q1", "--solution", "again")
	require.ErrorIs(t, err, query.ErrAlreadyAddressed)
}

func TestQueriesSubmit(t *testing.T) {
	api := newAPI(t)
	actAs(t, "", "", "")

	_, err := run(t, api, "queries", "submit", "--name", "Kiran", "--category", "suggestion", "--message", "More workshops")
	require.NoError(t, err)
	queries := api.State().Queries
	require.Len(t, queries, 2)
	require.Equal(t, query.CategorySuggestion, queries[1].Category)
}

func TestLogin_PrintsIdentityBlock(t *testing.T) {
	api := newAPI(t)
	actAs(t, "", "", "")

	out, err := run(t, api, "login", "--email", "ravi@club.org", "--password", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "identity:")
	require.Contains(t, out, "passkey: pk-ravi")
	require.Contains(t, out, "team: Media")

	_, err = run(t, api, "login", "--email", "ravi@club.org", "--password", "wrong")
	require.Error(t, err)
}
