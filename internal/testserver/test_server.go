// Package testserver runs an in-memory club API for integration tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// State is the data the fake API serves.
type State struct {
	Events   []event.Event
	Media    []stats.MediaEntry
	Design   []stats.DesignEntry
	EventLog []stats.EventEntry
	Counters stats.Counters
	Teams    []stats.TeamStats
	Users    []user.User
	Queries  []query.Query
	// Accounts maps an email to its password and login identity.
	Accounts map[string]Account
}

// Account is a login the fake API accepts.
type Account struct {
	Password string
	Identity user.Identity
}

// TestServer is a fake club API backed by State.
type TestServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	state    State
	failures map[string]int
	calls    map[string]int
	lastUser map[string]string
	nextID   int
}

// New starts a fake API seeded with state and stops it when the test ends.
func New(t *testing.T, state State) *TestServer {
	t.Helper()

	if state.Accounts == nil {
		state.Accounts = map[string]Account{}
	}
	ts := &TestServer{
		state:    state,
		failures: map[string]int{},
		calls:    map[string]int{},
		lastUser: map[string]string{},
	}
	ts.Server = httptest.NewServer(ts.routes())
	t.Cleanup(ts.Server.Close)
	return ts
}

// URL is the base URL of the fake API.
func (ts *TestServer) URL() string { return ts.Server.URL }

// Fail makes every request to route answer with status until Heal is called.
// Routes are written as "GET /events" or "PUT /editevent/{id}".
func (ts *TestServer) Fail(route string, status int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failures[route] = status
}

// Heal clears a failure set by Fail.
func (ts *TestServer) Heal(route string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.failures, route)
}

// Calls returns how many requests route has received.
func (ts *TestServer) Calls(route string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.calls[route]
}

// LastUser returns the X-User header of the latest request to route.
func (ts *TestServer) LastUser(route string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.lastUser[route]
}

// Update mutates the served state.
func (ts *TestServer) Update(fn func(*State)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	fn(&ts.state)
}

// State returns a copy of the served state.
func (ts *TestServer) State() State {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	s := ts.state
	s.Events = slices.Clone(s.Events)
	s.Media = slices.Clone(s.Media)
	s.Design = slices.Clone(s.Design)
	s.EventLog = slices.Clone(s.EventLog)
	s.Teams = slices.Clone(s.Teams)
	s.Users = slices.Clone(s.Users)
	s.Queries = slices.Clone(s.Queries)
	s.Accounts = maps.Clone(s.Accounts)
	return s
}

func (ts *TestServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/events", ts.handle("GET /events", ts.listEvents))
	r.Post("/add_event", ts.handle("POST /add_event", ts.addEvent))
	r.Put("/editevent/{id}", ts.handle("PUT /editevent/{id}", ts.editEvent))
	r.Put("/suggest/{id}", ts.handle("PUT /suggest/{id}", ts.suggest))
	r.Get("/events/count", ts.handle("GET /events/count", ts.counters))

	r.Get("/stats/media", ts.handle("GET /stats/media", ts.mediaStats))
	r.Get("/stats/design", ts.handle("GET /stats/design", ts.designStats))
	r.Get("/stats/event", ts.handle("GET /stats/event", ts.eventStats))
	r.Get("/stats/events/increment", ts.handle("GET /stats/events/increment", ts.increment))
	r.Post("/stats/media/add", ts.handle("POST /stats/media/add", ts.addMedia))
	r.Post("/stats/design/add", ts.handle("POST /stats/design/add", ts.addDesign))
	r.Get("/teams/stats", ts.handle("GET /teams/stats", ts.teams))

	r.Get("/users", ts.handle("GET /users", ts.listUsers))
	r.Put("/user/{id}", ts.handle("PUT /user/{id}", ts.updateUser))
	r.Delete("/del/user/{id}", ts.handle("DELETE /del/user/{id}", ts.deleteUser))

	r.Get("/queries", ts.handle("GET /queries", ts.listQueries))
	r.Post("/submit_query", ts.handle("POST /submit_query", ts.submitQuery))
	r.Put("/address_query/{id}", ts.handle("PUT /address_query/{id}", ts.addressQuery))

	r.Post("/login", ts.handle("POST /login", ts.login))
	r.Post("/logout", ts.handle("POST /logout", ts.logout))
	r.Post("/createaccount", ts.handle("POST /createaccount", ts.createAccount))

	return r
}

// handle records the call, applies any injected failure and runs fn under the
// state lock.
func (ts *TestServer) handle(route string, fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		defer ts.mu.Unlock()

		ts.calls[route]++
		ts.lastUser[route] = r.Header.Get("X-User")
		if status, ok := ts.failures[route]; ok {
			writeJSON(w, status, map[string]string{"error": "injected failure"})
			return
		}
		fn(w, r)
	}
}

func (ts *TestServer) listEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, event.List{Events: ts.state.Events})
}

func (ts *TestServer) addEvent(w http.ResponseWriter, r *http.Request) {
	var ev event.Event
	if !decode(w, r, &ev) {
		return
	}
	ts.nextID++
	ev.ID = fmt.Sprintf("ev-%d", ts.nextID)
	ts.state.Events = append(ts.state.Events, ev)
	ts.state.Counters.TotalEvents++
	writeJSON(w, http.StatusCreated, map[string]any{"data": ev})
}

func (ts *TestServer) editEvent(w http.ResponseWriter, r *http.Request) {
	i := ts.eventIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}
	var patch map[string]any
	if !decode(w, r, &patch) {
		return
	}
	merged, err := mergeJSON(ts.state.Events[i], patch)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ts.state.Events[i] = merged
	writeJSON(w, http.StatusOK, map[string]any{"data": merged})
}

func (ts *TestServer) suggest(w http.ResponseWriter, r *http.Request) {
	i := ts.eventIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}
	var body struct {
		Suggestion string `json:"suggestion"`
	}
	if !decode(w, r, &body) {
		return
	}
	ts.state.Events[i].Suggestion = body.Suggestion
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (ts *TestServer) counters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ts.state.Counters)
}

func (ts *TestServer) mediaStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stats.MediaSeries{Stats: ts.state.Media})
}

func (ts *TestServer) designStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stats.DesignSeries{Stats: ts.state.Design})
}

func (ts *TestServer) eventStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stats.EventSeries{Stats: ts.state.EventLog})
}

func (ts *TestServer) increment(w http.ResponseWriter, _ *http.Request) {
	ts.state.Counters.Completed++
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (ts *TestServer) addMedia(w http.ResponseWriter, r *http.Request) {
	var entry stats.MediaEntry
	if !decode(w, r, &entry) {
		return
	}
	if hasPeriod(ts.state.Media, entry.Period) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "stats for this month already exist"})
		return
	}
	ts.state.Media = append(ts.state.Media, entry)
	writeUpdated(w, ts.state.Media)
}

func (ts *TestServer) addDesign(w http.ResponseWriter, r *http.Request) {
	var entry stats.DesignEntry
	if !decode(w, r, &entry) {
		return
	}
	if hasPeriod(ts.state.Design, entry.Period) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "stats for this month already exist"})
		return
	}
	ts.state.Design = append(ts.state.Design, entry)
	writeUpdated(w, ts.state.Design)
}

func (ts *TestServer) teams(w http.ResponseWriter, _ *http.Request) {
	teams := ts.state.Teams
	if teams == nil {
		teams = []stats.TeamStats{}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (ts *TestServer) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, user.List{Users: ts.state.Users})
}

func (ts *TestServer) updateUser(w http.ResponseWriter, r *http.Request) {
	i := ts.userIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	var body struct {
		Role user.Role `json:"role"`
		Team user.Team `json:"team"`
	}
	if !decode(w, r, &body) {
		return
	}
	ts.state.Users[i].Role = body.Role
	ts.state.Users[i].Team = body.Team
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (ts *TestServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	i := ts.userIndex(chi.URLParam(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	ts.state.Users = slices.Delete(ts.state.Users, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (ts *TestServer) listQueries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, query.List{Queries: ts.state.Queries})
}

func (ts *TestServer) submitQuery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ts.nextID++
	ts.state.Queries = append(ts.state.Queries, query.Query{
		ID:       fmt.Sprintf("q-%d", ts.nextID),
		Name:     r.FormValue("name"),
		Category: query.Category(r.FormValue("category")),
		Message:  r.FormValue("message"),
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "submitted"})
}

func (ts *TestServer) addressQuery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	i := slices.IndexFunc(ts.state.Queries, func(q query.Query) bool { return q.ID == id })
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "query not found"})
		return
	}
	var body struct {
		Solution    string `json:"solution"`
		AddressedBy string `json:"addressed_by"`
	}
	if !decode(w, r, &body) {
		return
	}
	q := &ts.state.Queries[i]
	q.Addressed = true
	q.Solution = body.Solution
	q.AddressedBy = body.AddressedBy
	writeJSON(w, http.StatusOK, map[string]string{"message": "addressed"})
}

func (ts *TestServer) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &creds) {
		return
	}
	acct, ok := ts.state.Accounts[creds.Email]
	if !ok || acct.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.Identity})
}

func (ts *TestServer) logout(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("passkey") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "passkey required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (ts *TestServer) createAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	email := r.FormValue("email")
	if _, exists := ts.state.Accounts[email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "account already exists"})
		return
	}
	ts.nextID++
	id := fmt.Sprintf("u-%d", ts.nextID)
	identity := user.Identity{ID: id, Name: r.FormValue("name"), Email: email, Role: user.RoleUnset, Team: user.TeamUnset}
	ts.state.Accounts[email] = Account{Password: r.FormValue("password"), Identity: identity}
	ts.state.Users = append(ts.state.Users, user.User{
		ID:         id,
		Name:       identity.Name,
		Email:      email,
		Role:       identity.Role,
		Team:       identity.Team,
		Department: r.FormValue("department"),
		Year:       r.FormValue("year"),
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "account created"})
}

func (ts *TestServer) eventIndex(id string) int {
	return slices.IndexFunc(ts.state.Events, func(ev event.Event) bool { return ev.ID == id })
}

func (ts *TestServer) userIndex(id string) int {
	return slices.IndexFunc(ts.state.Users, func(u user.User) bool { return u.ID == id })
}

func hasPeriod[T stats.Entry](entries []T, p stats.Period) bool {
	return slices.ContainsFunc(entries, func(e T) bool { return e.Key() == p })
}

func writeUpdated[T stats.Entry](w http.ResponseWriter, series []T) {
	writeJSON(w, http.StatusOK, map[string]any{
		"updated_data": map[string]any{"stat": series},
	})
}

// mergeJSON overlays patch onto ev by wire field name.
func mergeJSON(ev event.Event, patch map[string]any) (event.Event, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return ev, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ev, err
	}
	maps.Copy(fields, patch)
	raw, err = json.Marshal(fields)
	if err != nil {
		return ev, err
	}
	var out event.Event
	if err := json.Unmarshal(raw, &out); err != nil {
		return ev, err
	}
	return out, nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
