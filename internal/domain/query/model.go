package query

import (
	"slices"
)

// Category classifies a submitted query.
type Category string

const (
	CategoryQuery      Category = "query"
	CategoryHelp       Category = "help"
	CategorySuggestion Category = "suggestion"
)

var descriptions = map[Category]string{
	CategoryQuery:      "Point out mistakes or address a specific concern.",
	CategoryHelp:       "Request assistance or report an issue you are facing.",
	CategorySuggestion: "Propose ideas or improvements for processes or events.",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := descriptions[c]
	return ok
}

// Description is the help text shown next to the category.
func (c Category) Description() string { return descriptions[c] }

// Query is a member or visitor query as stored by the API.
type Query struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Message     string   `json:"message"`
	Addressed   bool     `json:"addressed"`
	Solution    string   `json:"solution,omitempty"`
	AddressedBy string   `json:"addressed_by,omitempty"`
}

// List is the payload of GET /queries.
type List struct {
	Queries []Query `json:"queries"`
}

// Find returns the query with the given ID.
func (l *List) Find(id string) (Query, bool) {
	if l == nil {
		return Query{}, false
	}
	i := slices.IndexFunc(l.Queries, func(q Query) bool { return q.ID == id })
	if i < 0 {
		return Query{}, false
	}
	return l.Queries[i], true
}

// Pending counts unaddressed queries.
func (l *List) Pending() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, q := range l.Queries {
		if !q.Addressed {
			n++
		}
	}
	return n
}

// PendingFirst returns the queries with unaddressed ones first, otherwise in
// API order.
func PendingFirst(queries []Query) []Query {
	out := slices.Clone(queries)
	slices.SortStableFunc(out, func(a, b Query) int {
		switch {
		case a.Addressed == b.Addressed:
			return 0
		case a.Addressed:
			return 1
		}
		return -1
	})
	return out
}

// Submission is the body of POST /submit_query.
type Submission struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}
