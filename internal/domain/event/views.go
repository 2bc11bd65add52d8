package event

import (
	"slices"
	"time"
)

// ByStatus returns the events with the given status, preserving order.
func ByStatus(events []Event, status Status) []Event {
	var out []Event
	for _, e := range events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// Buckets partitions the tech lead's view of approved events.
type Buckets struct {
	// Submittable events still need form and meet links.
	Submittable []Event `json:"submittable"`
	// Editable events have links that may still change before the event date.
	Editable []Event `json:"editable"`
	// Disabled events are past their date.
	Disabled []Event `json:"disabled"`
}

type bucket int

const (
	bucketNone bucket = iota
	bucketSubmittable
	bucketEditable
	bucketDisabled
)

func classify(e Event, today time.Time) bucket {
	if e.Stage() < StageTechLead {
		return bucketNone
	}
	if !e.Submitted {
		return bucketSubmittable
	}
	date, ok := parseDate(e.EventDate)
	if ok && !date.Before(today) {
		return bucketEditable
	}
	return bucketDisabled
}

// TechLeadBuckets groups approved events for the tech lead, each bucket sorted by
// event date ascending. Events still awaiting approval are left out.
func TechLeadBuckets(events []Event, today time.Time) Buckets {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	var b Buckets
	for _, e := range events {
		switch classify(e, day) {
		case bucketSubmittable:
			b.Submittable = append(b.Submittable, e)
		case bucketEditable:
			b.Editable = append(b.Editable, e)
		case bucketDisabled:
			b.Disabled = append(b.Disabled, e)
		}
	}
	sortByDate(b.Submittable)
	sortByDate(b.Editable)
	sortByDate(b.Disabled)
	return b
}

// SortByContributed orders events newest contribution first.
func SortByContributed(events []Event) []Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b Event) int {
		ta, okA := parseDate(a.ContributedDate)
		tb, okB := parseDate(b.ContributedDate)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}

func sortByDate(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return compareDates(a.EventDate, b.EventDate)
	})
}

// compareDates orders parseable dates before unparseable ones.
func compareDates(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
