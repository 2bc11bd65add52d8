package stats

import (
	"slices"
	"time"
)

// Period is the calendar month a stats entry covers. Month is the English
// month name the API stores ("March").
type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month().String(), Year: t.Year()}
}

// Key returns the period itself so embedding types satisfy Entry.
func (p Period) Key() Period { return p }

// Label is the short chart label, e.g. "Mar '24".
func (p Period) Label() string {
	month := p.Month
	if len(month) > 3 {
		month = month[:3]
	}
	return month + " '" + time.Date(p.Year, 1, 1, 0, 0, 0, 0, time.UTC).Format("06")
}

func (p Period) ordinal() int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == p.Month {
			return p.Year*12 + int(m) - 1
		}
	}
	return p.Year * 12
}

// MediaEntry is one month of social follower counts.
type MediaEntry struct {
	Period
	Instagram int `json:"instagram"`
	Linkedin  int `json:"linkedin"`
	Youtube   int `json:"youtube"`
}

// DesignEntry is one month of poster output.
type DesignEntry struct {
	Period
	Posters int `json:"posters"`
}

// EventEntry is one month of completed events.
type EventEntry struct {
	Period
	Events int `json:"events"`
}

// Entry is any monthly stats entry.
type Entry interface {
	MediaEntry | DesignEntry | EventEntry
	Key() Period
}

// Series is the payload of GET /stats/{media,design,event}.
type Series[T Entry] struct {
	Stats []T `json:"stats"`
}

type (
	MediaSeries  = Series[MediaEntry]
	DesignSeries = Series[DesignEntry]
	EventSeries  = Series[EventEntry]
)

// Has reports whether an entry for p exists.
func (s *Series[T]) Has(p Period) bool {
	if s == nil {
		return false
	}
	return slices.ContainsFunc(s.Stats, func(e T) bool { return e.Key() == p })
}

// Latest returns the last entry in API order.
func (s *Series[T]) Latest() (T, bool) {
	return s.fromEnd(1)
}

// Previous returns the entry before Latest.
func (s *Series[T]) Previous() (T, bool) {
	return s.fromEnd(2)
}

func (s *Series[T]) fromEnd(n int) (T, bool) {
	var zero T
	if s == nil || len(s.Stats) < n {
		return zero, false
	}
	return s.Stats[len(s.Stats)-n], true
}

// Sorted returns the entries in chronological order.
func (s *Series[T]) Sorted() []T {
	if s == nil {
		return nil
	}
	out := slices.Clone(s.Stats)
	slices.SortStableFunc(out, func(a, b T) int {
		return a.Key().ordinal() - b.Key().ordinal()
	})
	return out
}

// NeedsEntry reports whether the month containing now has no entry yet.
func NeedsEntry[T Entry](s *Series[T], now time.Time) bool {
	return !s.Has(PeriodOf(now))
}

// Direction is the month-over-month movement of a metric.
type Direction string

const (
	Up      Direction = "up"
	Down    Direction = "down"
	Neutral Direction = "neutral"
)

// Trend compares a metric with the previous month. A zero previous value
// counts as no history.
func Trend(current, previous int) Direction {
	switch {
	case previous == 0:
		return Neutral
	case current > previous:
		return Up
	case current < previous:
		return Down
	}
	return Neutral
}

// MediaTrends is the trend of each media metric.
type MediaTrends struct {
	Instagram Direction `json:"instagram"`
	Linkedin  Direction `json:"linkedin"`
	Youtube   Direction `json:"youtube"`
}

// MediaTrend computes the trends between the last two media entries.
func MediaTrend(s *MediaSeries) MediaTrends {
	latest, _ := s.Latest()
	previous, _ := s.Previous()
	return MediaTrends{
		Instagram: Trend(latest.Instagram, previous.Instagram),
		Linkedin:  Trend(latest.Linkedin, previous.Linkedin),
		Youtube:   Trend(latest.Youtube, previous.Youtube),
	}
}

// DesignTrend computes the poster trend between the last two design entries.
func DesignTrend(s *DesignSeries) Direction {
	latest, _ := s.Latest()
	previous, _ := s.Previous()
	return Trend(latest.Posters, previous.Posters)
}

// Counters is the payload of GET /events/count.
type Counters struct {
	TotalEvents int `json:"total_events"`
	Completed   int `json:"completed"`
	Youtube     int `json:"youtube"`
	Insta       int `json:"insta"`
	Linkedin    int `json:"linkedin"`
}

// Pending is the number of events not yet completed.
func (c Counters) Pending() int {
	if c.TotalEvents < c.Completed {
		return 0
	}
	return c.TotalEvents - c.Completed
}

// TeamStats is one team's contribution summary from GET /teams/stats.
type TeamStats struct {
	Name        string        `json:"name"`
	Color       string        `json:"color,omitempty"`
	TotalEvents int           `json:"totalEvents"`
	Members     []MemberStats `json:"members"`
}

// MemberStats is a member's event count within a team.
type MemberStats struct {
	Name   string `json:"name"`
	Events int    `json:"events"`
}

// Share returns the member's rounded percentage of the team total.
func (t TeamStats) Share(m MemberStats) int {
	if t.TotalEvents <= 0 {
		return 0
	}
	return (m.Events*100 + t.TotalEvents/2) / t.TotalEvents
}
