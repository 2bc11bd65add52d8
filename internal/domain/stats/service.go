package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/user"
)

// Service handles monthly stats submissions and dashboard summaries.
type Service struct {
	gateway    Gateway
	cache      Cache
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new stats service.
func NewService(gateway Gateway, cache Cache, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		cache:      cache,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// Media returns the media series, loading it on first use.
func (s *Service) Media(ctx context.Context) (*MediaSeries, error) {
	return cached(ctx, s.cache.MediaStats, s.cache.RefetchMediaStats, "media stats")
}

// Design returns the design series, loading it on first use.
func (s *Service) Design(ctx context.Context) (*DesignSeries, error) {
	return cached(ctx, s.cache.DesignStats, s.cache.RefetchDesignStats, "design stats")
}

// Events returns the completed-events series, loading it on first use.
func (s *Service) Events(ctx context.Context) (*EventSeries, error) {
	return cached(ctx, s.cache.EventStats, s.cache.RefetchEventStats, "event stats")
}

// Counters returns the aggregate counters, loading them on first use.
func (s *Service) Counters(ctx context.Context) (*Counters, error) {
	return cached(ctx, s.cache.Counters, s.cache.RefetchCounters, "counters")
}

// Overview assembles the dashboard summary. Resources that fail to load are
// left empty and their errors joined.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		out  Overview
		errs []error
	)
	if c, err := s.Counters(ctx); err != nil {
		errs = append(errs, err)
	} else {
		out.Counters = *c
		out.Pending = c.Pending()
	}
	if m, err := s.Media(ctx); err != nil {
		errs = append(errs, err)
	} else {
		out.Media = m.Sorted()
		out.MediaTrend = MediaTrend(m)
	}
	if d, err := s.Design(ctx); err != nil {
		errs = append(errs, err)
	} else {
		out.Design = d.Sorted()
		out.DesignTrend = DesignTrend(d)
	}
	if e, err := s.Events(ctx); err != nil {
		errs = append(errs, err)
	} else {
		out.Events = e.Sorted()
	}
	return out, errors.Join(errs...)
}

// Teams returns per-team contribution counts. They are not cached.
func (s *Service) Teams(ctx context.Context) ([]TeamStats, error) {
	teams, err := s.gateway.TeamStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team stats: %w", err)
	}
	return teams, nil
}

// NeedsMediaEntry reports whether this month's media entry is missing.
func (s *Service) NeedsMediaEntry(ctx context.Context) (bool, error) {
	series, err := s.Media(ctx)
	if err != nil {
		return false, err
	}
	return NeedsEntry(series, s.now()), nil
}

// NeedsDesignEntry reports whether this month's design entry is missing.
func (s *Service) NeedsDesignEntry(ctx context.Context) (bool, error) {
	series, err := s.Design(ctx)
	if err != nil {
		return false, err
	}
	return NeedsEntry(series, s.now()), nil
}

// SubmitMedia adds this month's media entry. A month that already has an
// entry is rejected without a request.
func (s *Service) SubmitMedia(ctx context.Context, caller user.Identity, in MediaInput) (*MediaSeries, error) {
	if err := caller.CanAccess(user.ViewMedia); err != nil {
		return nil, err
	}
	values, err := metrics(map[string]*int{"instagram": in.Instagram, "linkedin": in.Linkedin, "youtube": in.Youtube})
	if err != nil {
		return nil, err
	}

	series, err := s.Media(ctx)
	if err != nil {
		return nil, err
	}
	period := PeriodOf(s.now())
	if series.Has(period) {
		return nil, fmt.Errorf("%w: %s %d", ErrDuplicatePeriod, period.Month, period.Year)
	}

	entry := MediaEntry{Period: period, Instagram: values["instagram"], Linkedin: values["linkedin"], Youtube: values["youtube"]}
	updated, err := s.gateway.AddMediaStat(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("submitting media stats: %w", err)
	}
	next := &MediaSeries{Stats: updated}
	s.cache.SetMediaStats(next)
	s.log(ctx, caller, "media", period)
	return next, nil
}

// SubmitDesign adds this month's design entry.
func (s *Service) SubmitDesign(ctx context.Context, caller user.Identity, in DesignInput) (*DesignSeries, error) {
	if err := caller.CanAccess(user.ViewDesign); err != nil {
		return nil, err
	}
	values, err := metrics(map[string]*int{"posters": in.Posters})
	if err != nil {
		return nil, err
	}

	series, err := s.Design(ctx)
	if err != nil {
		return nil, err
	}
	period := PeriodOf(s.now())
	if series.Has(period) {
		return nil, fmt.Errorf("%w: %s %d", ErrDuplicatePeriod, period.Month, period.Year)
	}

	updated, err := s.gateway.AddDesignStat(ctx, DesignEntry{Period: period, Posters: values["posters"]})
	if err != nil {
		return nil, fmt.Errorf("submitting design stats: %w", err)
	}
	next := &DesignSeries{Stats: updated}
	s.cache.SetDesignStats(next)
	s.log(ctx, caller, "design", period)
	return next, nil
}

func metrics(in map[string]*int) (map[string]int, error) {
	out := make(map[string]int, len(in))
	for name, v := range in {
		if v == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
		if *v < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
		out[name] = *v
	}
	return out, nil
}

func cached[T any](ctx context.Context, get func() *T, refetch func(context.Context) (*T, error), what string) (*T, error) {
	if v := get(); v != nil {
		return v, nil
	}
	v, err := refetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", what, err)
	}
	return v, nil
}

func (s *Service) log(ctx context.Context, caller user.Identity, kind string, period Period) {
	if s.logger != nil {
		s.logger.Info("stats submitted", "kind", kind, "month", period.Month, "year", period.Year)
	}
	if s.activities == nil {
		return
	}
	entry := &activity.Entry{
		Type:    activity.TypeStatsSubmitted,
		Actor:   caller.Name,
		Summary: fmt.Sprintf("%s stats for %s %d", kind, period.Month, period.Year),
	}
	if err := s.activities.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity log failed", "type", entry.Type, "error", err)
	}
}
