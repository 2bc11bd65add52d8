package otel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Outcomes of refetches and tool calls.
const (
	OutcomeApplied = "applied"
	OutcomeStale   = "stale"
	OutcomeError   = "error"
	OutcomeOK      = "ok"
)

var (
	initMetricsOnce  sync.Once
	apiRequests      metric.Int64Counter
	apiDuration      metric.Float64Histogram
	storeRefetches   metric.Int64Counter
	storeListeners   metric.Int64ObservableGauge
	eventTransitions metric.Int64Counter
	toolCalls        metric.Int64Counter
	listenerCount    int64
	listenerCountMu  sync.Mutex
)

// InitMetrics creates the instruments. Only the first call does work.
// Call after InitMeterProvider.
func InitMetrics(ctx context.Context) error {
	var err error
	initMetricsOnce.Do(func() {
		m := Meter()
		apiRequests, err = m.Int64Counter("clubboard_api_requests_total", metric.WithDescription("Requests sent to the club API"))
		if err != nil {
			return
		}
		apiDuration, err = m.Float64Histogram("clubboard_api_request_duration_seconds", metric.WithDescription("Club API request latency in seconds"))
		if err != nil {
			return
		}
		storeRefetches, err = m.Int64Counter("clubboard_store_refetch_total", metric.WithDescription("Store refetches by resource and outcome"))
		if err != nil {
			return
		}
		eventTransitions, err = m.Int64Counter("clubboard_event_transitions_total", metric.WithDescription("Persisted event pipeline transitions"))
		if err != nil {
			return
		}
		toolCalls, err = m.Int64Counter("clubboard_tool_calls_total", metric.WithDescription("MCP tool invocations"))
		if err != nil {
			return
		}
		storeListeners, err = m.Int64ObservableGauge("clubboard_store_listeners", metric.WithDescription("Current store subscribers"))
		if err != nil {
			return
		}
		_, err = m.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			listenerCountMu.Lock()
			n := listenerCount
			listenerCountMu.Unlock()
			o.ObserveInt64(storeListeners, n)
			return nil
		}, storeListeners)
	})
	return err
}

// RecordAPIRequest records one club API call.
func RecordAPIRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(AttrMethod.String(method), AttrRoute.String(route), AttrStatus.Int(status))
	if apiRequests != nil {
		apiRequests.Add(ctx, 1, attrs)
	}
	if apiDuration != nil {
		apiDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// RecordRefetch records a store refetch outcome.
func RecordRefetch(ctx context.Context, resource, outcome string) {
	if storeRefetches == nil {
		return
	}
	storeRefetches.Add(ctx, 1, metric.WithAttributes(AttrResource.String(resource), AttrOutcome.String(outcome)))
}

// RecordTransition records a persisted event transition.
func RecordTransition(ctx context.Context, action string, to int) {
	if eventTransitions == nil {
		return
	}
	eventTransitions.Add(ctx, 1, metric.WithAttributes(AttrAction.String(action), AttrStage.Int(to)))
}

// RecordToolCall records one MCP tool call.
func RecordToolCall(ctx context.Context, tool, outcome string) {
	if toolCalls == nil {
		return
	}
	toolCalls.Add(ctx, 1, metric.WithAttributes(AttrTool.String(tool), AttrOutcome.String(outcome)))
}

// AddListener adds 1 to the store listener gauge.
func AddListener() {
	listenerCountMu.Lock()
	listenerCount++
	listenerCountMu.Unlock()
}

// RemoveListener subtracts 1 from the store listener gauge.
func RemoveListener() {
	listenerCountMu.Lock()
	listenerCount--
	if listenerCount < 0 {
		listenerCount = 0
	}
	listenerCountMu.Unlock()
}
