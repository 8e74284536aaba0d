package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DispatchMetrics holds the dispatcher's OpenTelemetry instruments.
type DispatchMetrics struct {
	RunsTotal         metric.Int64Counter
	RunDuration       metric.Float64Histogram
	RecordsProcessed  metric.Int64Counter
	RecordFailures    metric.Int64Counter
	MessagesSentTotal metric.Int64Counter
	RecipientFailures metric.Int64Counter
	ActiveRuns        metric.Int64UpDownCounter
}

var (
	dispatchMetrics *DispatchMetrics
	meter           = otel.Meter("staffpulse")
)

// InitMetrics creates the dispatcher instruments. Safe to skip when
// otel is disabled; the recorders below tolerate a nil instance.
func InitMetrics() error {
	var err error
	m := &DispatchMetrics{}

	m.RunsTotal, err = meter.Int64Counter(
		"dispatch_runs_total",
		metric.WithDescription("Total number of dispatcher invocations"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	m.RunDuration, err = meter.Float64Histogram(
		"dispatch_run_duration_seconds",
		metric.WithDescription("Dispatcher invocation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.RecordsProcessed, err = meter.Int64Counter(
		"dispatch_records_processed_total",
		metric.WithDescription("Schedule records processed by the dispatcher"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return err
	}

	m.RecordFailures, err = meter.Int64Counter(
		"dispatch_record_failures_total",
		metric.WithDescription("Schedule records that ended in a record-level failure"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return err
	}

	m.MessagesSentTotal, err = meter.Int64Counter(
		"dispatch_messages_sent_total",
		metric.WithDescription("Outbound check-in messages accepted by the channel"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	m.RecipientFailures, err = meter.Int64Counter(
		"dispatch_recipient_failures_total",
		metric.WithDescription("Per-recipient send failures"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}

	m.ActiveRuns, err = meter.Int64UpDownCounter(
		"dispatch_active_runs",
		metric.WithDescription("Dispatcher invocations currently in flight"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	dispatchMetrics = m
	return nil
}

// RecordRun records one dispatcher invocation.
func RecordRun(ctx context.Context, durationSeconds float64, processed, recipientFailures, recordFailures int) {
	m := dispatchMetrics
	if m == nil {
		return
	}

	m.RunsTotal.Add(ctx, 1)
	m.RunDuration.Record(ctx, durationSeconds)
	m.RecordsProcessed.Add(ctx, int64(processed))
	m.RecordFailures.Add(ctx, int64(recordFailures))
	m.RecipientFailures.Add(ctx, int64(recipientFailures))
}

// RecordSend records a single outbound message result.
func RecordSend(ctx context.Context, provider string, accepted bool) {
	m := dispatchMetrics
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("provider", provider))
	if accepted {
		m.MessagesSentTotal.Add(ctx, 1, attrs)
	} else {
		m.RecipientFailures.Add(ctx, 1, attrs)
	}
}

// RunStarted / RunFinished track the in-flight gauge.
func RunStarted(ctx context.Context) {
	if dispatchMetrics != nil {
		dispatchMetrics.ActiveRuns.Add(ctx, 1)
	}
}

func RunFinished(ctx context.Context) {
	if dispatchMetrics != nil {
		dispatchMetrics.ActiveRuns.Add(ctx, -1)
	}
}
