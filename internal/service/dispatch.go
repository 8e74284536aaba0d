package service

import (
	"context"
	"sync"
	"time"

	"staffpulse/config"
	"staffpulse/internal/cache"
	"staffpulse/internal/dispatch"
	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/channel"
	"staffpulse/pkg/metrics"
	"staffpulse/utils"
)

// DispatchRunner wires the dispatcher core to the real stores and
// channel, adds redis fast-path marks and run metrics.
type DispatchRunner struct {
	dispatcher *dispatch.Dispatcher
}

var (
	dispatchRunner     *DispatchRunner
	dispatchRunnerOnce sync.Once
)

func GetDispatchRunner() *DispatchRunner {
	dispatchRunnerOnce.Do(func() {
		cfg := config.Cfg
		dispatchRunner = &DispatchRunner{
			dispatcher: dispatch.NewDispatcher(
				&markedScheduleStore{inner: store.GetScheduleStore()},
				store.GetEmployeeStore(),
				&meteredChannel{inner: channel.GetClient()},
				cfg.DispatchSendConcurrency,
				cfg.DefaultCheckinMessage,
			),
		}
	})
	return dispatchRunner
}

// RunOnce executes one dispatch pass and records its metrics.
func (r *DispatchRunner) RunOnce(ctx context.Context) (dispatch.Summary, time.Time, error) {
	now := time.Now().UTC()

	metrics.RunStarted(ctx)
	defer metrics.RunFinished(ctx)

	start := time.Now()
	summary, err := r.dispatcher.RunAt(ctx, now)
	if err != nil {
		return summary, now, err
	}

	metrics.RecordRun(ctx, time.Since(start).Seconds(),
		summary.Processed, summary.RecipientFailures, summary.RecordFailures)

	return summary, now, nil
}

// markedScheduleStore layers redis per-day marks over the DB store. The
// marks only short-circuit repeat scans; the conditional UPDATE in the
// inner store stays the arbiter.
type markedScheduleStore struct {
	inner *store.ScheduleStore
}

func (m *markedScheduleStore) FindDue(ctx context.Context, now time.Time) ([]model.ScheduledCheckin, error) {
	records, err := m.inner.FindDue(ctx, now)
	if err != nil {
		return nil, err
	}

	day := utils.DayKey(now)
	filtered := records[:0]
	for _, r := range records {
		if cache.IsDispatched(ctx, day, r.ID) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (m *markedScheduleStore) Claim(ctx context.Context, id int64, now time.Time) (bool, error) {
	return m.inner.Claim(ctx, id, now)
}

func (m *markedScheduleStore) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	if err := m.inner.MarkSent(ctx, id, sentAt); err != nil {
		return err
	}
	// marked only after the DB write so a failed write keeps the
	// record eligible for the next pass
	cache.MarkDispatched(ctx, utils.DayKey(sentAt), id)
	return nil
}

func (m *markedScheduleStore) MarkFailed(ctx context.Context, id int64, reason string) error {
	return m.inner.MarkFailed(ctx, id, reason)
}

// meteredChannel counts every outbound message by provider.
type meteredChannel struct {
	inner channel.Client
}

func (m *meteredChannel) Send(ctx context.Context, phone, text string) (*channel.Result, error) {
	result, err := m.inner.Send(ctx, phone, text)

	provider := config.Cfg.ChannelProvider
	accepted := err == nil && result != nil && result.Accepted
	if result != nil && result.Provider != "" {
		provider = result.Provider
	}
	metrics.RecordSend(ctx, provider, accepted)

	return result, err
}
