package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"staffpulse/internal/model"
	"staffpulse/pkg/channel"
	"staffpulse/pkg/logger"
)

// Store is the schedule persistence port.
type Store interface {
	FindDue(ctx context.Context, now time.Time) ([]model.ScheduledCheckin, error)
	Claim(ctx context.Context, id int64, now time.Time) (bool, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}

// Directory resolves the recipients of a schedule.
type Directory interface {
	ActiveEmployees(ctx context.Context, orgID int64, department *string) ([]model.Employee, error)
}

// Summary is the result of one dispatch invocation.
type Summary struct {
	Processed         int `json:"processed"`
	RecipientFailures int `json:"recipient_failures"`
	RecordFailures    int `json:"record_failures"`
}

// Dispatcher walks due schedules and pushes check-in messages out. It is
// trigger agnostic; callers decide when Run fires.
type Dispatcher struct {
	store     Store
	directory Directory
	sender    channel.Client

	sendConcurrency int
	defaultMessage  string

	mu      sync.Mutex
	running bool
}

func NewDispatcher(store Store, directory Directory, sender channel.Client, sendConcurrency int, defaultMessage string) *Dispatcher {
	if sendConcurrency <= 0 {
		sendConcurrency = 1
	}
	return &Dispatcher{
		store:           store,
		directory:       directory,
		sender:          sender,
		sendConcurrency: sendConcurrency,
		defaultMessage:  defaultMessage,
	}
}

// Run dispatches everything due at the current time.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	return d.RunAt(ctx, time.Now().UTC())
}

// RunAt dispatches everything due at now. Overlapping invocations on the
// same Dispatcher are collapsed; the second caller gets an empty summary.
func (d *Dispatcher) RunAt(ctx context.Context, now time.Time) (Summary, error) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		logger.Logger.Debug("Dispatch run already in flight, skipping")
		return Summary{}, nil
	}
	d.running = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	due, err := d.store.FindDue(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to find due schedules: %w", err)
	}
	if len(due) == 0 {
		return Summary{}, nil
	}

	logger.Logger.Info("Dispatch run starting",
		zap.Int("due", len(due)),
		zap.Time("now", now),
	)

	var (
		summary   Summary
		summaryMu sync.Mutex
		wg        sync.WaitGroup
	)

	// one shared pool bounds provider calls across all records
	sendSlots := make(chan struct{}, d.sendConcurrency)

	for i := range due {
		record := due[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Logger.Error("Dispatch record panicked",
						zap.Int64("schedule_id", record.ID),
						zap.Any("panic", r),
					)
					d.markFailed(ctx, record.ID, fmt.Sprintf("panic: %v", r))
					summaryMu.Lock()
					summary.RecordFailures++
					summaryMu.Unlock()
				}
			}()

			processed, recipientFailures, recordFailed := d.processRecord(ctx, &record, now, sendSlots)

			summaryMu.Lock()
			if processed {
				summary.Processed++
			}
			if recordFailed {
				summary.RecordFailures++
			}
			summary.RecipientFailures += recipientFailures
			summaryMu.Unlock()
		}()
	}

	wg.Wait()

	logger.Logger.Info("Dispatch run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("recipient_failures", summary.RecipientFailures),
		zap.Int("record_failures", summary.RecordFailures),
	)

	return summary, nil
}

// processRecord handles one due schedule. Failures of individual
// recipients never fail the record.
func (d *Dispatcher) processRecord(ctx context.Context, record *model.ScheduledCheckin, now time.Time, sendSlots chan struct{}) (processed bool, recipientFailures int, recordFailed bool) {
	claimed, err := d.claim(ctx, record.ID, now)
	if err != nil {
		logger.Logger.Error("Failed to claim schedule",
			zap.Int64("schedule_id", record.ID),
			zap.Error(err),
		)
		return false, 0, true
	}
	if !claimed {
		logger.Logger.Debug("Schedule claimed elsewhere, skipping",
			zap.Int64("schedule_id", record.ID),
		)
		return false, 0, false
	}

	employees, err := d.directory.ActiveEmployees(ctx, record.OrganizationID, record.Department)
	if err != nil {
		d.markFailed(ctx, record.ID, fmt.Sprintf("resolve recipients: %v", err))
		return false, 0, true
	}

	if len(employees) == 0 {
		// nothing to send, but the occurrence still counts as done
		if err := d.markSent(ctx, record.ID, now); err != nil {
			return false, 0, true
		}
		return true, 0, false
	}

	text := RenderMessage(record, d.defaultMessage)

	var (
		failures int
		failMu   sync.Mutex
		sendWg   sync.WaitGroup
	)

	for i := range employees {
		employee := employees[i]
		sendWg.Add(1)
		sendSlots <- struct{}{}
		go func() {
			defer sendWg.Done()
			defer func() { <-sendSlots }()

			result, sendErr := d.sender.Send(ctx, employee.Phone, text)
			if sendErr != nil || (result != nil && !result.Accepted) {
				logger.Logger.Warn("Check-in message not delivered",
					zap.Int64("schedule_id", record.ID),
					zap.Int64("employee_id", employee.ID),
					zap.Error(sendErr),
				)
				failMu.Lock()
				failures++
				failMu.Unlock()
			}
		}()
	}

	sendWg.Wait()

	if err := d.markSent(ctx, record.ID, now); err != nil {
		logger.Logger.Error("Failed to mark schedule sent",
			zap.Int64("schedule_id", record.ID),
			zap.Error(err),
		)
		return false, failures, true
	}

	return true, failures, false
}

// claim retries the conditional update once on error.
func (d *Dispatcher) claim(ctx context.Context, id int64, now time.Time) (bool, error) {
	claimed, err := d.store.Claim(ctx, id, now)
	if err == nil {
		return claimed, nil
	}
	return d.store.Claim(ctx, id, now)
}

// markSent retries once; the store write is what keeps the occurrence
// from firing again, so it gets a second chance.
func (d *Dispatcher) markSent(ctx context.Context, id int64, sentAt time.Time) error {
	if err := d.store.MarkSent(ctx, id, sentAt); err == nil {
		return nil
	}
	return d.store.MarkSent(ctx, id, sentAt)
}

func (d *Dispatcher) markFailed(ctx context.Context, id int64, reason string) {
	if err := d.store.MarkFailed(ctx, id, reason); err == nil {
		return
	}
	if err := d.store.MarkFailed(ctx, id, reason); err != nil {
		logger.Logger.Error("Failed to mark schedule failed",
			zap.Int64("schedule_id", id),
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}
