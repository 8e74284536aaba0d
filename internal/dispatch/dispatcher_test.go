package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"staffpulse/internal/model"
	"staffpulse/pkg/channel"
	"staffpulse/utils"
)

type fakeStore struct {
	mu      sync.Mutex
	records map[int64]*model.ScheduledCheckin

	markSentFailures int
	claimErr         error
}

func newFakeStore(records ...*model.ScheduledCheckin) *fakeStore {
	s := &fakeStore{records: make(map[int64]*model.ScheduledCheckin)}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeStore) FindDue(_ context.Context, now time.Time) ([]model.ScheduledCheckin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.ScheduledCheckin
	for _, r := range s.records {
		if r.Status != model.ScheduleStatusPending {
			continue
		}
		if r.SentAt != nil && utils.SameDay(*r.SentAt, now) {
			continue
		}
		switch r.Recurrence {
		case model.RecurrenceOnce:
			if !r.ScheduledAt.After(now) {
				due = append(due, *r)
			}
		case model.RecurrenceWeekly:
			if r.DayOfWeek == nil || *r.DayOfWeek != int16(now.UTC().Weekday()) {
				continue
			}
			if utils.TimeOfDay(r.ScheduledAt) <= utils.TimeOfDay(now) {
				due = append(due, *r)
			}
		}
	}
	return due, nil
}

func (s *fakeStore) Claim(_ context.Context, id int64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claimErr != nil {
		return false, s.claimErr
	}

	r, ok := s.records[id]
	if !ok || r.Status != model.ScheduleStatusPending {
		return false, nil
	}
	if r.SentAt != nil && utils.SameDay(*r.SentAt, now) {
		return false, nil
	}
	t := now
	r.SentAt = &t
	return true, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id int64, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markSentFailures > 0 {
		s.markSentFailures--
		return errors.New("store unavailable")
	}

	r := s.records[id]
	if r.Recurrence == model.RecurrenceOnce {
		r.Status = model.ScheduleStatusSent
	}
	t := sentAt
	r.SentAt = &t
	r.LastError = nil
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.records[id]
	r.LastError = &reason
	if r.Recurrence == model.RecurrenceOnce {
		r.Status = model.ScheduleStatusFailed
	} else {
		r.SentAt = nil
	}
	return nil
}

func (s *fakeStore) get(id int64) model.ScheduledCheckin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.records[id]
}

type fakeDirectory struct {
	employees map[int64][]model.Employee
	err       error
}

func (d *fakeDirectory) ActiveEmployees(_ context.Context, orgID int64, department *string) ([]model.Employee, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []model.Employee
	for _, e := range d.employees[orgID] {
		if department != nil && (e.Department == nil || *e.Department != *department) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func employee(id, orgID int64, phone string, department string) model.Employee {
	e := model.Employee{
		OrganizationID: orgID,
		FullName:       "Test Employee",
		Phone:          phone,
		Status:         model.EmployeeStatusActive,
	}
	e.ID = id
	if department != "" {
		e.Department = &department
	}
	return e
}

func onceSchedule(id, orgID int64, at time.Time) *model.ScheduledCheckin {
	r := &model.ScheduledCheckin{
		OrganizationID: orgID,
		ScheduledAt:    at,
		Recurrence:     model.RecurrenceOnce,
		Status:         model.ScheduleStatusPending,
	}
	r.ID = id
	return r
}

func weeklySchedule(id, orgID int64, anchor time.Time, day int16) *model.ScheduledCheckin {
	r := &model.ScheduledCheckin{
		OrganizationID: orgID,
		ScheduledAt:    anchor,
		Recurrence:     model.RecurrenceWeekly,
		DayOfWeek:      &day,
		Status:         model.ScheduleStatusPending,
	}
	r.ID = id
	return r
}

const defaultText = "How are you feeling today?"

// monday 2026-03-02 09:30 UTC
var monday = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestDispatcher(store Store, directory Directory, sender channel.Client) *Dispatcher {
	return NewDispatcher(store, directory, sender, 4, defaultText)
}

func TestOnceScheduleFiresExactlyOnce(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", ""), employee(2, 10, "+15550002", "")},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.Processed != 1 || summary.RecipientFailures != 0 || summary.RecordFailures != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if sender.CallCount() != 2 {
		t.Fatalf("expected 2 sends, got %d", sender.CallCount())
	}
	if got := store.get(1); got.Status != model.ScheduleStatusSent {
		t.Fatalf("expected status sent, got %s", got.Status)
	}

	// the same instant again must be a no-op
	summary, err = d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("second RunAt: %v", err)
	}
	if summary.Processed != 0 {
		t.Fatalf("expected no records processed on repeat run, got %d", summary.Processed)
	}
	if sender.CallCount() != 2 {
		t.Fatalf("expected no further sends, got %d total", sender.CallCount())
	}
}

func TestWeeklyScheduleAtMostOncePerDayAndReArms(t *testing.T) {
	anchor := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) // 09:00
	store := newFakeStore(weeklySchedule(1, 10, anchor, int16(time.Monday)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", "")},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	if summary, _ := d.RunAt(context.Background(), monday); summary.Processed != 1 {
		t.Fatalf("expected weekly schedule to fire, got %+v", summary)
	}

	// later the same day: nothing
	if summary, _ := d.RunAt(context.Background(), monday.Add(2*time.Hour)); summary.Processed != 0 {
		t.Fatal("weekly schedule fired twice in one day")
	}
	if sender.CallCount() != 1 {
		t.Fatalf("expected 1 send, got %d", sender.CallCount())
	}

	if got := store.get(1); got.Status != model.ScheduleStatusPending {
		t.Fatalf("weekly schedule must stay pending, got %s", got.Status)
	}

	// next monday it fires again
	if summary, _ := d.RunAt(context.Background(), monday.AddDate(0, 0, 7)); summary.Processed != 1 {
		t.Fatal("weekly schedule did not re-arm for the next week")
	}
	if sender.CallCount() != 2 {
		t.Fatalf("expected 2 sends after two weeks, got %d", sender.CallCount())
	}
}

func TestWeeklyScheduleSkipsNonMatchingDay(t *testing.T) {
	anchor := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	store := newFakeStore(weeklySchedule(1, 10, anchor, int16(time.Friday)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", "")},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.Processed != 0 || sender.CallCount() != 0 {
		t.Fatalf("schedule for friday fired on monday: %+v", summary)
	}
}

func TestEmptyDueSetMakesNoChannelCalls(t *testing.T) {
	store := newFakeStore()
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, &fakeDirectory{}, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary != (Summary{}) {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if sender.CallCount() != 0 {
		t.Fatal("channel was called with nothing due")
	}
}

func TestEmptyRecipientSetStillMarksSent(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, &fakeDirectory{}, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.Processed != 1 || summary.RecordFailures != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if sender.CallCount() != 0 {
		t.Fatal("channel was called for an empty recipient set")
	}
	if got := store.get(1); got.Status != model.ScheduleStatusSent {
		t.Fatalf("expected status sent, got %s", got.Status)
	}
}

func TestRecipientFailureDoesNotFailRecord(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", ""), employee(2, 10, "+15550002", "")},
	}}
	sender := channel.NewMockClient()
	sender.RejectPhones["+15550002"] = true
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected record processed despite recipient failure, got %+v", summary)
	}
	if summary.RecipientFailures != 1 {
		t.Fatalf("expected 1 recipient failure, got %d", summary.RecipientFailures)
	}
	if summary.RecordFailures != 0 {
		t.Fatalf("recipient failure escalated to record failure: %+v", summary)
	}
	if got := store.get(1); got.Status != model.ScheduleStatusSent {
		t.Fatalf("expected status sent, got %s", got.Status)
	}
}

func TestDepartmentFilterNarrowsRecipients(t *testing.T) {
	record := onceSchedule(1, 10, monday.Add(-time.Minute))
	dept := "engineering"
	record.Department = &dept

	store := newFakeStore(record)
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {
			employee(1, 10, "+15550001", "engineering"),
			employee(2, 10, "+15550002", "sales"),
		},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	if _, err := d.RunAt(context.Background(), monday); err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if sender.CallCount() != 1 {
		t.Fatalf("expected 1 send to the engineering employee, got %d", sender.CallCount())
	}
	if sender.Calls[0].Phone != "+15550001" {
		t.Fatalf("sent to the wrong employee: %s", sender.Calls[0].Phone)
	}
}

func TestDirectoryErrorMarksRecordFailed(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	dir := &fakeDirectory{err: errors.New("directory down")}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.RecordFailures != 1 || summary.Processed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	got := store.get(1)
	if got.Status != model.ScheduleStatusFailed {
		t.Fatalf("expected status failed, got %s", got.Status)
	}
	if got.LastError == nil {
		t.Fatal("expected last_error to be recorded")
	}
}

func TestWeeklyDirectoryErrorKeepsPendingAndRetries(t *testing.T) {
	anchor := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	store := newFakeStore(weeklySchedule(1, 10, anchor, int16(time.Monday)))
	dir := &fakeDirectory{
		err: errors.New("directory down"),
		employees: map[int64][]model.Employee{
			10: {employee(1, 10, "+15550001", "")},
		},
	}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	if summary, _ := d.RunAt(context.Background(), monday); summary.RecordFailures != 1 {
		t.Fatal("expected a record failure while the directory is down")
	}

	got := store.get(1)
	if got.Status != model.ScheduleStatusPending {
		t.Fatalf("weekly record must never go terminal, got %s", got.Status)
	}
	if got.SentAt != nil {
		t.Fatal("expected sent_at cleared so the next invocation retries")
	}

	// directory recovers, the same day retries
	dir.err = nil
	if summary, _ := d.RunAt(context.Background(), monday.Add(5*time.Minute)); summary.Processed != 1 {
		t.Fatal("weekly record was not retried after the failure cleared")
	}
}

func TestMarkSentFailureAfterRetryCountsAsRecordFailure(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	store.markSentFailures = 2 // first attempt and its retry both fail
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", "")},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.RecordFailures != 1 || summary.Processed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestMarkSentTransientFailureIsRetried(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	store.markSentFailures = 1 // retry succeeds
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", "")},
	}}
	sender := channel.NewMockClient()
	d := newTestDispatcher(store, dir, sender)

	summary, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	if summary.Processed != 1 || summary.RecordFailures != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := store.get(1); got.Status != model.ScheduleStatusSent {
		t.Fatalf("expected status sent after retry, got %s", got.Status)
	}
}

func TestConcurrentDispatchersSendOnce(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", ""), employee(2, 10, "+15550002", "")},
	}}
	sender := channel.NewMockClient()

	// two dispatcher instances share the store, as two processes would
	d1 := newTestDispatcher(store, dir, sender)
	d2 := newTestDispatcher(store, dir, sender)

	var wg sync.WaitGroup
	summaries := make([]Summary, 2)
	for i, d := range []*Dispatcher{d1, d2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summaries[i], _ = d.RunAt(context.Background(), monday)
		}()
	}
	wg.Wait()

	if total := summaries[0].Processed + summaries[1].Processed; total != 1 {
		t.Fatalf("expected the record claimed exactly once, processed %d times", total)
	}
	if sender.CallCount() != 2 {
		t.Fatalf("expected 2 sends total across both runs, got %d", sender.CallCount())
	}
}

func TestOverlappingRunsOnOneDispatcherCollapse(t *testing.T) {
	store := newFakeStore(onceSchedule(1, 10, monday.Add(-time.Minute)))
	dir := &fakeDirectory{employees: map[int64][]model.Employee{
		10: {employee(1, 10, "+15550001", "")},
	}}

	block := make(chan struct{})
	sender := &blockingSender{
		release: block,
		started: make(chan struct{}),
		inner:   channel.NewMockClient(),
	}
	d := newTestDispatcher(store, dir, sender)

	done := make(chan Summary, 1)
	go func() {
		s, _ := d.RunAt(context.Background(), monday)
		done <- s
	}()

	<-sender.started // first run is mid-send

	second, err := d.RunAt(context.Background(), monday)
	if err != nil {
		t.Fatalf("overlapping RunAt: %v", err)
	}
	if second != (Summary{}) {
		t.Fatalf("overlapping run should be a no-op, got %+v", second)
	}

	close(block)
	first := <-done
	if first.Processed != 1 {
		t.Fatalf("first run should have processed the record: %+v", first)
	}
}

type blockingSender struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
	inner   *channel.MockClient
}

func (b *blockingSender) Send(ctx context.Context, phone, text string) (*channel.Result, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.inner.Send(ctx, phone, text)
}

func TestRenderMessagePrefersOverride(t *testing.T) {
	record := onceSchedule(1, 10, monday)
	if got := RenderMessage(record, defaultText); got != defaultText {
		t.Fatalf("expected default text, got %q", got)
	}

	override := "Team offsite pulse: 1-5?"
	record.Message = &override
	if got := RenderMessage(record, defaultText); got != override {
		t.Fatalf("expected override, got %q", got)
	}

	blank := "   "
	record.Message = &blank
	if got := RenderMessage(record, defaultText); got != defaultText {
		t.Fatalf("blank override should fall back to default, got %q", got)
	}
}
