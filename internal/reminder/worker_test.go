package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/bigdino44/DemoManagerPro/internal/clock"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/bigdino44/DemoManagerPro/pkg/db/pagination"
	"go.uber.org/zap"
)

func TestRunOnceRaisesOneReminderPerDemo(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	demos := &fakeDemoLister{rows: []demodomain.Demo{
		{ID: snowflake.ID(1), Company: "TechCorp", Time: "10:00", Location: demodomain.LocationVirtual, Date: now},
		{ID: snowflake.ID(2), Company: "Global Solutions", Time: "14:00", Location: demodomain.LocationNexus, Date: now},
	}}
	sink := newFakeNotificationSink()

	worker := NewWorker(Params{
		Log:             zap.NewNop(),
		Clock:           clock.Fixed{At: now},
		DemoSvc:         demos,
		NotificationSvc: sink,
	})

	if err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(sink.byKey) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(sink.byKey))
	}
	if _, ok := sink.byKey["demo_reminder:1"]; !ok {
		t.Fatal("expected reminder for demo 1")
	}
}

func TestRunOnceIsIdempotent(t *testing.T) {
	now := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	demos := &fakeDemoLister{rows: []demodomain.Demo{
		{ID: snowflake.ID(1), Company: "TechCorp", Time: "10:00", Location: demodomain.LocationVirtual, Date: now},
	}}
	sink := newFakeNotificationSink()

	worker := NewWorker(Params{
		Log:             zap.NewNop(),
		Clock:           clock.Fixed{At: now},
		DemoSvc:         demos,
		NotificationSvc: sink,
	})

	for i := 0; i < 3; i++ {
		if err := worker.RunOnce(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(sink.byKey) != 1 {
		t.Fatalf("expected a single deduplicated reminder, got %d", len(sink.byKey))
	}
}

type fakeDemoLister struct {
	rows []demodomain.Demo
}

func (f *fakeDemoLister) Create(ctx context.Context, req demodomain.CreateDemoRequest) (*demodomain.Demo, error) {
	panic("not used")
}

func (f *fakeDemoLister) GetByID(ctx context.Context, id snowflake.ID) (*demodomain.Demo, error) {
	panic("not used")
}

func (f *fakeDemoLister) List(ctx context.Context) ([]demodomain.Demo, error) {
	panic("not used")
}

func (f *fakeDemoLister) ListForDate(ctx context.Context, date time.Time) ([]demodomain.Demo, error) {
	var out []demodomain.Demo
	day := date.UTC().Truncate(24 * time.Hour)
	for _, row := range f.rows {
		if row.Date.UTC().Truncate(24 * time.Hour).Equal(day) {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeNotificationSink struct {
	byKey map[string]notificationdomain.AddNotificationRequest
}

func newFakeNotificationSink() *fakeNotificationSink {
	return &fakeNotificationSink{byKey: map[string]notificationdomain.AddNotificationRequest{}}
}

func (f *fakeNotificationSink) Add(ctx context.Context, req notificationdomain.AddNotificationRequest) (*notificationdomain.Notification, error) {
	if _, exists := f.byKey[req.DedupeKey]; exists {
		return nil, nil
	}
	f.byKey[req.DedupeKey] = req
	return &notificationdomain.Notification{Title: req.Title}, nil
}

func (f *fakeNotificationSink) MarkAsRead(ctx context.Context, id snowflake.ID) (bool, error) {
	panic("not used")
}

func (f *fakeNotificationSink) MarkAllAsRead(ctx context.Context) (int64, error) {
	panic("not used")
}

func (f *fakeNotificationSink) List(ctx context.Context, p pagination.Pagination) ([]notificationdomain.Notification, pagination.PageInfo, error) {
	panic("not used")
}

func (f *fakeNotificationSink) UnreadCount() int64 {
	panic("not used")
}
