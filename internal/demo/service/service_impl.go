package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	"github.com/bigdino44/DemoManagerPro/internal/events"
	"github.com/bigdino44/DemoManagerPro/internal/observability/metrics"
	"github.com/bigdino44/DemoManagerPro/internal/revenue"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Recorder customerdomain.RevenueRecorder
	Outbox   *events.Outbox
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID    *snowflake.Node
	recorder customerdomain.RevenueRecorder
	outbox   *events.Outbox
	metrics  *metrics.Metrics
}

func NewService(p ServiceParam) demodomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("demo.service"),

		genID:    p.GenID,
		recorder: p.Recorder,
		outbox:   p.Outbox,
		metrics:  p.Metrics,
	}
}

// Create validates the booking against the location catalog, derives its
// revenue and commits the booking row together with the ledger
// attribution and the outbox event. Readers can never observe the booking
// without its revenue side effect.
func (s *Service) Create(ctx context.Context, req demodomain.CreateDemoRequest) (*demodomain.Demo, error) {
	location, ok := demodomain.Catalog[req.Location]
	if !ok {
		return nil, demodomain.ErrInvalidLocation
	}
	if req.Attendees < 1 {
		return nil, demodomain.ErrInvalidAttendees
	}
	if req.Attendees > location.Capacity {
		return nil, demodomain.ErrTooManyAttendees
	}
	if req.Location != demodomain.LocationVirtual && strings.TrimSpace(req.LocationDetails) == "" {
		return nil, demodomain.ErrMissingLocationDetails
	}
	if req.Date.IsZero() {
		return nil, demodomain.ErrInvalidDate
	}
	if err := checkBookingWindow(location, req.Date, req.Time); err != nil {
		return nil, err
	}

	exists, err := s.customerExists(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, demodomain.ErrCustomerNotFound
	}

	amount := revenue.Derive(req.Location, req.Attendees)
	demo := &demodomain.Demo{
		ID:              s.genID.Generate(),
		Time:            strings.TrimSpace(req.Time),
		Company:         strings.TrimSpace(req.Company),
		Type:            strings.TrimSpace(req.Type),
		Location:        req.Location,
		LocationDetails: strings.TrimSpace(req.LocationDetails),
		Attendees:       req.Attendees,
		Date:            req.Date.UTC(),
		CustomerID:      req.CustomerID,
		Revenue:         amount,
		CreatedAt:       time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(demo).Error; err != nil {
			return err
		}
		if err := s.recorder.AddDemoRevenue(ctx, tx, demo.CustomerID, demo.ID, amount, string(demo.Location)); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventDemoCreated,
			Payload: events.DemoCreatedPayload{
				DemoID:     demo.ID.String(),
				CustomerID: demo.CustomerID.String(),
				Location:   string(demo.Location),
				Attendees:  demo.Attendees,
				Revenue:    amount,
			}.ToMap(),
			DedupeKey: "demo:" + demo.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveDemoBooked(string(demo.Location), amount)
	s.log.Info("demo booked",
		zap.String("demo_id", demo.ID.String()),
		zap.String("customer_id", demo.CustomerID.String()),
		zap.String("location", string(demo.Location)),
		zap.Int("attendees", demo.Attendees),
		zap.Int64("revenue", amount),
	)
	return demo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*demodomain.Demo, error) {
	var demo demodomain.Demo
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&demo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, demodomain.ErrDemoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &demo, nil
}

func (s *Service) List(ctx context.Context) ([]demodomain.Demo, error) {
	var demos []demodomain.Demo
	if err := s.db.WithContext(ctx).Order("id asc").Find(&demos).Error; err != nil {
		return nil, err
	}
	return demos, nil
}

func (s *Service) ListForDate(ctx context.Context, date time.Time) ([]demodomain.Demo, error) {
	dayStart := date.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var demos []demodomain.Demo
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("id asc").
		Find(&demos).Error
	if err != nil {
		return nil, err
	}
	return demos, nil
}

func (s *Service) customerExists(ctx context.Context, id snowflake.ID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&customerdomain.CustomerProfile{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// checkBookingWindow enforces catalog scheduling constraints (OnSite is
// Fridays 10:00-13:00 only). Times compare lexically as zero-padded HH:MM.
func checkBookingWindow(location demodomain.LocationType, date time.Time, startTime string) error {
	window := location.Window
	if window == nil {
		return nil
	}
	if date.UTC().Weekday() != window.Weekday {
		return demodomain.ErrOutsideBookingWindow
	}

	hhmm, err := normalizeTime(startTime)
	if err != nil {
		return err
	}
	if hhmm < window.From || hhmm > window.To {
		return demodomain.ErrOutsideBookingWindow
	}
	return nil
}

// normalizeTime accepts "HH:MM" or "H:MM AM/PM" and returns 24h "HH:MM".
func normalizeTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", demodomain.ErrInvalidTime
	}
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM"} {
		if parsed, err := time.Parse(layout, strings.ToUpper(value)); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", demodomain.ErrInvalidTime
}
