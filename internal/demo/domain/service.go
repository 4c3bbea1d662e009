package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CreateDemoRequest carries the booking form fields. Revenue is never
// accepted from the caller; it is derived at creation time.
type CreateDemoRequest struct {
	Time            string
	Company         string
	Type            string
	Location        Location
	LocationDetails string
	Attendees       int
	Date            time.Time
	CustomerID      snowflake.ID
}

// Service is the demo catalog contract. Create is observably atomic:
// the booking row, its revenue attribution and the outbox event commit
// in a single transaction.
type Service interface {
	Create(ctx context.Context, req CreateDemoRequest) (*Demo, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Demo, error)
	List(ctx context.Context) ([]Demo, error)
	// ListForDate returns bookings whose date falls on the same calendar
	// day (UTC) as the argument, in insertion order.
	ListForDate(ctx context.Context, date time.Time) ([]Demo, error)
}

var (
	ErrInvalidLocation        = errors.New("invalid_location")
	ErrInvalidAttendees       = errors.New("invalid_attendees")
	ErrTooManyAttendees       = errors.New("too_many_attendees")
	ErrMissingLocationDetails = errors.New("missing_location_details")
	ErrOutsideBookingWindow   = errors.New("outside_booking_window")
	ErrInvalidDate            = errors.New("invalid_date")
	ErrInvalidTime            = errors.New("invalid_time")
	ErrCustomerNotFound       = errors.New("customer_not_found")
	ErrDemoNotFound           = errors.New("demo_not_found")
)
