package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CreateCustomerRequest carries the intake form fields. Revenue fields are
// deliberately absent: they are always zero-initialized.
type CreateCustomerRequest struct {
	Company         string
	Industry        string
	Size            string
	Budget          string
	Website         string
	Status          CustomerStatus
	PainPoints      []string
	Requirements    []string
	Stakeholders    []StakeholderInput
	CurrentSolution string
	Timeline        string
	Notes           string
	LastContact     time.Time
}

// StakeholderInput is a stakeholder as submitted on the intake form.
type StakeholderInput struct {
	Name      string
	Role      string
	Influence StakeholderInfluence
	Email     string
	Phone     string
	Notes     string
}

// UpdateCustomerRequest is a partial update; nil fields are left untouched.
type UpdateCustomerRequest struct {
	Company         *string
	Industry        *string
	Size            *string
	Budget          *string
	Website         *string
	Status          *CustomerStatus
	PainPoints      []string
	Requirements    []string
	CurrentSolution *string
	Timeline        *string
	Notes           *string
	LastContact     *time.Time
}

// Service is the customer ledger contract.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*CustomerProfile, error)
	// Update merges the non-nil fields into the profile. An unknown id
	// is a no-op; the boolean reports whether a row changed.
	Update(ctx context.Context, id snowflake.ID, req UpdateCustomerRequest) (bool, error)
	GetByID(ctx context.Context, id snowflake.ID) (*CustomerProfile, error)
	List(ctx context.Context) ([]CustomerProfile, error)
	// UpdateRevenue overwrites the three revenue aggregates. This is the
	// only operation allowed to lower them. Unknown id is a no-op.
	UpdateRevenue(ctx context.Context, id snowflake.ID, expected, actual, recurring int64) (bool, error)
}

// RevenueRecorder is the capability handed to the demo catalog: the sole
// channel through which booking revenue reaches the ledger. It runs inside
// the caller's transaction so a booking and its attribution commit as one
// unit. Locations listed in RecurringLocations additionally grow the
// recurring revenue aggregate.
type RevenueRecorder interface {
	AddDemoRevenue(ctx context.Context, tx *gorm.DB, customerID, demoID snowflake.ID, amount int64, location string) error
}

// RecurringLocations names the booking locations treated as opening a
// recurring relationship: revenue from them grows RecurringRevenue as well
// as ActualRevenue. Product rule; confirmed nowhere else, so it lives in
// one place.
var RecurringLocations = map[string]struct{}{
	"nexus":       {},
	"on_location": {},
}

// IsRecurringLocation reports whether a location feeds recurring revenue.
func IsRecurringLocation(location string) bool {
	_, ok := RecurringLocations[location]
	return ok
}

var (
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidInfluence = errors.New("invalid_influence")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrNegativeRevenue  = errors.New("negative_revenue")
	ErrInvalidAmount    = errors.New("invalid_amount")
)
