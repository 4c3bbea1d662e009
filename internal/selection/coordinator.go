// Package selection keeps the "currently selected" demo, customer and
// date consistent for the presentation layer.
package selection

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/bigdino44/DemoManagerPro/internal/cache"
	"github.com/bigdino44/DemoManagerPro/internal/clock"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Snapshot is a consistent read of the selection state.
type Snapshot struct {
	DemoID   *snowflake.ID                   `json:"demo_id,omitempty"`
	Customer *customerdomain.CustomerProfile `json:"customer,omitempty"`
	Date     time.Time                       `json:"date"`
}

type Param struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	DemoSvc     demodomain.Service
	CustomerSvc customerdomain.Service
}

// Coordinator holds the process-wide selection slots. Selecting a demo
// resolves and selects its owning customer in the same call, so readers
// never observe the demo side updated without the customer side.
// Selecting a customer directly does not touch the demo slot: customer
// browsing happens independently of the calendar view.
type Coordinator struct {
	log         *zap.Logger
	clock       clock.Clock
	demoSvc     demodomain.Service
	customerSvc customerdomain.Service

	// owners caches demo id -> owning customer id. Bookings are
	// immutable and never deleted, so entries cannot go stale.
	owners *cache.Memory[snowflake.ID, snowflake.ID]

	mu       sync.RWMutex
	demoID   *snowflake.ID
	customer *customerdomain.CustomerProfile
	date     time.Time
}

func NewCoordinator(p Param) *Coordinator {
	return &Coordinator{
		log:         p.Log.Named("selection"),
		clock:       p.Clock,
		demoSvc:     p.DemoSvc,
		customerSvc: p.CustomerSvc,
		owners:      cache.NewMemory[snowflake.ID, snowflake.ID](),
		date:        p.Clock.Now(),
	}
}

// SelectDemo selects a booking and synchronously resolves its owning
// customer. An unknown demo id leaves the customer slot untouched; an
// existing demo whose customer has vanished clears it.
func (c *Coordinator) SelectDemo(ctx context.Context, id snowflake.ID) error {
	customerID, found, err := c.resolveOwner(ctx, id)
	if err != nil {
		return err
	}

	var profile *customerdomain.CustomerProfile
	if found {
		profile, err = c.customerSvc.GetByID(ctx, customerID)
		if err != nil && !errors.Is(err, customerdomain.ErrCustomerNotFound) {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	selected := id
	c.demoID = &selected
	if found {
		c.customer = profile
	}
	return nil
}

// ClearDemo clears both slots: clearing one side must not leave the
// other dangling.
func (c *Coordinator) ClearDemo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.demoID = nil
	c.customer = nil
}

// SelectCustomer sets only the customer slot; the demo slot is left
// as-is.
func (c *Coordinator) SelectCustomer(profile *customerdomain.CustomerProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customer = profile
}

// SelectDate replaces the calendar date used to filter bookings.
func (c *Coordinator) SelectDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = date.UTC()
}

// Current returns a snapshot of the selection state.
func (c *Coordinator) Current() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{Date: c.date}
	if c.demoID != nil {
		id := *c.demoID
		snap.DemoID = &id
	}
	if c.customer != nil {
		copied := *c.customer
		snap.Customer = &copied
	}
	return snap
}

func (c *Coordinator) resolveOwner(ctx context.Context, demoID snowflake.ID) (snowflake.ID, bool, error) {
	if owner, ok := c.owners.Get(demoID); ok {
		return owner, true, nil
	}

	demo, err := c.demoSvc.GetByID(ctx, demoID)
	if errors.Is(err, demodomain.ErrDemoNotFound) {
		c.log.Debug("select for unknown demo", zap.String("demo_id", demoID.String()))
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	c.owners.Set(demoID, demo.CustomerID, 0)
	return demo.CustomerID, true, nil
}
