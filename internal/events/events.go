// Package events stores CRM domain events in a transactional outbox.
package events

// Event types emitted by the write commands.
const (
	EventCustomerCreated   = "customer.created"
	EventDemoCreated       = "demo.created"
	EventRevenueAttributed = "demo.revenue_attributed"
)

// DemoCreatedPayload captures the minimal data downstream consumers need
// to react to a new booking.
type DemoCreatedPayload struct {
	DemoID     string `json:"demo_id"`
	CustomerID string `json:"customer_id"`
	Location   string `json:"location"`
	Attendees  int    `json:"attendees"`
	Revenue    int64  `json:"revenue"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p DemoCreatedPayload) ToMap() map[string]any {
	return map[string]any{
		"demo_id":     p.DemoID,
		"customer_id": p.CustomerID,
		"location":    p.Location,
		"attendees":   p.Attendees,
		"revenue":     p.Revenue,
	}
}

// RevenueAttributedPayload records a ledger attribution.
type RevenueAttributedPayload struct {
	DemoID     string `json:"demo_id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Recurring  bool   `json:"recurring"`
}

// ToMap converts the payload into an outbox-friendly map.
func (p RevenueAttributedPayload) ToMap() map[string]any {
	return map[string]any{
		"demo_id":     p.DemoID,
		"customer_id": p.CustomerID,
		"amount":      p.Amount,
		"recurring":   p.Recurring,
	}
}
