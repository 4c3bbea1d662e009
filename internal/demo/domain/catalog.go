package domain

import "time"

// BookingWindow restricts a location to a weekday and time-of-day range.
type BookingWindow struct {
	Weekday time.Weekday
	From    string // HH:MM, inclusive
	To      string // HH:MM, inclusive
}

// LocationType is static reference data describing a bookable venue type.
// The catalog is read-only at runtime.
type LocationType struct {
	ID           Location       `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Duration     string         `json:"duration"`
	Capacity     int            `json:"capacity"`
	Features     []string       `json:"features"`
	Requirements []string       `json:"requirements,omitempty"`
	Cost         string         `json:"cost,omitempty"`
	Window       *BookingWindow `json:"window,omitempty"`
}

// Catalog is the full set of location types keyed by location.
var Catalog = map[Location]LocationType{
	LocationVirtual: {
		ID:          LocationVirtual,
		Name:        "Virtual Demo",
		Description: "Interactive online demonstration of costs and usage",
		Duration:    "45 minutes",
		Capacity:    20,
		Features: []string{
			"Cost breakdown analysis",
			"Live usage demonstration",
			"Q&A session",
			"Follow-up resources",
		},
		Cost: "Free",
	},
	LocationNexus: {
		ID:          LocationNexus,
		Name:        "Nexus Event",
		Description: "Premium showcase event at regional hub",
		Duration:    "4 hours",
		Capacity:    100,
		Features: []string{
			"Product demonstrations",
			"Raffle prizes",
			"Free Sherpas",
			"Networking opportunities",
			"Refreshments provided",
			"Expert panels",
		},
	},
	LocationOnSite: {
		ID:          LocationOnSite,
		Name:        "On-site Friday Demo",
		Description: "Weekly demonstrations with our sales representatives",
		Duration:    "3 hours (10:00 AM - 1:00 PM)",
		Capacity:    15,
		Features: []string{
			"Hands-on demonstration",
			"One-on-one consultation",
			"Product testing",
			"Immediate feedback",
		},
		Requirements: []string{
			"Friday only",
			"Advanced booking required",
		},
		Window: &BookingWindow{Weekday: time.Friday, From: "10:00", To: "13:00"},
	},
	LocationOnLocation: {
		ID:          LocationOnLocation,
		Name:        "Premium On-location Demo",
		Description: "Exclusive demonstration at your location",
		Duration:    "Full day",
		Capacity:    30,
		Features: []string{
			"Customized presentation",
			"Full team support",
			"Environment setup",
			"Extended Q&A",
			"Implementation planning",
		},
		Cost: "Contact for pricing",
	},
}

// CatalogList returns the catalog in a stable display order.
func CatalogList() []LocationType {
	order := []Location{LocationVirtual, LocationNexus, LocationOnSite, LocationOnLocation}
	list := make([]LocationType, 0, len(order))
	for _, id := range order {
		list = append(list, Catalog[id])
	}
	return list
}
