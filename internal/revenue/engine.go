// Package revenue derives the monetary value of a booking from its
// location type and attendee count. The computation is pure and total:
// every input yields a deterministic amount and there is no error path.
package revenue

import (
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
)

// Base amounts per location, in whole currency units. Unknown locations
// derive from a zero base. The table is fixed at build time; bookings are
// never re-rated when it changes.
var baseAmounts = map[demodomain.Location]int64{
	demodomain.LocationVirtual:    1000,
	demodomain.LocationNexus:      5000,
	demodomain.LocationOnSite:     2500,
	demodomain.LocationOnLocation: 7500,
}

const (
	// includedAttendees come free with every booking.
	includedAttendees = 5
	// perExtraAttendee is charged for each attendee beyond the included
	// count.
	perExtraAttendee = 100
)

// Derive computes base(location) + perExtraAttendee * max(0, attendees-5).
func Derive(location demodomain.Location, attendees int) int64 {
	base := baseAmounts[location]

	extra := attendees - includedAttendees
	if extra < 0 {
		extra = 0
	}
	return base + int64(extra)*perExtraAttendee
}

// Base exposes the base amount for a location (0 when unknown).
func Base(location demodomain.Location) int64 {
	return baseAmounts[location]
}
