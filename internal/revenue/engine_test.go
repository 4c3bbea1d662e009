package revenue

import (
	"testing"

	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name      string
		location  demodomain.Location
		attendees int
		want      int64
	}{
		{"virtual base", demodomain.LocationVirtual, 1, 1000},
		{"virtual at threshold", demodomain.LocationVirtual, 5, 1000},
		{"virtual over threshold", demodomain.LocationVirtual, 8, 1300},
		{"nexus base", demodomain.LocationNexus, 5, 5000},
		{"nexus over threshold", demodomain.LocationNexus, 6, 5100},
		{"on_site base", demodomain.LocationOnSite, 3, 2500},
		{"on_site over threshold", demodomain.LocationOnSite, 15, 3500},
		{"on_location base", demodomain.LocationOnLocation, 5, 7500},
		{"on_location over threshold", demodomain.LocationOnLocation, 30, 10000},
		{"unknown location", demodomain.Location("rooftop"), 10, 500},
		{"zero attendees", demodomain.LocationVirtual, 0, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Derive(tc.location, tc.attendees); got != tc.want {
				t.Fatalf("Derive(%s, %d) = %d, want %d", tc.location, tc.attendees, got, tc.want)
			}
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	first := Derive(demodomain.LocationNexus, 12)
	for i := 0; i < 10; i++ {
		if got := Derive(demodomain.LocationNexus, 12); got != first {
			t.Fatalf("expected stable result, got %d then %d", first, got)
		}
	}
}

func TestBase(t *testing.T) {
	if got := Base(demodomain.LocationOnLocation); got != 7500 {
		t.Fatalf("expected 7500, got %d", got)
	}
	if got := Base(demodomain.Location("unknown")); got != 0 {
		t.Fatalf("expected 0 for unknown location, got %d", got)
	}
}
