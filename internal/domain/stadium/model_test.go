package stadium

import (
	"math"
	"testing"
)

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coordinates
		want   bool
	}{
		{name: "regular", coords: Coordinates{Latitude: 32.79, Longitude: 34.96}, want: true},
		{name: "poles and antimeridian", coords: Coordinates{Latitude: -90, Longitude: 180}, want: true},
		{name: "latitude out of range", coords: Coordinates{Latitude: 91, Longitude: 0}, want: false},
		{name: "longitude out of range", coords: Coordinates{Latitude: 0, Longitude: -181}, want: false},
		{name: "nan", coords: Coordinates{Latitude: math.NaN(), Longitude: 0}, want: false},
		{name: "inf", coords: Coordinates{Latitude: 0, Longitude: math.Inf(1)}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.coords.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "30,780[1]", want: 30780, ok: true},
		{raw: "31,733 (seated)", want: 31733, ok: true},
		{raw: "14.000", want: 14000, ok: true},
		{raw: "  8000 ", want: 8000, ok: true},
		{raw: "", ok: false},
		{raw: "unknown", ok: false},
	}

	for _, tc := range tests {
		got := ParseCapacity(tc.raw)
		if !tc.ok {
			if got != nil {
				t.Fatalf("ParseCapacity(%q) = %d, want nil", tc.raw, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Fatalf("ParseCapacity(%q) = %v, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestTrimOpenedDate(t *testing.T) {
	if got := TrimOpenedDate("1991; 33 years ago"); got != "1991" {
		t.Fatalf("unexpected opened date %q", got)
	}
	if got := TrimOpenedDate("17 September 2014"); got != "17 September 2014" {
		t.Fatalf("unexpected opened date %q", got)
	}
}
