package field

import "testing"

func TestParseKeyFlexible(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantPark string
		wantCode string
		wantOK   bool
	}{
		{name: "slash separator", raw: "Park/Field", wantPark: "park", wantCode: "field", wantOK: true},
		{name: "underscore separator", raw: "Park_Field", wantPark: "park", wantCode: "field", wantOK: true},
		{name: "multi word field", raw: "Park/Field 1", wantPark: "park", wantCode: "field-1", wantOK: true},
		{name: "whitespace run", raw: "Riverside_North  Diamond", wantPark: "riverside", wantCode: "north-diamond", wantOK: true},
		{name: "padded sides", raw: "  Park / Field 1 ", wantPark: "park", wantCode: "field-1", wantOK: true},
		{name: "leftmost separator wins", raw: "a_b/c", wantPark: "a", wantCode: "b/c", wantOK: true},
		{name: "no separator", raw: "ParkField", wantOK: false},
		{name: "empty park", raw: "/Field", wantOK: false},
		{name: "empty field", raw: "Park_ ", wantOK: false},
		{name: "blank", raw: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := ParseKeyFlexible(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseKeyFlexible(%q) ok = %t, want %t", tt.raw, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if key.ParkCode != tt.wantPark || key.FieldCode != tt.wantCode {
				t.Fatalf("ParseKeyFlexible(%q) = (%q, %q), want (%q, %q)", tt.raw, key.ParkCode, key.FieldCode, tt.wantPark, tt.wantCode)
			}
		})
	}
}

func TestParseKeyFlexibleNormalizedIdempotent(t *testing.T) {
	first, ok := ParseKeyFlexible("Edgewater_Field 3")
	if !ok {
		t.Fatalf("expected parse success")
	}
	if first.Normalized() != "edgewater/field-3" {
		t.Fatalf("Normalized = %q, want edgewater/field-3", first.Normalized())
	}

	second, ok := ParseKeyFlexible(first.Normalized())
	if !ok {
		t.Fatalf("expected reparse success")
	}
	if second != first {
		t.Fatalf("reparse changed key: %+v vs %+v", second, first)
	}
}

func TestParseActive(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		fallback string
		want     bool
	}{
		{name: "active", status: "Active", fallback: "", want: true},
		{name: "inactive", status: "Inactive", fallback: "", want: false},
		{name: "inactive embedded", status: "currently INACTIVE", fallback: "", want: false},
		{name: "both blank defaults active", status: "", fallback: "", want: true},
		{name: "fallback consulted", status: "", fallback: "inactive", want: false},
		{name: "fallback active", status: " ", fallback: "yes", want: true},
		{name: "unrecognized text is active", status: "open for play", fallback: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseActive(tt.status, tt.fallback); got != tt.want {
				t.Fatalf("ParseActive(%q, %q) = %t, want %t", tt.status, tt.fallback, got, tt.want)
			}
		})
	}
}
