package validation

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateCity verifies trimming, the empty check and the length bound.
func TestValidateCity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "Mumbai", "Mumbai", nil},
		{"trimmed", "  Paris  ", "Paris", nil},
		{"with punctuation", "St. Louis", "St. Louis", nil},
		{"unicode", "São Paulo", "São Paulo", nil},
		{"empty", "", "", ErrCityEmpty},
		{"whitespace only", "   ", "", ErrCityEmpty},
		{"too long", strings.Repeat("a", MaxCityLength+1), "", ErrCityTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCity(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateCity(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateCity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseCoordinates verifies the parse-or-absent contract.
func TestParseCoordinates(t *testing.T) {
	lat, lon, ok := ParseCoordinates("19.07", "72.88")
	if !ok {
		t.Fatal("ParseCoordinates(19.07, 72.88) ok = false, want true")
	}
	if lat != 19.07 || lon != 72.88 {
		t.Errorf("ParseCoordinates() = %v, %v, want 19.07, 72.88", lat, lon)
	}

	invalid := [][2]string{
		{"", ""},
		{"19.07", ""},
		{"", "72.88"},
		{"abc", "72.88"},
		{"19.07", "xyz"},
		{"NaN", "NaN"},
	}
	for _, pair := range invalid {
		if _, _, ok := ParseCoordinates(pair[0], pair[1]); ok {
			t.Errorf("ParseCoordinates(%q, %q) ok = true, want false", pair[0], pair[1])
		}
	}
}

// TestParseAmount verifies positive amounts pass and zero, negatives and
// garbage are rejected.
func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("1000")
	if err != nil {
		t.Fatalf("ParseAmount(1000) error = %v", err)
	}
	if got != 1000 {
		t.Errorf("ParseAmount(1000) = %v, want 1000", got)
	}

	if got, err := ParseAmount(" 12.5 "); err != nil || got != 12.5 {
		t.Errorf("ParseAmount( 12.5 ) = %v, %v, want 12.5, nil", got, err)
	}

	for _, bad := range []string{"", "abc", "-5", "0", "NaN", "+Inf"} {
		if _, err := ParseAmount(bad); !errors.Is(err, ErrAmountInvalid) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrAmountInvalid", bad, err)
		}
	}
}
