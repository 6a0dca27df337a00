package tem

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		k    float64
		want Band
	}{
		{0, BandVeryWeak},
		{0.0099, BandVeryWeak},
		{0.01, BandWeak},
		{0.15, BandWeak},
		{0.3, BandModerate},
		{0.5, BandModerate},
		{0.7, BandStrong},
		{0.85, BandStrong},
		{0.9, BandVeryStrong},
		{0.99, BandVeryStrong},
		{1.2, BandVeryStrong},
		{-0.5, BandModerate},
		{-0.95, BandVeryStrong},
		{math.NaN(), BandVeryStrong},
	}
	for _, tt := range tests {
		if got := Classify(tt.k); got != tt.want {
			t.Errorf("Classify(%g) = %v, want %v", tt.k, got, tt.want)
		}
	}
}

func TestBandString(t *testing.T) {
	tests := []struct {
		band Band
		want string
	}{
		{BandVeryWeak, "very weak"},
		{BandWeak, "weak"},
		{BandModerate, "moderate"},
		{BandStrong, "strong"},
		{BandVeryStrong, "very strong"},
	}
	for _, tt := range tests {
		if got := tt.band.String(); got != tt.want {
			t.Errorf("Band(%d).String() = %q, want %q", tt.band, got, tt.want)
		}
	}
}

func TestBandInterpretation(t *testing.T) {
	tests := []struct {
		band Band
		want string
	}{
		{BandVeryWeak, "Very weak coupling between the conductors."},
		{BandWeak, "Weak coupling between the conductors."},
		{BandModerate, "Moderate coupling between the conductors."},
		{BandStrong, "Strong coupling between the conductors."},
		{BandVeryStrong, "Very strong coupling, approaching ideal coupling."},
	}
	for _, tt := range tests {
		if got := tt.band.Interpretation(); got != tt.want {
			t.Errorf("Band(%d).Interpretation() = %q, want %q", tt.band, got, tt.want)
		}
	}
}
