package util

import "testing"

func TestFormatValueFactor(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{2.5, "H", "2.500 H"},
		{0.0035, "H", "3.500 mH"},
		{2.2e-6, "H", "2.200 uH"},
		{8.9012e-8, "H", "89.012 nH"},
		{1.25e-10, "F", "125.000 pF"},
		{-4.9e-16, "F", "-4.900e-16 F"},
		{3.546e-13, "H", "354.600 fH"},
		{1e-20, "F", "1.000e-20 F"},
	}
	for _, tt := range tests {
		if got := FormatValueFactor(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatValueFactor(%g, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestFormatScientific(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{8.9012004508e-8, "8.901200e-08"},
		{3.951741e-6, "3.951741e-06"},
		{0, "0.000000e+00"},
		{-4.9e-16, "-4.900000e-16"},
	}
	for _, tt := range tests {
		if got := FormatScientific(tt.value); got != tt.want {
			t.Errorf("FormatScientific(%g) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.766, "   0.766"},
		{3.951741e-6, "3.95e-06"},
		{0, "       0"},
	}
	for _, tt := range tests {
		if got := FormatMagnitude(tt.value); got != tt.want {
			t.Errorf("FormatMagnitude(%g) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
