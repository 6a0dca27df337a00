package tem

import "math"

// Band classifies the magnitude of a coupling coefficient.
type Band int

const (
	BandVeryWeak Band = iota
	BandWeak
	BandModerate
	BandStrong
	BandVeryStrong
)

// Classify maps |k| to its coupling band. Thresholds are exclusive on
// the lower band, so a value sitting exactly on 0.3 is already
// moderate. A NaN coefficient fails every comparison and lands in the
// top band.
func Classify(k float64) Band {
	abs := math.Abs(k)
	switch {
	case abs < 0.01:
		return BandVeryWeak
	case abs < 0.3:
		return BandWeak
	case abs < 0.7:
		return BandModerate
	case abs < 0.9:
		return BandStrong
	default:
		return BandVeryStrong
	}
}

func (b Band) String() string {
	switch b {
	case BandVeryWeak:
		return "very weak"
	case BandWeak:
		return "weak"
	case BandModerate:
		return "moderate"
	case BandStrong:
		return "strong"
	default:
		return "very strong"
	}
}

// Interpretation returns the report sentence for the band.
func (b Band) Interpretation() string {
	switch b {
	case BandVeryWeak:
		return "Very weak coupling between the conductors."
	case BandWeak:
		return "Weak coupling between the conductors."
	case BandModerate:
		return "Moderate coupling between the conductors."
	case BandStrong:
		return "Strong coupling between the conductors."
	default:
		return "Very strong coupling, approaching ideal coupling."
	}
}
