package consts

import "math"

const (
	MU0        = 4 * math.Pi * 1e-7 // Permeability of free space (H/m)
	EPSILON0   = 8.85418782e-12     // Permittivity of free space (F/m)
	LIGHTSPEED = 299792458.0        // Speed of light (m/s)
)
