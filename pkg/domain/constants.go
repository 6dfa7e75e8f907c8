package domain

const (
	// GasConstant is the molar gas constant in J/(mol*K).
	GasConstant = 8.314462618

	// CelsiusOffset converts between Kelvin and degrees Celsius.
	CelsiusOffset = 273.15

	// MmHgPerBar converts vapor pressures from mmHg (Antoine units) to bar.
	MmHgPerBar = 750.062

	// AtmosphereBar is one standard atmosphere in bar.
	AtmosphereBar = 1.01325

	// DefaultPressure is the system pressure used when a request omits one (bar).
	DefaultPressure = 1.013

	// DefaultPoints is the default number of sweep points for a diagram.
	DefaultPoints = 21

	// DefaultAlpha is the NRTL non-randomness used for unknown pairs.
	DefaultAlpha = 0.3
)
