package timeman

// allocCoeffs is the tuned coefficient set behind the allocation formulas.
// The numbers are calibration data and must be reproduced exactly, so they
// live in one immutable table owned by the allocator instead of loose
// package globals.
type allocCoeffs struct {
	// once-per-game scale anchor, derived from the first seen time left
	adjustSlope  float64
	adjustOffset float64

	// sudden-death optimum scale
	optBase      float64
	optSlope     float64
	optCap       float64
	optOffset    float64
	plyShift     float64
	plyExp       float64
	optFactorCap float64

	// sudden-death maximum scale
	maxBase     float64
	maxSlope    float64
	maxFloor    float64
	maxScaleCap float64
	maxPlyDiv   float64

	// fixed-horizon (moves-to-go) scales
	mtgOptBase  float64
	mtgPlyDiv   float64
	mtgMaxBase  float64
	mtgMaxSlope float64

	// final clamps, as fractions of the remaining clock
	optClockFrac  float64
	maxClockFrac  float64
	hardClockFrac float64 // overhead-relative ceiling on the maximum

	// horizon handling, in centi-moves
	horizonDefault int
	horizonMax     int
	horizonPerMs   float64
	shortClockMs   int64
}

var defaultCoeffs = allocCoeffs{
	adjustSlope:  0.3128,
	adjustOffset: -0.4354,

	optBase:      0.0032116,
	optSlope:     0.000321123,
	optCap:       0.00508017,
	optOffset:    0.0121431,
	plyShift:     2.94693,
	plyExp:       0.461073,
	optFactorCap: 0.213035,

	maxBase:     3.3977,
	maxSlope:    3.03950,
	maxFloor:    2.94761,
	maxScaleCap: 6.67704,
	maxPlyDiv:   11.9847,

	mtgOptBase:  0.88,
	mtgPlyDiv:   116.4,
	mtgMaxBase:  1.3,
	mtgMaxSlope: 0.11,

	optClockFrac:  0.20,
	maxClockFrac:  0.30,
	hardClockFrac: 0.825179,

	horizonDefault: 5051,
	horizonMax:     5000,
	horizonPerMs:   5.051,
	shortClockMs:   1000,
}
