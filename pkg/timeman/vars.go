package timeman

import "math"

// Default per-move overhead in ms, the reserve for protocol and GUI latency.
// Baked into NewOptions as the "Move Overhead" default.
var DefaultMoveOverhead int = 10

// Set the default "Move Overhead" used by freshly constructed option tables
func SetDefaultMoveOverhead(ms int) {
	if ms >= 0 {
		DefaultMoveOverhead = ms
	}
}

// Soft-timeout stability shaping. When the best move just changed, the soft
// budget is stretched by stabilityTimeRatio^0.5; while it stays stable the
// stretch decays geometrically over stabilityStepCount iterations down to
// stabilityTimeRatio^-0.5.
var (
	stabilityTimeRatio = 1.5
	stabilityStepCount = 3.0

	softRatioMin  float64
	softRatioMax  float64
	softRatioMult float64
)

func init() {
	recomputeSoftRatios()
}

func recomputeSoftRatios() {
	k := math.Log(stabilityTimeRatio)
	softRatioMin = math.Exp(-0.5 * k)
	softRatioMax = math.Exp(0.5 * k)
	softRatioMult = math.Exp(-k / stabilityStepCount)
}

// Set how strongly a changing best move stretches the soft budget, must be
// greater than 1
func SetStabilityTimeRatio(ratio float64) {
	if ratio > 1 {
		stabilityTimeRatio = ratio
		recomputeSoftRatios()
	}
}

// Set over how many stable iterations the stretch decays back to its floor
func SetStabilityStepCount(steps float64) {
	if steps >= 1 {
		stabilityStepCount = steps
		recomputeSoftRatios()
	}
}
