package timeman

import (
	"math"
	"time"
)

// Marks a node budget that has not been seeded for the current game yet
const nodesBudgetUnset int64 = -1

// TimeAllocator turns a clock snapshot into two per-iteration budgets: an
// "optimum" time the search should aim to use before stopping voluntarily,
// and a "maximum" time past which it must be cut off. One instance serves one
// game and is re-armed by Init on every iteration; calls are strictly
// sequential, there is no internal locking.
type TimeAllocator struct {
	startTime      time.Time
	optimumTime    time.Duration
	maximumTime    time.Duration
	useNodesTime   bool
	availableNodes int64
	coeffs         allocCoeffs
}

func NewTimeAllocator() *TimeAllocator {
	return &TimeAllocator{
		availableNodes: nodesBudgetUnset,
		coeffs:         defaultCoeffs,
	}
}

// Init recomputes the optimum and maximum budgets from the current clock
// snapshot, the side to move and the game ply. timeAdjust is the caller-owned
// once-per-game scale anchor: it is written exactly once, on the first call
// of a game that still carries a negative value, and only read afterwards.
//
// In nodes-time mode limits.Time/Inc for the side to move are overwritten
// with the node budget, so the snapshot must be rebuilt by the driver before
// the next iteration.
func (ta *TimeAllocator) Init(limits *Limits, us Color, ply int, opts *Options, timeAdjust *float64) {
	ta.startTime = limits.Start

	// No own clock means an untimed search (infinite, fixed depth or fixed
	// movetime); the previous budgets are left as they are.
	if limits.Time[us] == 0 {
		ta.useNodesTime = false
		return
	}

	c := &ta.coeffs

	// With "nodestime" set, the node counter acts as the clock: seed the
	// budget once per game, then substitute nodes for milliseconds so the
	// formulas below stay unit-agnostic.
	npmsec := int64(opts.Int(OptNodesTime))
	ta.useNodesTime = npmsec != 0
	if ta.useNodesTime {
		if ta.availableNodes == nodesBudgetUnset {
			ta.availableNodes = npmsec * limits.Time[us]
		}
		limits.Time[us] = ta.availableNodes
		limits.Inc[us] *= npmsec
		limits.Npmsec = npmsec
	}

	scaleFactor := int64(1)
	if ta.useNodesTime {
		scaleFactor = npmsec
	}
	moveOverhead := int64(opts.Int(OptMoveOverhead))
	scaledTime := limits.Time[us] / scaleFactor

	// Horizon in centi-moves. Unknown moves-to-go assumes an effectively
	// endless game; a nearly empty clock shrinks the horizon so the formula
	// does not bank on moves that will never be played.
	centiMTG := c.horizonDefault
	if limits.MovesToGo != 0 {
		centiMTG = min(limits.MovesToGo*100, c.horizonMax)
	}
	if scaledTime < c.shortClockMs {
		centiMTG = min(centiMTG, int(float64(scaledTime)*c.horizonPerMs))
	}

	// Effective time left: assumes centiMTG/100 more moves will be played,
	// each paying the overhead, while increments keep accruing.
	timeLeft := max(int64(1),
		limits.Time[us]+(limits.Inc[us]*int64(centiMTG-100)-moveOverhead*int64(200+centiMTG))/100)

	var optScale, maxScale float64
	if limits.MovesToGo == 0 {
		// Sudden death. The adjustment anchors the allocation scale to the
		// game's initial time pressure and stays frozen until the next game,
		// even as the clock runs down.
		if *timeAdjust < 0 {
			*timeAdjust = c.adjustSlope*math.Log10(float64(timeLeft)) + c.adjustOffset
		}

		logTimeInSec := math.Log10(float64(scaledTime) / 1000.0)
		optConstant := math.Min(c.optBase+c.optSlope*logTimeInSec, c.optCap)
		maxConstant := math.Max(c.maxBase+c.maxSlope*logTimeInSec, c.maxFloor)
		timeLeftFactor := float64(limits.Time[us]) / float64(timeLeft)

		optScale = math.Min(
			c.optOffset+math.Pow(float64(ply)+c.plyShift, c.plyExp)*optConstant,
			c.optFactorCap*timeLeftFactor) * *timeAdjust
		maxScale = math.Min(c.maxScaleCap, maxConstant+float64(ply)/c.maxPlyDiv)
	} else {
		movesToGo := float64(centiMTG) / 100.0
		optScale = math.Min(
			(c.mtgOptBase+float64(ply)/c.mtgPlyDiv)/movesToGo,
			c.mtgOptBase*float64(limits.Time[us])/float64(timeLeft))
		maxScale = c.mtgMaxBase + c.mtgMaxSlope*movesToGo
	}

	// Soft target, hard-capped at a fraction of the remaining clock
	optimum := max(int64(1),
		min(int64(optScale*float64(timeLeft)),
			int64(c.optClockFrac*float64(limits.Time[us]))))

	// Two independent ceilings on the hard cutoff: most of the clock less
	// the overhead, and a multiple of the optimum. Whichever binds wins, and
	// maxClockFrac of the clock is the absolute ceiling either way.
	maximum := min(
		int64(c.hardClockFrac*float64(limits.Time[us])-float64(moveOverhead)),
		int64(maxScale*float64(optimum)))
	maximum = max(int64(1),
		max(optimum, min(int64(c.maxClockFrac*float64(limits.Time[us])), maximum)))

	// Part of the opponent's ponder time is effectively ours
	if opts.Bool(OptPonder) {
		optimum += optimum / 4
	}

	ta.optimumTime = time.Duration(optimum) * time.Millisecond
	ta.maximumTime = time.Duration(maximum) * time.Millisecond
}

// AdvanceNodesTime deducts searched nodes from the remaining node budget.
// Calling it outside nodes-time mode is a contract violation.
func (ta *TimeAllocator) AdvanceNodesTime(nodes int64) {
	if !ta.useNodesTime {
		panic("timeman: AdvanceNodesTime called while nodes-time mode is inactive")
	}
	ta.availableNodes = max(int64(0), ta.availableNodes-nodes)
}

// Clear drops the node budget so the next nodes-time Init reseeds it from a
// fresh clock. Called between games.
func (ta *TimeAllocator) Clear() {
	ta.availableNodes = nodesBudgetUnset
}

// Soft budget computed by the last Init call
func (ta *TimeAllocator) Optimum() time.Duration {
	return ta.optimumTime
}

// Hard cutoff computed by the last Init call
func (ta *TimeAllocator) Maximum() time.Duration {
	return ta.maximumTime
}

// Whether the clock is currently simulated by the node counter
func (ta *TimeAllocator) UseNodesTime() bool {
	return ta.useNodesTime
}

// Remaining node budget, nodesBudgetUnset sentinel meaning "not seeded"
func (ta *TimeAllocator) AvailableNodes() int64 {
	return ta.availableNodes
}

// Instant the current iteration was armed
func (ta *TimeAllocator) StartTime() time.Time {
	return ta.startTime
}

// Elapsed returns the budget consumed by the current iteration: wall time
// normally, the raw node count in nodes-time mode. In that mode the budgets
// themselves are expressed in node units, so the comparison stays consistent.
func (ta *TimeAllocator) Elapsed(nodes int64) time.Duration {
	if ta.useNodesTime {
		return time.Duration(nodes) * time.Millisecond
	}
	return time.Since(ta.startTime)
}
