package timeman

import (
	"context"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // stopped by the user or context cancellation
	StopMovetime  StopReason = 2  // fixed movetime window exhausted
	StopMaximum   StopReason = 4  // hard allocation budget reached
	StopOptimum   StopReason = 8  // soft budget reached between iterations
	StopNodes     StopReason = 16 // node limit reached
	StopDepth     StopReason = 32 // depth limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMaximum, "Maximum"},
		{StopOptimum, "Optimum"},
		{StopNodes, "Nodes"},
		{StopDepth, "Depth"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

// Limiter is the driver-facing stopping layer: it arms the allocator once
// per iteration and is then polled from the search loop. Ok answers "may the
// search keep running" against the hard limits, IsSoftTimeout answers
// "should another depth be started" against the optimum budget.
type Limiter struct {
	session  *Session
	limits   *Limits
	opts     *Options
	listener *AllocListener
	timer    budgetTimer
	stop     atomic.Bool
	ratio    float64 // soft budget stretch driven by best-move stability
	reason   StopReason
	managed  bool // whether the allocator governs this iteration
	us       Color
	ctx      context.Context
}

func NewLimiter(session *Session, opts *Options) *Limiter {
	return &Limiter{
		session:  session,
		limits:   DefaultLimits(),
		opts:     opts,
		listener: &AllocListener{},
		timer:    newBudgetTimer(),
		ratio:    1.0,
		ctx:      context.Background(),
	}
}

// Adds custom context to the limiter, enabling cancellation through it
func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) SetListener(listener AllocListener) {
	*l.listener = listener
}

func (l *Limiter) Listener() *AllocListener {
	return l.listener
}

func (l *Limiter) Session() *Session {
	return l.session
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

// Reset arms the limiter for one search iteration: recomputes the allocation
// budgets from the current limits and starts the movetime window. Called once
// per "go".
func (l *Limiter) Reset(us Color, ply int) {
	l.stop.Store(false)
	l.reason = StopNone
	l.ratio = 1.0
	l.us = us

	l.timer.Movetime(l.limits.Movetime)
	l.timer.Reset()

	l.managed = !l.limits.Infinite && l.limits.HasClock(us)
	if l.managed {
		l.session.Arm(l.limits, us, ply, l.opts)
	}

	l.listener.invoke(l.listener.onArm, l.stats(0))
}

// AdvanceNodes reports node throughput to the allocator, a no-op outside
// nodes-time mode
func (l *Limiter) AdvanceNodes(nodes int64) {
	if l.session.Allocator().UseNodesTime() {
		l.session.Allocator().AdvanceNodesTime(nodes)
	}
}

// Elapsed time of the current iteration in ms
func (l *Limiter) Elapsed(nodes int64) int64 {
	if l.managed {
		return l.session.Allocator().Elapsed(nodes).Milliseconds()
	}
	return l.timer.Elapsed().Milliseconds()
}

func (l *Limiter) hardMask(nodes int64, depth int) StopReason {
	mask := StopNone
	if l.Stop() {
		mask |= StopInterrupt
	}

	// Infinite honours only interrupts
	if l.limits.Infinite {
		return mask
	}

	if l.timer.IsSet() && l.timer.IsEnd() {
		mask |= StopMovetime
	}
	if l.managed {
		alloc := l.session.Allocator()
		if alloc.Elapsed(nodes) >= alloc.Maximum() {
			mask |= StopMaximum
		}
	}
	if l.limits.Nodes != DefaultNodeLimit && nodes >= l.limits.Nodes {
		mask |= StopNodes
	}
	if l.limits.Depth != DefaultDepthLimit && depth >= l.limits.Depth {
		mask |= StopDepth
	}
	return mask
}

// Whether the search may keep running, called in the main search loop
func (l *Limiter) Ok(nodes int64, depth int) bool {
	return l.hardMask(nodes, depth) == StopNone
}

// IsSoftTimeout decides between iterations whether another depth is worth
// starting. A best move that just changed stretches the soft budget, a
// stable one lets the stretch decay back below 1.
func (l *Limiter) IsSoftTimeout(bestMoveChanged bool, nodes int64) bool {
	if bestMoveChanged {
		l.ratio = softRatioMax
	} else {
		l.ratio *= softRatioMult
		if l.ratio < softRatioMin {
			l.ratio = softRatioMin
		}
	}

	if !l.managed {
		return false
	}

	alloc := l.session.Allocator()
	soft := float64(alloc.Elapsed(nodes)) >= l.ratio*float64(alloc.Optimum())
	if soft {
		l.listener.invoke(l.listener.onSoft, l.stats(nodes))
	}
	return soft
}

// Evaluate the stop reason based on current state and set it internally,
// called once after the search loop exits
func (l *Limiter) EvaluateStopReason(nodes int64, depth int) {
	l.reason = l.hardMask(nodes, depth)
	if l.reason == StopNone && l.managed {
		alloc := l.session.Allocator()
		if float64(alloc.Elapsed(nodes)) >= l.ratio*float64(alloc.Optimum()) {
			l.reason |= StopOptimum
		}
	}
	l.listener.invoke(l.listener.onStop, l.stats(nodes))
}

// Get the reason why the search was stopped, valid after EvaluateStopReason
func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) stats(nodes int64) AllocStats {
	alloc := l.session.Allocator()
	return AllocStats{
		Optimum: alloc.Optimum(),
		Maximum: alloc.Maximum(),
		Elapsed: alloc.Elapsed(nodes),
		Nodes:   nodes,
		Reason:  l.reason,
	}
}
