package timeman

import "time"

// AllocStats is the snapshot handed to listener callbacks
type AllocStats struct {
	Optimum time.Duration
	Maximum time.Duration
	Elapsed time.Duration
	Nodes   int64
	Reason  StopReason
}

// Listener function callback, receives the current allocation snapshot
type AllocListenerFunc func(AllocStats)

// AllocListener receives allocation lifecycle events from the limiter, all
// callbacks run on the driver's thread.
type AllocListener struct {
	// called after Reset computes fresh budgets
	onArm AllocListenerFunc

	// called when the soft budget fires between iterations
	onSoft AllocListenerFunc

	// called once the stop reason is evaluated after the search ends
	onStop AllocListenerFunc
}

func NewAllocListener() AllocListener {
	return AllocListener{}
}

// Attach a callback fired when fresh budgets are computed
func (listener *AllocListener) OnArm(onArm AllocListenerFunc) *AllocListener {
	listener.onArm = onArm
	return listener
}

// Attach a callback fired when the soft budget runs out between iterations
func (listener *AllocListener) OnSoft(onSoft AllocListenerFunc) *AllocListener {
	listener.onSoft = onSoft
	return listener
}

// Attach an 'on search end' callback, makes the StopReason available in the
// stats
func (listener *AllocListener) OnStop(onStop AllocListenerFunc) *AllocListener {
	listener.onStop = onStop
	return listener
}

func (listener *AllocListener) invoke(f AllocListenerFunc, stats AllocStats) {
	if f != nil {
		f(stats)
	}
}
