package timeman

// Marks a time adjustment that has not been derived for the current game yet
const unsetTimeAdjust = -1.0

// Session owns the per-game state threaded across allocator invocations: the
// allocator itself and the once-per-game time adjustment. One session serves
// exactly one game at a time; NewGame re-arms it for the next one.
type Session struct {
	alloc      TimeAllocator
	timeAdjust float64
}

func NewSession() *Session {
	return &Session{
		alloc:      *NewTimeAllocator(),
		timeAdjust: unsetTimeAdjust,
	}
}

// NewGame resets the node budget and the time adjustment, so the next Arm
// call seeds both from the fresh clock
func (s *Session) NewGame() {
	s.timeAdjust = unsetTimeAdjust
	s.alloc.Clear()
}

// Arm recomputes the budgets from the current clock snapshot, threading the
// session-owned time adjustment through the allocator
func (s *Session) Arm(limits *Limits, us Color, ply int, opts *Options) {
	s.alloc.Init(limits, us, ply, opts, &s.timeAdjust)
}

func (s *Session) Allocator() *TimeAllocator {
	return &s.alloc
}

// The frozen scale anchor, negative until the first sudden-death Arm of the
// game. Exposed for diagnostics.
func (s *Session) TimeAdjust() float64 {
	return s.timeAdjust
}
