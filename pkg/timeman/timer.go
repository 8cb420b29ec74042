package timeman

import (
	"time"
)

// budgetTimer tracks one iteration's fixed wall-clock window, used for the
// "movetime" limit which bypasses the allocator entirely.
type budgetTimer struct {
	start    time.Time
	duration time.Duration
}

func newBudgetTimer() budgetTimer {
	return budgetTimer{time.Now(), -1}
}

// Arm the window with a fixed budget in ms, negative disarms it
func (t *budgetTimer) Movetime(movetime int) {
	if movetime < 0 {
		t.duration = -1
	} else {
		t.duration = time.Duration(movetime) * time.Millisecond
	}
}

// Set the 'start' as now
func (t *budgetTimer) Reset() {
	t.start = time.Now()
}

func (t *budgetTimer) IsSet() bool {
	return t.duration != -1
}

// Check if the armed window has run out
func (t *budgetTimer) IsEnd() bool {
	return t.duration > 0 && time.Since(t.start) >= t.duration
}

func (t *budgetTimer) Elapsed() time.Duration {
	return time.Since(t.start)
}
