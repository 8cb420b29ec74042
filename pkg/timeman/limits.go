package timeman

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Limits is the clock snapshot plus the fixed search limits armed by the
// driver before every iteration. The per-side Time/Inc fields are mutable on
// purpose: in nodes-time mode Init rewrites them with the node budget so the
// allocation formulas stay unit-agnostic.
type Limits struct {
	Time      [ColorNb]int64 // remaining clock per side, ms
	Inc       [ColorNb]int64 // increment per side, ms
	MovesToGo int            // moves until the next time control, 0 = sudden death
	Movetime  int            // fixed per-move budget in ms
	Depth     int
	Nodes     int64
	Npmsec    int64 // nodes-per-ms rate, written back by Init in nodes-time mode
	Infinite  bool
	Start     time.Time
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int   = math.MaxInt
	DefaultNodeLimit     int64 = math.MaxInt64
	DefaultMovetimeLimit int   = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Movetime: DefaultMovetimeLimit,
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Infinite: true,
		Start:    time.Now(),
	}
}

// Set the remaining clock of one side
func (l *Limits) SetTime(c Color, ms int64) *Limits {
	l.Time[c] = ms
	l.Infinite = false
	return l
}

// Set the per-move increment of one side
func (l *Limits) SetInc(c Color, ms int64) *Limits {
	l.Inc[c] = ms
	return l
}

// Set the number of moves until the next time control, 0 means sudden death
func (l *Limits) SetMovesToGo(moves int) *Limits {
	l.MovesToGo = max(moves, 0)
	return l
}

// Set a fixed per-move time budget
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

// Set the maximum search depth
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// Set the maximum number of nodes the search may visit
func (l *Limits) SetNodes(nodes int64) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

// Set the instant the current iteration was armed
func (l *Limits) SetStart(start time.Time) *Limits {
	l.Start = start
	return l
}

// Whether a real clock is running for the given side
func (l *Limits) HasClock(us Color) bool {
	return l.Time[us] > 0
}
