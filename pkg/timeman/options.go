package timeman

// Option keys read by the allocator
const (
	// ms-per-node rate simulating the clock with a node counter, 0 disables
	OptNodesTime = "nodestime"

	// per-move safety margin in ms, reserved for protocol and GUI latency
	OptMoveOverhead = "Move Overhead"

	OptPonder = "Ponder"
)

// Options is a flat string-keyed option store with typed lookups, shaped
// after a UCI option table. Lookups never fail: unknown keys read as zero
// values, and values are not validated - a nonsense setting produces
// degenerate budgets, not errors.
type Options struct {
	ints  map[string]int
	bools map[string]bool
}

func NewOptions() *Options {
	return &Options{
		ints: map[string]int{
			OptNodesTime:    0,
			OptMoveOverhead: DefaultMoveOverhead,
		},
		bools: map[string]bool{
			OptPonder: false,
		},
	}
}

func (o *Options) SetInt(name string, value int) *Options {
	o.ints[name] = value
	return o
}

func (o *Options) SetBool(name string, value bool) *Options {
	o.bools[name] = value
	return o
}

func (o *Options) Int(name string) int {
	return o.ints[name]
}

func (o *Options) Bool(name string) bool {
	return o.bools[name]
}
