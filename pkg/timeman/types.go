package timeman

// Small shared types, which didn't fit the allocator or limiter files

// Color identifies the side to move, used to index the per-side clock fields.
type Color int

const (
	White Color = iota
	Black

	// Number of sides, array size for per-side clock fields
	ColorNb = 2
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Opposite side
func (c Color) Flip() Color {
	return c ^ 1
}
