package timeman

import "testing"

func TestOptionsDefaults(t *testing.T) {
	opts := NewOptions()

	if got := opts.Int(OptNodesTime); got != 0 {
		t.Errorf("nodestime default: got %d, want 0", got)
	}
	if got := opts.Int(OptMoveOverhead); got != DefaultMoveOverhead {
		t.Errorf("move overhead default: got %d, want %d", got, DefaultMoveOverhead)
	}
	if opts.Bool(OptPonder) {
		t.Error("ponder default: got true, want false")
	}

	// Unknown keys read as zero values
	if got := opts.Int("No Such Option"); got != 0 {
		t.Errorf("unknown int key: got %d, want 0", got)
	}
	if opts.Bool("No Such Option") {
		t.Error("unknown bool key: got true, want false")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := NewOptions().
		SetInt(OptMoveOverhead, 120).
		SetInt(OptNodesTime, 7).
		SetBool(OptPonder, true)

	if got := opts.Int(OptMoveOverhead); got != 120 {
		t.Errorf("move overhead: got %d, want 120", got)
	}
	if got := opts.Int(OptNodesTime); got != 7 {
		t.Errorf("nodestime: got %d, want 7", got)
	}
	if !opts.Bool(OptPonder) {
		t.Error("ponder: got false, want true")
	}
}
