package timeman

import (
	"context"
	"testing"
	"time"
)

func newTestLimiter() *Limiter {
	return NewLimiter(NewSession(), NewOptions())
}

func TestLimiterInfinite(t *testing.T) {
	limiter := newTestLimiter()
	limiter.Reset(White, 0)

	if !limiter.Ok(1000000, 100) {
		t.Error("default limiter should search infinitely")
	}
	if limiter.IsSoftTimeout(false, 1000000) {
		t.Error("infinite search reported a soft timeout")
	}

	limiter.SetStop(true)
	if limiter.Ok(1, 1) {
		t.Error("stop signal ignored in infinite mode")
	}
	limiter.EvaluateStopReason(1, 1)
	if got := limiter.StopReason(); got != StopInterrupt {
		t.Errorf("stop reason: got %v, want %v", got, StopInterrupt)
	}
}

func TestLimiterFixedLimits(t *testing.T) {
	limiter := newTestLimiter()

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset(White, 0)
	if ok := limiter.Ok(101, 1); ok {
		t.Errorf("<Nodes=%d: ok=%v, want=%v", 101, ok, !ok)
	}
	if ok := limiter.Ok(99, 1); !ok {
		t.Errorf(">Nodes=%d: ok=%v, want=%v", 99, ok, !ok)
	}
	limiter.EvaluateStopReason(101, 1)
	if got := limiter.StopReason(); got != StopNodes {
		t.Errorf("stop reason: got %v, want %v", got, StopNodes)
	}

	limiter.SetLimits(DefaultLimits().SetDepth(8))
	limiter.Reset(White, 0)
	if ok := limiter.Ok(1, 8); ok {
		t.Errorf("<Depth=%d: ok=%v, want=%v", 8, ok, !ok)
	}
	if ok := limiter.Ok(1, 7); !ok {
		t.Errorf(">Depth=%d: ok=%v, want=%v", 7, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(50))
	limiter.Reset(White, 0)
	if ok := limiter.Ok(1, 1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
	time.Sleep(60 * time.Millisecond)
	if ok := limiter.Ok(1, 1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}
	limiter.EvaluateStopReason(1, 1)
	if got := limiter.StopReason(); got != StopMovetime {
		t.Errorf("stop reason: got %v, want %v", got, StopMovetime)
	}
}

func TestLimiterManagedClock(t *testing.T) {
	limiter := newTestLimiter()

	// A near-empty clock keeps the hard budget tiny
	limits := clockLimits(1000, 0, 0).SetStart(time.Now())
	limiter.SetLimits(limits)
	limiter.Reset(White, 0)

	if maxt := limiter.Session().Allocator().Maximum(); maxt > 300*time.Millisecond {
		t.Fatalf("maximum %v above 30%% of a 1s clock", maxt)
	}
	if ok := limiter.Ok(1, 1); !ok {
		t.Errorf(">Maximum: ok=%v, want=%v", ok, !ok)
	}

	time.Sleep(310 * time.Millisecond)
	if ok := limiter.Ok(1, 1); ok {
		t.Errorf("<Maximum: ok=%v, want=%v", ok, !ok)
	}
	limiter.EvaluateStopReason(1, 1)
	if got := limiter.StopReason(); got&StopMaximum != StopMaximum {
		t.Errorf("stop reason: got %v, want %v set", got, StopMaximum)
	}
}

func TestLimiterSoftTimeout(t *testing.T) {
	// Nodes-time makes the elapsed budget a pure function of the node count,
	// so the soft timeout can be probed without sleeping
	limiter := NewLimiter(NewSession(), NewOptions().SetInt(OptNodesTime, 1000))
	limiter.SetLimits(clockLimits(60000, 0, 0).SetStart(time.Now()))
	limiter.Reset(White, 0)

	optUnits := limiter.Session().Allocator().Optimum().Milliseconds()
	nodes := int64(float64(optUnits) * 1.05) // just past the optimum

	// A changing best move stretches the budget above the plain optimum
	if limiter.IsSoftTimeout(true, nodes) {
		t.Error("soft timeout fired right after a best move change")
	}

	// A stable best move lets the stretch decay back down within a few steps
	fired := false
	for i := 0; i < 10 && !fired; i++ {
		fired = limiter.IsSoftTimeout(false, nodes)
	}
	if !fired {
		t.Error("soft timeout never fired with a stable best move past the optimum")
	}
}

func TestLimiterSoftRatioBounds(t *testing.T) {
	limiter := newTestLimiter()
	limiter.SetLimits(clockLimits(60000, 0, 0).SetStart(time.Now()))
	limiter.Reset(White, 0)

	limiter.IsSoftTimeout(true, 1)
	if limiter.ratio != softRatioMax {
		t.Errorf("ratio after change: got %v, want %v", limiter.ratio, softRatioMax)
	}
	for i := 0; i < 100; i++ {
		limiter.IsSoftTimeout(false, 1)
	}
	if limiter.ratio < softRatioMin-1e-12 {
		t.Errorf("ratio decayed below its floor: got %v, want >= %v", limiter.ratio, softRatioMin)
	}
}

func TestLimiterContextCancel(t *testing.T) {
	limiter := newTestLimiter()
	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.Reset(White, 0)

	if !limiter.Ok(1, 1) {
		t.Error("fresh limiter with live context not ok")
	}
	cancel()
	if limiter.Ok(1, 1) {
		t.Error("cancelled context did not stop the search")
	}
}

func TestLimiterListener(t *testing.T) {
	limiter := newTestLimiter()
	limiter.SetLimits(clockLimits(60000, 0, 0).SetStart(time.Now()))

	var armed, stopped int
	listener := NewAllocListener()
	listener.
		OnArm(func(stats AllocStats) {
			armed++
			if stats.Optimum < time.Millisecond || stats.Maximum < stats.Optimum {
				t.Errorf("bad budgets in arm stats: %+v", stats)
			}
		}).
		OnStop(func(stats AllocStats) { stopped++ })
	limiter.SetListener(listener)

	limiter.Reset(White, 0)
	limiter.EvaluateStopReason(1, 1)

	if armed != 1 || stopped != 1 {
		t.Errorf("listener calls: armed=%d stopped=%d, want 1 and 1", armed, stopped)
	}
}

func TestStopReasonString(t *testing.T) {
	if got := StopNone.String(); got != "None" {
		t.Errorf("StopNone: got %q, want %q", got, "None")
	}
	if got := (StopMaximum | StopDepth).String(); got != "Maximum|Depth" {
		t.Errorf("combined: got %q, want %q", got, "Maximum|Depth")
	}
}
