package bench

import (
	"fmt"

	"github.com/muesli/termenv"
)

type ListenerStats struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Clocks        [2]int64
	LastSpend     int64
}

type SummaryInfo struct {
	TotalGames int
	Flags      [2]int
	MinClock   [2]int64
	Workers    int
	P1Name     string
	P2Name     string
}

type ListenerLike interface {
	OnMoveMade(stats ListenerStats)
	OnFinishedGame(stats ListenerStats)
	OnFinishedWork(summary SummaryInfo)
}

// DefaultListener stays silent, used when no listener is attached
type DefaultListener struct{}

func (d DefaultListener) OnMoveMade(stats ListenerStats)     {}
func (d DefaultListener) OnFinishedGame(stats ListenerStats) {}
func (d DefaultListener) OnFinishedWork(summary SummaryInfo) {}

// TermListener renders per-game progress and the final summary to the
// terminal, coloring flagged games red
type TermListener struct {
	output *termenv.Output
}

func NewTermListener() *TermListener {
	return &TermListener{output: termenv.DefaultOutput()}
}

func (l *TermListener) OnMoveMade(stats ListenerStats) {}

func (l *TermListener) OnFinishedGame(stats ListenerStats) {
	o := l.output
	worker := o.String(fmt.Sprintf("worker %d", stats.WorkerID)).Foreground(o.Color("6"))
	line := fmt.Sprintf("%s game %d/%d plies %d clocks %6dms %6dms",
		worker, stats.FinishedGames, stats.NGames, stats.GameMoveNum,
		stats.Clocks[0], stats.Clocks[1])
	if stats.Clocks[0] <= 0 || stats.Clocks[1] <= 0 {
		line = o.String(line).Foreground(o.Color("1")).String()
	}
	fmt.Fprintln(o, line)
}

func (l *TermListener) OnFinishedWork(summary SummaryInfo) {
	o := l.output
	header := o.String("arena finished").Bold()
	fmt.Fprintf(o, "%s: %d games over %d workers\n", header, summary.TotalGames, summary.Workers)

	for i, name := range []string{summary.P1Name, summary.P2Name} {
		flags := o.String(fmt.Sprintf("%d flags", summary.Flags[i]))
		if summary.Flags[i] > 0 {
			flags = flags.Foreground(o.Color("1"))
		} else {
			flags = flags.Foreground(o.Color("2"))
		}
		fmt.Fprintf(o, "  %-12s %s, lowest clock %dms\n", name, flags, summary.MinClock[i])
	}
}
