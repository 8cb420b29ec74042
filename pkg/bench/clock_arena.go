package bench

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coolchess123/go-timeman/pkg/timeman"
)

/*
Arena benchmark subpackage, plays a series of simulated games between two
clock-management configurations and records whether either side ever loses
on time. No real waiting happens: each "move" arms the allocator from the
live clock and deducts the chosen think time arithmetically.
*/

// Player is one clock-management configuration taking part in the games
type Player struct {
	Name string
	Opts *timeman.Options

	// SpendFactor places the simulated think time between the optimum (0)
	// and the maximum (1) budget
	SpendFactor float64
}

func DefaultPlayer(name string) Player {
	return Player{Name: name, Opts: timeman.NewOptions()}
}

type ClockArenaStats struct {
	games     uint32
	flags     [2]uint32
	minClock  [2]int64
	spentMs   int64
	clockedMs int64
}

func (cas *ClockArenaStats) Games() int {
	return int(atomic.LoadUint32(&cas.games))
}

// Number of games the given player lost on time
func (cas *ClockArenaStats) Flags(player int) int {
	return int(atomic.LoadUint32(&cas.flags[player]))
}

// Lowest remaining clock the given player was ever left with, ms
func (cas *ClockArenaStats) MinClock(player int) int64 {
	return atomic.LoadInt64(&cas.minClock[player])
}

// Mean fraction of the remaining clock spent per move, across both players
func (cas *ClockArenaStats) MeanSpendFraction() float64 {
	clocked := atomic.LoadInt64(&cas.clockedMs)
	if clocked == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&cas.spentMs)) / float64(clocked)
}

func (cas *ClockArenaStats) updateMinClock(player int, clock int64) {
	for {
		cur := atomic.LoadInt64(&cas.minClock[player])
		if clock >= cur || atomic.CompareAndSwapInt64(&cas.minClock[player], cur, clock) {
			return
		}
	}
}

// ClockArena runs NGames simulated games over NWorkers goroutines, every
// game starting from BaseTime+Increment for both sides. MinPlies/MaxPlies
// bound the randomly drawn game length.
type ClockArena struct {
	ClockArenaStats
	Players   [2]Player
	NGames    uint
	NWorkers  uint
	BaseTime  int64 // ms
	Increment int64 // ms
	MovesToGo int   // 0 = sudden death
	MinPlies  int
	MaxPlies  int
	listener  ListenerLike
	wg        sync.WaitGroup
	ctx       context.Context
}

func NewClockArena(p1, p2 Player) *ClockArena {
	ca := &ClockArena{
		Players:   [2]Player{p1, p2},
		NGames:    100,
		NWorkers:  2,
		BaseTime:  60000,
		Increment: 600,
		MinPlies:  60,
		MaxPlies:  200,
		listener:  DefaultListener{},
		ctx:       context.Background(),
	}
	ca.minClock[0] = ca.BaseTime
	ca.minClock[1] = ca.BaseTime
	return ca
}

func (ca *ClockArena) WithContext(ctx context.Context) *ClockArena {
	ca.ctx = ctx
	return ca
}

func (ca *ClockArena) Setup(baseTime, increment int64, nGames, nWorkers uint) {
	ca.BaseTime = baseTime
	ca.Increment = increment
	ca.NGames = nGames
	ca.NWorkers = max(nWorkers, 1)
	ca.minClock[0] = baseTime
	ca.minClock[1] = baseTime
}

func (ca *ClockArena) SetListener(listener ListenerLike) {
	ca.listener = listener
}

// Run distributes the games over the workers and blocks until all finish
func (ca *ClockArena) Run() {
	nGames := ca.NGames / ca.NWorkers
	rest := ca.NGames % ca.NWorkers

	for i := uint(0); i < ca.NWorkers; i++ {
		delta := uint(0)
		if rest > 0 {
			delta = 1
			rest--
		}
		ca.wg.Add(1)
		go ca.worker(int(i), int(nGames+delta))
	}

	ca.wg.Wait()
	ca.listener.OnFinishedWork(SummaryInfo{
		TotalGames: ca.Games(),
		Flags:      [2]int{ca.Flags(0), ca.Flags(1)},
		MinClock:   [2]int64{ca.MinClock(0), ca.MinClock(1)},
		Workers:    int(ca.NWorkers),
		P1Name:     ca.Players[0].Name,
		P2Name:     ca.Players[1].Name,
	})
}

func (ca *ClockArena) worker(id, nGames int) {
	defer ca.wg.Done()
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

Loop:
	for i := 0; i < nGames; i++ {
		select {
		case <-ca.ctx.Done():
			break Loop
		default:
		}

		ca.playGame(id, i, nGames, r)
		atomic.AddUint32(&ca.games, 1)
	}
}

// playGame runs one simulated game: both players alternate arming their
// allocator from the live clock and spending their chosen slice of it
func (ca *ClockArena) playGame(workerId, gameNum, nGames int, r *rand.Rand) {
	sessions := [2]*timeman.Session{timeman.NewSession(), timeman.NewSession()}
	clocks := [2]int64{ca.BaseTime, ca.BaseTime}
	plies := ca.MinPlies + r.Intn(ca.MaxPlies-ca.MinPlies+1)

	for ply := 0; ply < plies; ply++ {
		player := ply % 2
		us := timeman.Color(player)
		opts := ca.Players[player].Opts

		limits := timeman.DefaultLimits().
			SetTime(timeman.White, clocks[0]).SetInc(timeman.White, ca.Increment).
			SetTime(timeman.Black, clocks[1]).SetInc(timeman.Black, ca.Increment).
			SetMovesToGo(ca.MovesToGo)
		sessions[player].Arm(limits, us, ply, opts)
		alloc := sessions[player].Allocator()

		// Think time between optimum and maximum, plus a little I/O jitter
		span := float64(alloc.Maximum()-alloc.Optimum()) * ca.Players[player].SpendFactor
		spend := (alloc.Optimum() + time.Duration(span)).Milliseconds()
		jitter := r.Int63n(3)

		atomic.AddInt64(&ca.spentMs, spend)
		atomic.AddInt64(&ca.clockedMs, clocks[player])

		clocks[player] -= spend + jitter
		if clocks[player] <= 0 {
			atomic.AddUint32(&ca.flags[player], 1)
			ca.updateMinClock(player, 0)
			break
		}
		ca.updateMinClock(player, clocks[player])
		clocks[player] += ca.Increment

		ca.listener.OnMoveMade(ListenerStats{
			WorkerID:      workerId,
			NGames:        nGames,
			FinishedGames: gameNum,
			GameMoveNum:   ply + 1,
			Clocks:        clocks,
			LastSpend:     spend,
		})
	}

	ca.listener.OnFinishedGame(ListenerStats{
		WorkerID:      workerId,
		NGames:        nGames,
		FinishedGames: gameNum + 1,
		GameMoveNum:   plies,
		Clocks:        clocks,
	})
}
