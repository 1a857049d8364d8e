package engine

import (
	"sync/atomic"
	"time"

	. "github.com/vesperchess/vesper/pkg/common"
)

// timeManager combines the shared stop flag with a wall-clock budget. On an
// infinite search only the stop flag terminates.
type timeManager struct {
	start    time.Time
	limit    time.Duration
	infinite bool
	stop     *atomic.Bool
}

func newTimeManager(start time.Time, limit time.Duration, infinite bool, stop *atomic.Bool) *timeManager {
	return &timeManager{
		start:    start,
		limit:    limit,
		infinite: infinite,
		stop:     stop,
	}
}

func (tm *timeManager) TimeUp() bool {
	if tm.stop.Load() {
		return true
	}
	return !tm.infinite && time.Since(tm.start) >= tm.limit
}

func (tm *timeManager) Elapsed() time.Duration {
	return time.Since(tm.start)
}

// computeThinkTime turns go parameters into a budget for this move.
func computeThinkTime(limits LimitsType, whiteMove bool) (limit time.Duration, infinite bool, depthLimit int) {
	depthLimit = maxDepth

	if limits.Infinite {
		return 0, true, depthLimit
	}
	if limits.MoveTime > 0 {
		return time.Duration(limits.MoveTime) * time.Millisecond, false, depthLimit
	}
	if limits.Depth > 0 {
		return 30 * time.Second, false, Min(limits.Depth, maxDepth)
	}

	var mainTime, incTime int
	if whiteMove {
		mainTime, incTime = limits.WhiteTime, limits.WhiteIncrement
	} else {
		mainTime, incTime = limits.BlackTime, limits.BlackIncrement
	}

	if mainTime <= 0 {
		return 500 * time.Millisecond, false, depthLimit
	}

	var movesToGo = limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	var slice = mainTime / Max(1, movesToGo)
	var budget = slice + incTime/2
	budget = limitValue(budget, 20, Max(50, mainTime-10))
	return time.Duration(budget) * time.Millisecond, false, depthLimit
}
