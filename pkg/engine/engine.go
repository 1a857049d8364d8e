package engine

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	. "github.com/vesperchess/vesper/pkg/common"
)

// Engine drives a pool of independent workers. Each worker owns a searcher
// (transposition table, history, killers, evaluator) and receives its own
// clone of the root position; only the stop flag is shared.
type Engine struct {
	Hash    int
	Threads int

	evalBuilder func() Evaluator
	searchers   []*searchService
	stop        atomic.Bool
}

func NewEngine(evalBuilder func() Evaluator) *Engine {
	return &Engine{
		Hash:        64,
		Threads:     1,
		evalBuilder: evalBuilder,
	}
}

// Prepare sizes the worker pool and the per-worker tables to the current
// option values. Safe to call between searches only.
func (e *Engine) Prepare() {
	if e.Threads < 1 {
		e.Threads = 1
	}
	for len(e.searchers) < e.Threads {
		e.searchers = append(e.searchers, newSearchService(e.Hash, e.evalBuilder()))
	}
	e.searchers = e.searchers[:e.Threads]
	for _, s := range e.searchers {
		if s.transTable.size() != e.Hash {
			s.transTable = newTransTable(e.Hash)
		}
	}
}

// Clear handles ucinewgame: bump table generations, forget history, killers
// and cached evaluations.
func (e *Engine) Clear() {
	for _, s := range e.searchers {
		s.NewGame()
	}
}

// Stop requests cooperative cancellation; workers observe it at their next
// periodic node-count check.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Search runs all workers to completion on the last position of searchParams
// and returns the result with the highest score.
func (e *Engine) Search(searchParams SearchParams) SearchInfo {
	var start = time.Now()
	e.Prepare()
	e.stop.Store(false)

	var p = &searchParams.Positions[len(searchParams.Positions)-1]
	var limit, infinite, depthLimit = computeThinkTime(searchParams.Limits, p.WhiteMove)

	var results = make([]SearchResult, len(e.searchers))
	var g errgroup.Group
	for i := range e.searchers {
		var i = i
		var s = e.searchers[i]
		var root = *p
		s.timeManager = newTimeManager(start, limit, infinite, &e.stop)
		g.Go(func() error {
			results[i] = s.IterateSearch(&root, depthLimit, searchParams.Progress)
			return nil
		})
	}
	g.Wait()

	var best = results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	var nodes int64
	for _, s := range e.searchers {
		nodes += s.nodes
	}

	var mainLine []Move
	if best.BestMove != MoveEmpty {
		mainLine = []Move{best.BestMove}
	}
	return SearchInfo{
		Depth:    depthLimit,
		Score:    newUciScore(best.Score),
		Nodes:    nodes,
		Time:     time.Since(start),
		MainLine: mainLine,
	}
}
