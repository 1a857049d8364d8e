package engine

import (
	"sync/atomic"
	"testing"
	"time"

	. "github.com/vesperchess/vesper/pkg/common"
	eval "github.com/vesperchess/vesper/pkg/eval/pesto"
)

func newTestSearcher() *searchService {
	var s = newSearchService(4, eval.NewEvaluationService())
	var stop = &atomic.Bool{}
	s.timeManager = newTimeManager(time.Now(), time.Minute, false, stop)
	return s
}

func TestSearchMateInOne(t *testing.T) {
	var tests = []struct {
		fen  string
		best string
	}{
		{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", "a1a8"},
		{"r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1", "a8a1"},
		// Smothered-style corner mate with a knight.
		{"6rk/6pp/8/6N1/8/8/8/6K1 w - - 0 1", "g5f7"},
	}
	for _, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		var s = newTestSearcher()
		var result = s.IterateSearch(&p, 4, nil)
		if result.BestMove.String() != test.best {
			t.Error(test.fen, result.BestMove, result.Score)
		}
		if !isMateValue(result.Score) || result.Score != winIn(1) {
			t.Error(test.fen, result.Score)
		}
	}
}

func TestSearchMateInTwo(t *testing.T) {
	// Two rooks roll the king up the board.
	var p, err = NewPositionFromFEN("7k/8/8/8/8/8/R7/1R5K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var s = newTestSearcher()
	var result = s.IterateSearch(&p, 6, nil)
	if !isMateValue(result.Score) || result.Score != winIn(3) {
		t.Error(result.BestMove, result.Score)
	}
}

func TestSearchNoLegalMoves(t *testing.T) {
	var tests = []string{
		// Stalemate: black to move, not in check.
		"k7/8/1Q6/8/8/8/8/7K b - - 0 1",
		// Checkmate: black to move, in check.
		"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
	}
	for _, fen := range tests {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var s = newTestSearcher()
		var result = s.IterateSearch(&p, 3, nil)
		if result.BestMove != MoveEmpty {
			t.Error(fen, result.BestMove)
		}
	}
}

func TestSearchStartposDepth1(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var s = newTestSearcher()
	var infos []SearchInfo
	var result = s.IterateSearch(&p, 1, func(si SearchInfo) {
		infos = append(infos, si)
	})
	var legal = false
	for _, m := range p.GenerateLegalMoves() {
		if m == result.BestMove {
			legal = true
		}
	}
	if !legal {
		t.Error(result.BestMove)
	}
	if result.Score < -100 || result.Score > 100 {
		t.Error(result.Score)
	}
	if len(infos) == 0 || infos[0].Depth != 1 {
		t.Error(infos)
	}
}

// The root value at depth d+1 is at least the negated value of any child
// searched at depth d.
func TestSearchMinimaxBound(t *testing.T) {
	var fens = []string{
		"4k3/8/4K3/4P3/8/8/8/8 w - - 0 1",
		"8/8/8/4p3/4k3/8/4K3/8 b - - 0 1",
	}
	for _, fen := range fens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		const depth = 1
		var s = newTestSearcher()
		var parentScore = s.negamax(&p, depth+1, -valueInfinity, valueInfinity, 0)
		for _, m := range p.GenerateLegalMoves() {
			var child Position
			p.MakeMove(m, &child)
			var cs = newTestSearcher()
			var childScore = cs.negamax(&child, depth, -valueInfinity, valueInfinity, 0)
			if parentScore < -childScore {
				t.Error(fen, m, parentScore, childScore)
			}
		}
	}
}

func TestSearchStopFlag(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var s = newSearchService(4, eval.NewEvaluationService())
	var stop = &atomic.Bool{}
	stop.Store(true)
	s.timeManager = newTimeManager(time.Now(), time.Minute, false, stop)
	var result = s.IterateSearch(&p, maxDepth, nil)
	// No iteration completes, so the fallback is the first legal move.
	if result.BestMove != p.GenerateLegalMoves()[0] {
		t.Error(result.BestMove)
	}
}
