package engine

import (
	. "github.com/vesperchess/vesper/pkg/common"
)

// SearchResult is one worker's verdict: the move it would play and the score
// it proved for it, from the side to move.
type SearchResult struct {
	BestMove Move
	Score    int
}

// searchService runs iterative deepening on its own position clone. It owns
// its transposition table, history and killers; nothing here is shared
// between workers except the stop flag inside the time manager.
type searchService struct {
	transTable  *transTable
	history     historyTable
	killers     killerTable
	evaluator   Evaluator
	timeManager *timeManager
	progress    func(SearchInfo)
	nodes       int64
}

type Evaluator interface {
	Evaluate(p *Position) int
	ClearCache()
}

func newSearchService(megabytes int, evaluator Evaluator) *searchService {
	return &searchService{
		transTable: newTransTable(megabytes),
		evaluator:  evaluator,
	}
}

func (s *searchService) NewGame() {
	s.transTable.nextGeneration()
	s.history.Clear()
	s.killers.Clear()
	s.evaluator.ClearCache()
}

// IterateSearch deepens from 1 to depthLimit, keeping the best move of the
// last completed iteration. Iterations after the first open with an
// aspiration window around the previous score and fall back to a full-window
// re-search when the result lands outside it.
func (s *searchService) IterateSearch(p *Position, depthLimit int, progress func(SearchInfo)) SearchResult {
	s.nodes = 0
	s.progress = progress

	var ml = p.GenerateLegalMoves()
	if len(ml) == 0 {
		return SearchResult{MoveEmpty, 0}
	}

	var best = ml[0]
	var bestScore = -valueInfinity
	var prevScore = 0

	for depth := 1; depth <= depthLimit; depth++ {
		if s.timeManager.TimeUp() {
			break
		}

		var score int
		if depth > 1 && !isMateValue(prevScore) {
			const window = 25
			score = s.negamax(p, depth, prevScore-window, prevScore+window, 0)
			if !s.timeManager.TimeUp() &&
				(score <= prevScore-window || score >= prevScore+window) {
				score = s.negamax(p, depth, -valueInfinity, valueInfinity, 0)
			}
		} else {
			score = s.negamax(p, depth, -valueInfinity, valueInfinity, 0)
		}
		if s.timeManager.TimeUp() {
			break
		}

		var pv = s.extractPV(p)
		if len(pv) != 0 {
			best = pv[0]
		}
		bestScore = score
		prevScore = score

		if s.progress != nil {
			s.progress(SearchInfo{
				Depth:    depth,
				Score:    newUciScore(score),
				Nodes:    s.nodes,
				Time:     s.timeManager.Elapsed(),
				MainLine: pv,
			})
		}
	}

	return SearchResult{best, bestScore}
}

func (s *searchService) negamax(p *Position, depth, alpha, beta, height int) int {
	s.nodes++
	if s.nodes&2047 == 0 && s.timeManager.TimeUp() {
		return s.evaluator.Evaluate(p)
	}
	if height >= stackSize-1 {
		return s.evaluator.Evaluate(p)
	}

	var alphaOrig = alpha

	var hashMove = MoveEmpty
	if ttDepth, ttScore, ttBound, ttMove, ok := s.transTable.read(p.Key); ok {
		hashMove = ttMove
		if ttDepth >= depth {
			var score = valueFromTT(ttScore, height)
			switch ttBound {
			case boundExact:
				return score
			case boundLower:
				if score > alpha {
					alpha = score
				}
			case boundUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(p, alpha, beta, height)
	}

	var ml = p.GenerateLegalMoves()
	if len(ml) == 0 {
		if p.IsCheck() {
			return lossIn(height)
		}
		return 0
	}

	if p.IsCheck() {
		depth++
	}

	var buffer [MaxMoves]orderedMove
	var moves = s.orderMoves(ml, hashMove, height, buffer[:])

	var bestScore = -valueMate
	var bestMove = MoveEmpty
	var child Position

	for i := range moves {
		var move = moves[i].move
		p.MakeMove(move, &child)

		var newDepth = depth - 1
		// Light late-move reduction: no re-search on fail-high.
		if newDepth > 0 && i >= 4 && !move.IsCaptureOrPromotion() {
			newDepth--
		}

		var score = -s.negamax(&child, newDepth, -beta, -alpha, height+1)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			if !move.IsCaptureOrPromotion() {
				s.history.Update(move, Min(2000, 100+depth*depth))
				s.killers.Push(height, move)
			}
		}
		if alpha >= beta {
			if !move.IsCaptureOrPromotion() {
				s.history.Update(move, Min(4000, 200+depth*depth))
				s.killers.Push(height, move)
			}
			break
		}
	}

	var bound = boundExact
	if bestScore <= alphaOrig {
		bound = boundUpper
	} else if bestScore >= beta {
		bound = boundLower
	}
	s.transTable.update(p.Key, depth, valueToTT(bestScore, height), bound, bestMove)

	return bestScore
}

func (s *searchService) quiescence(p *Position, alpha, beta, height int) int {
	s.nodes++
	if s.nodes&1023 == 0 && s.timeManager.TimeUp() {
		return s.evaluator.Evaluate(p)
	}
	if height >= stackSize-1 {
		return s.evaluator.Evaluate(p)
	}

	var child Position

	// Check evasions are searched full width, without a stand-pat cutoff.
	if p.IsCheck() {
		var ml = p.GenerateLegalMoves()
		if len(ml) == 0 {
			return lossIn(height)
		}
		var best = -valueMate
		for _, move := range ml {
			p.MakeMove(move, &child)
			var score = -s.quiescence(&child, -beta, -alpha, height+1)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	var stand = s.evaluator.Evaluate(p)
	if stand >= beta {
		return stand
	}
	if stand > alpha {
		alpha = stand
	}

	var buffer [MaxMoves]orderedMove
	var moves = buffer[:0]
	for _, move := range p.GenerateLegalMoves() {
		if move.IsCaptureOrPromotion() {
			moves = append(moves, orderedMove{move, mvvLva(move)})
		}
	}
	if len(moves) == 0 {
		return stand
	}
	sortMoves(moves)

	var best = stand
	for i := range moves {
		p.MakeMove(moves[i].move, &child)
		var score = -s.quiescence(&child, -beta, -alpha, height+1)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// extractPV walks the table from the root, following stored moves while they
// are legal. Overwritten entries can truncate the line; the depth bound also
// stops cycles.
func (s *searchService) extractPV(root *Position) []Move {
	var pv []Move
	var pos = *root
	var child Position
	for i := 0; i < maxDepth; i++ {
		var _, _, _, move, ok = s.transTable.read(pos.Key)
		if !ok || move == MoveEmpty {
			break
		}
		var legal = false
		for _, m := range pos.GenerateLegalMoves() {
			if m == move {
				legal = true
				break
			}
		}
		if !legal || !pos.MakeMove(move, &child) {
			break
		}
		pv = append(pv, move)
		pos = child
	}
	return pv
}
