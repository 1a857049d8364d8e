package eval

import (
	. "github.com/vesperchess/vesper/pkg/common"
)

const (
	minorPhase = 1
	rookPhase  = 2
	queenPhase = 4
	totalPhase = 24
)

// EvaluationService is a tapered PeSTO evaluation: material and piece-square
// tables plus pawn structure, piece placement, king shelter and mobility,
// blended by game phase. Scores are returned from the side to move. Each
// service carries its own cache, so workers never contend on a lock.
type EvaluationService struct {
	Weights
	cache evalCache
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.Weights.init()
	es.cache.init()
	return es
}

func (e *EvaluationService) ClearCache() {
	e.cache.clear()
}

func (e *EvaluationService) Evaluate(p *Position) int {
	if cached, ok := e.cache.get(p.Key); ok {
		return cached
	}

	var (
		x     uint64
		sq    int
		s     Score
		phase int
	)
	var occ = p.AllPieces()

	phase = minorPhase*PopCount(p.Knights|p.Bishops) +
		rookPhase*PopCount(p.Rooks) +
		queenPhase*PopCount(p.Queens)
	if phase > totalPhase {
		phase = totalPhase
	}

	// Material and piece-square tables.
	for x = p.White; x != 0; x &= x - 1 {
		sq = FirstOne(x)
		s.add(e.PST[p.WhatPiece(sq)][sq])
	}
	for x = p.Black; x != 0; x &= x - 1 {
		sq = FirstOne(x)
		s.sub(e.PST[p.WhatPiece(sq)][FlipSquare(sq)])
	}

	if PopCount(p.Bishops&p.White) >= 2 {
		s.add(e.BishopPair)
	}
	if PopCount(p.Bishops&p.Black) >= 2 {
		s.sub(e.BishopPair)
	}

	s.add(e.evalPawns(p))

	// Knights on the rim.
	var rim = FileAMask | FileHMask | Rank1Mask | Rank8Mask
	s.addScaled(e.KnightRim,
		PopCount(p.Knights&p.White&rim)-PopCount(p.Knights&p.Black&rim))

	s.add(e.evalRooks(p, true, occ))
	s.sub(e.evalRooks(p, false, occ))

	s.add(e.kingShelter(p, true))
	s.sub(e.kingShelter(p, false))

	s.addScaled(e.MobilityWeight, e.mobility(p, true, occ)-e.mobility(p, false, occ))

	if p.WhiteMove {
		s.add(e.Tempo)
	} else {
		s.sub(e.Tempo)
	}

	var result = (int(s.Mg)*phase + int(s.Eg)*(totalPhase-phase)) / totalPhase
	if !p.WhiteMove {
		result = -result
	}

	e.cache.put(p.Key, result)
	return result
}

// passedMask[side][sq] covers the pawn's file and both adjacent files on
// every rank in front of the pawn; a pawn is passed when no enemy pawn sits
// in its mask.
var passedMask [2][64]uint64

func init() {
	for sq := 0; sq < 64; sq++ {
		var files = FileMask[File(sq)]
		if File(sq) > FileA {
			files |= FileMask[File(sq)-1]
		}
		if File(sq) < FileH {
			files |= FileMask[File(sq)+1]
		}
		var ahead, behind uint64
		for r := Rank(sq) + 1; r <= Rank8; r++ {
			ahead |= RankMask[r]
		}
		for r := Rank1; r < Rank(sq); r++ {
			behind |= RankMask[r]
		}
		passedMask[SideWhite][sq] = files & ahead
		passedMask[SideBlack][sq] = files & behind
	}
}

func (e *EvaluationService) evalPawns(p *Position) Score {
	var s Score
	var whitePawns = p.Pawns & p.White
	var blackPawns = p.Pawns & p.Black

	// Doubled and isolated pawns are counted per file: a file with k pawns
	// contributes k-1 doubled, and all k count as isolated when both
	// neighbor files are empty of friends.
	var wDoubled, bDoubled, wIsolated, bIsolated int
	for f := FileA; f <= FileH; f++ {
		var wk = PopCount(whitePawns & FileMask[f])
		var bk = PopCount(blackPawns & FileMask[f])
		wDoubled += Max(0, wk-1)
		bDoubled += Max(0, bk-1)

		var neighbors uint64
		if f > FileA {
			neighbors |= FileMask[f-1]
		}
		if f < FileH {
			neighbors |= FileMask[f+1]
		}
		if wk > 0 && whitePawns&neighbors == 0 {
			wIsolated += wk
		}
		if bk > 0 && blackPawns&neighbors == 0 {
			bIsolated += bk
		}
	}
	s.addScaled(e.PawnDoubled, wDoubled-bDoubled)
	s.addScaled(e.PawnIsolated, wIsolated-bIsolated)

	for x := whitePawns; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		if blackPawns&passedMask[SideWhite][sq] == 0 {
			s.add(e.PassedPawn[Rank(sq)])
		}
	}
	for x := blackPawns; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		if whitePawns&passedMask[SideBlack][sq] == 0 {
			s.sub(e.PassedPawn[Rank(FlipSquare(sq))])
		}
	}

	return s
}

func (e *EvaluationService) evalRooks(p *Position, whiteSide bool, occ uint64) Score {
	var s Score
	var own = p.PiecesByColor(whiteSide)
	var ownPawns = p.Pawns & own
	var rooks = p.Rooks & own

	for x := rooks; x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var file = FileMask[File(sq)]
		if (file & p.Pawns) == 0 {
			s.add(e.RookOpenFile)
		} else if (file & ownPawns) == 0 {
			s.add(e.RookSemiOpenFile)
		}
	}

	if MoreThanOne(rooks) {
		var sq = FirstOne(rooks)
		if (RookAttacks(sq, occ) & rooks &^ SquareMask[sq]) != 0 {
			s.add(e.RooksConnected)
		}
	}
	return s
}

// kingShelter scores the three files around the king: a friendly pawn one
// rank ahead shields fully, two ranks ahead partially, anything else (or a
// file off the board) not at all.
func (e *EvaluationService) kingShelter(p *Position, whiteSide bool) Score {
	var s Score
	var kingSq = p.KingSq(whiteSide)
	var ownPawns = p.Pawns & p.PiecesByColor(whiteSide)
	var kingFile = File(kingSq)
	var kingRank = Rank(kingSq)

	var forward = 1
	if !whiteSide {
		forward = -1
	}

	for file := kingFile - 1; file <= kingFile+1; file++ {
		if file < FileA || file > FileH {
			s.add(e.ShieldEdge)
			continue
		}
		var oneAhead = kingRank + forward
		var twoAhead = kingRank + 2*forward
		if oneAhead >= Rank1 && oneAhead <= Rank8 &&
			(ownPawns&SquareMask[MakeSquare(file, oneAhead)]) != 0 {
			continue
		}
		if twoAhead >= Rank1 && twoAhead <= Rank8 &&
			(ownPawns&SquareMask[MakeSquare(file, twoAhead)]) != 0 {
			s.add(e.ShieldFar)
			continue
		}
		s.add(e.ShieldMissing)
	}
	return s
}

func (e *EvaluationService) mobility(p *Position, whiteSide bool, occ uint64) int {
	var own = p.PiecesByColor(whiteSide)
	var count = 0
	for x := p.Knights & own; x != 0; x &= x - 1 {
		count += PopCount(KnightAttacks[FirstOne(x)] &^ own)
	}
	for x := p.Bishops & own; x != 0; x &= x - 1 {
		count += PopCount(BishopAttacks(FirstOne(x), occ) &^ own)
	}
	for x := p.Rooks & own; x != 0; x &= x - 1 {
		count += PopCount(RookAttacks(FirstOne(x), occ) &^ own)
	}
	for x := p.Queens & own; x != 0; x &= x - 1 {
		count += PopCount(QueenAttacks(FirstOne(x), occ) &^ own)
	}
	return count
}
