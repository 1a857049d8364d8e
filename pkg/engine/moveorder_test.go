package engine

import (
	"testing"

	. "github.com/vesperchess/vesper/pkg/common"
)

func TestOrderMovesHashMoveFirst(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	var s = &searchService{}
	var buffer [MaxMoves]orderedMove
	for _, hashMove := range ml {
		var moves = s.orderMoves(ml, hashMove, 0, buffer[:])
		if moves[0].move != hashMove {
			t.Error(hashMove, moves[0].move)
		}
	}
}

func TestOrderMovesCapturesBeforeQuiets(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	var s = &searchService{}
	var buffer [MaxMoves]orderedMove
	var moves = s.orderMoves(ml, MoveEmpty, 0, buffer[:])
	var seenQuiet = false
	for i := range moves {
		if moves[i].move.CapturedPiece() == Empty {
			seenQuiet = true
		} else if seenQuiet {
			t.Fatal("capture ordered after a quiet move")
		}
	}
}

func TestOrderMovesKillersBeforeQuiets(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	var s = &searchService{}
	var killer = ml[len(ml)-1]
	s.killers.Push(3, killer)
	var buffer [MaxMoves]orderedMove
	var moves = s.orderMoves(ml, MoveEmpty, 3, buffer[:])
	if moves[0].move != killer {
		t.Error(moves[0].move, killer)
	}
}

func TestMvvLva(t *testing.T) {
	// PxQ outranks QxP, which outranks any quiet move.
	var pxq = makeTestCapture(Pawn, Queen)
	var qxp = makeTestCapture(Queen, Pawn)
	if mvvLva(pxq) <= mvvLva(qxp) {
		t.Error(mvvLva(pxq), mvvLva(qxp))
	}
	var quiet = moveFromTo(1, 2)
	if mvvLva(quiet) != 0 {
		t.Error(mvvLva(quiet))
	}
	// Equal victims are ordered by the cheaper attacker.
	var pxr = makeTestCapture(Pawn, Rook)
	var nxr = makeTestCapture(Knight, Rook)
	if mvvLva(pxr) <= mvvLva(nxr) {
		t.Error(mvvLva(pxr), mvvLva(nxr))
	}
}

func makeTestCapture(attacker, victim int) Move {
	return Move(0) ^ Move(1<<6) ^ Move(attacker<<12) ^ Move(victim<<15)
}
