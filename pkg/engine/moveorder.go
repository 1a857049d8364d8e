package engine

import . "github.com/vesperchess/vesper/pkg/common"

const (
	scoreHashMove = 30_000_000
	scoreCapture  = 20_000_000
	scoreKiller   = 15_000_000
	scoreQuiet    = 10_000_000
)

type orderedMove struct {
	move Move
	key  int
}

var mvvLvaValues = [...]int{0, 100, 320, 330, 500, 900, 20000}

// mvvLva prefers valuable victims and cheap attackers. The captured piece is
// taken from the move itself, so en-passant victims resolve to a pawn.
func mvvLva(m Move) int {
	if m.CapturedPiece() == Empty {
		return 0
	}
	return 10000 + 16*mvvLvaValues[m.CapturedPiece()] - mvvLvaValues[m.MovingPiece()]
}

func (s *searchService) orderMoves(ml []Move, hashMove Move, height int, buffer []orderedMove) []orderedMove {
	var moves = buffer[:0]
	for _, m := range ml {
		var key int
		switch {
		case m == hashMove:
			key = scoreHashMove
		case m.CapturedPiece() != Empty:
			key = scoreCapture + mvvLva(m)
		case s.killers.Contains(height, m):
			key = scoreKiller
		default:
			key = scoreQuiet + s.history.Score(m)
		}
		moves = append(moves, orderedMove{m, key})
	}
	sortMoves(moves)
	return moves
}

var shellSortGaps = [...]int{10, 4, 1}

func sortMoves(moves []orderedMove) {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(moves); i++ {
			j, t := i, moves[i]
			for ; j >= gap && moves[j-gap].key < t.key; j -= gap {
				moves[j] = moves[j-gap]
			}
			moves[j] = t
		}
	}
}
