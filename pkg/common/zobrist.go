package common

// Hash keys are drawn from a splitmix64 stream, so the whole set is
// reproducible from one constant without seeding math/rand.

var (
	pieceKeys     [2][King + 1][64]uint64
	castlingKeys  [16]uint64
	enpassantKeys [8]uint64
	sideKey       uint64
)

func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	var z = *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func PieceSquareKey(piece int, whiteSide bool, square int) uint64 {
	return pieceKeys[SideIndex(whiteSide)][piece][square]
}

// computeKey builds the hash of the position from scratch. MakeMove maintains
// it incrementally; this is the reference for fresh positions. Castling
// states hash as a whole, so incremental updates remove the old state's key
// and add the new one.
func (p *Position) computeKey() uint64 {
	var result = castlingKeys[p.CastleRights]
	if p.WhiteMove {
		result ^= sideKey
	}
	if p.EpSquare != SquareNone {
		result ^= enpassantKeys[File(p.EpSquare)]
	}
	for sq := 0; sq < 64; sq++ {
		var piece, side = p.GetPieceTypeAndSide(sq)
		if piece != Empty {
			result ^= PieceSquareKey(piece, side, sq)
		}
	}
	return result
}

func init() {
	var state = uint64(0x56455350_45520A01)
	for side := range pieceKeys {
		for piece := Pawn; piece <= King; piece++ {
			for sq := 0; sq < 64; sq++ {
				pieceKeys[side][piece][sq] = splitmix64(&state)
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = splitmix64(&state)
	}
	for i := range enpassantKeys {
		enpassantKeys[i] = splitmix64(&state)
	}
	sideKey = splitmix64(&state)
}
