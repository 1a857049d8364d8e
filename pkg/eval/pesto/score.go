package eval

import "fmt"

// Score carries the midgame and endgame tallies side by side; the tapered
// blend picks between them once the position has been summed up.
type Score struct {
	Mg, Eg int32
}

func S(mg, eg int32) Score {
	return Score{Mg: mg, Eg: eg}
}

func (s *Score) add(v Score) {
	s.Mg += v.Mg
	s.Eg += v.Eg
}

func (s *Score) sub(v Score) {
	s.Mg -= v.Mg
	s.Eg -= v.Eg
}

// addScaled adds v weighted by n, which may be negative.
func (s *Score) addScaled(v Score, n int) {
	s.Mg += v.Mg * int32(n)
	s.Eg += v.Eg * int32(n)
}

func (s Score) plus(v Score) Score {
	return Score{Mg: s.Mg + v.Mg, Eg: s.Eg + v.Eg}
}

func (s Score) String() string {
	return fmt.Sprintf("Score(%d, %d)", s.Mg, s.Eg)
}
