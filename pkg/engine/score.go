package engine

import . "github.com/vesperchess/vesper/pkg/common"

const (
	valueInfinity  = 30000
	valueMate      = 32000
	valueMateInMax = 10000

	valueWin  = valueMate - valueMateInMax
	valueLoss = -valueWin
)

const (
	maxDepth  = 64
	stackSize = 256
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func isMateValue(v int) bool {
	return v > valueWin || v < valueLoss
}

// The table stores mate scores relative to the root; the search reasons in
// distance from the current node. valueToTT/valueFromTT convert between the
// two on store and probe.
func valueToTT(v, height int) int {
	if v > valueWin {
		return v + height
	}
	if v < valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v > valueWin {
		return v - height
	}
	if v < valueLoss {
		return v + height
	}
	return v
}

func newUciScore(v int) UciScore {
	if v > valueWin {
		return UciScore{Mate: (valueMate - v + 1) / 2}
	}
	if v < valueLoss {
		return UciScore{Mate: (-valueMate - v) / 2}
	}
	return UciScore{Centipawns: v}
}
