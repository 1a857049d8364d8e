package engine

import . "github.com/vesperchess/vesper/pkg/common"

const historyMax = 30000

// historyTable counts how often quiet from-to moves raised alpha, saturating
// at +-historyMax.
type historyTable [64 * 64]int16

func (ht *historyTable) Clear() {
	for i := range ht {
		ht[i] = 0
	}
}

func (ht *historyTable) Update(m Move, bonus int) {
	var index = fromToIndex(m)
	var v = int(ht[index]) + bonus
	ht[index] = int16(limitValue(v, -historyMax, historyMax))
}

func (ht *historyTable) Score(m Move) int {
	return int(ht[fromToIndex(m)])
}

func fromToIndex(m Move) int {
	return (m.From() << 6) | m.To()
}

// killerTable keeps two quiet cutoff moves per ply. Pushing a move already
// held in either slot is a no-op; otherwise slot 1 shifts into slot 2.
type killerTable [stackSize][2]Move

func (kt *killerTable) Clear() {
	for i := range kt {
		kt[i][0] = MoveEmpty
		kt[i][1] = MoveEmpty
	}
}

func (kt *killerTable) Push(height int, m Move) {
	if m == kt[height][0] || m == kt[height][1] {
		return
	}
	kt[height][1] = kt[height][0]
	kt[height][0] = m
}

func (kt *killerTable) Contains(height int, m Move) bool {
	return m == kt[height][0] || m == kt[height][1]
}
