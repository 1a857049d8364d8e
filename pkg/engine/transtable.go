package engine

import . "github.com/vesperchess/vesper/pkg/common"

const (
	boundLower = 1 << iota
	boundUpper
	boundExact = boundLower | boundUpper
)

// transEntry is 24 bytes with padding; transEntrySize is used for the byte
// budget so the slot count stays a power of two.
type transEntry struct {
	key   uint64
	move  Move
	score int16
	depth int8
	bound uint8
	gen   uint8
}

const transEntrySize = 16

// transTable is a direct-mapped table: one slot per key, no buckets. A slot
// is overwritten when it is empty, holds a different key, or the incoming
// depth is at least the stored depth.
type transTable struct {
	entries    []transEntry
	mask       uint64
	megabytes  int
	generation uint8
}

func newTransTable(megabytes int) *transTable {
	var tt = &transTable{}
	tt.resize(1024 * 1024 * megabytes)
	tt.megabytes = megabytes
	return tt
}

func (tt *transTable) resize(bytes int) {
	var size = roundPowerOfTwo(Max(1, bytes/transEntrySize))
	tt.entries = make([]transEntry, size)
	tt.mask = uint64(size - 1)
	tt.generation = 0
	tt.clear()
}

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

func (tt *transTable) size() int {
	return tt.megabytes
}

func (tt *transTable) nextGeneration() {
	tt.generation++
}

func (tt *transTable) clear() {
	for i := range tt.entries {
		tt.entries[i] = transEntry{depth: -1}
	}
}

func (tt *transTable) read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = &tt.entries[key&tt.mask]
	if entry.depth >= 0 && entry.key == key {
		depth = int(entry.depth)
		score = int(entry.score)
		bound = int(entry.bound)
		move = entry.move
		ok = true
	}
	return
}

func (tt *transTable) update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[key&tt.mask]
	if entry.depth < 0 || entry.key != key || depth >= int(entry.depth) {
		entry.key = key
		entry.move = move
		entry.score = int16(limitValue(score, -valueMate, valueMate))
		entry.depth = int8(limitValue(depth, -128, 127))
		entry.bound = uint8(bound)
		entry.gen = tt.generation
	}
}

func limitValue(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
