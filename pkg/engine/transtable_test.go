package engine

import (
	"testing"

	. "github.com/vesperchess/vesper/pkg/common"
)

func TestTransTableReplacement(t *testing.T) {
	var tt = newTransTable(1)
	const key = uint64(0xDEADBEEF12345678)

	if _, _, _, _, ok := tt.read(key); ok {
		t.Error("hit on empty table")
	}

	tt.update(key, 5, 30, boundExact, Move(1))
	if depth, score, bound, move, ok := tt.read(key); !ok ||
		depth != 5 || score != 30 || bound != boundExact || move != Move(1) {
		t.Error(depth, score, bound, move, ok)
	}

	// A shallower write to the same key is dropped.
	tt.update(key, 3, -10, boundLower, Move(2))
	if depth, score, _, _, _ := tt.read(key); depth != 5 || score != 30 {
		t.Error(depth, score)
	}

	// An equal-depth write replaces.
	tt.update(key, 5, 77, boundUpper, Move(3))
	if depth, score, bound, _, _ := tt.read(key); depth != 5 || score != 77 || bound != boundUpper {
		t.Error(depth, score, bound)
	}

	// A different key always claims the slot, regardless of depth.
	var other = key + uint64(len(tt.entries))
	tt.update(other, 1, 5, boundLower, Move(4))
	if _, _, _, _, ok := tt.read(key); ok {
		t.Error("evicted entry still readable")
	}
	if depth, _, _, _, ok := tt.read(other); !ok || depth != 1 {
		t.Error(depth, ok)
	}
}

func TestTransTableClamps(t *testing.T) {
	var tt = newTransTable(1)
	tt.update(1, 500, valueMate+100, boundExact, MoveEmpty)
	if depth, score, _, _, ok := tt.read(1); !ok || depth != 127 || score != valueMate {
		t.Error(depth, score, ok)
	}
}

func TestTransTableResize(t *testing.T) {
	var tt = &transTable{}
	tt.resize(3 * transEntrySize)
	if len(tt.entries) != 2 {
		t.Error(len(tt.entries))
	}
	// The smallest budget still yields one slot.
	tt.resize(1)
	if len(tt.entries) != 1 || tt.mask != 0 {
		t.Error(len(tt.entries), tt.mask)
	}
	tt.update(42, 1, 1, boundExact, MoveEmpty)
	if _, _, _, _, ok := tt.read(42); !ok {
		t.Error("single-entry table broken")
	}
}
