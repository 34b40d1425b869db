package tt_test

import (
	"testing"

	"github.com/fathomchess/zugzwang/tt"
)

func TestStoreProbeRoundTrip(t *testing.T) {
	table := tt.New(1)
	table.Store(0x1234, tt.Entry{Depth: 5, Score: 42, Flag: tt.Exact, Move: 7})

	e, ok := table.Probe(0x1234)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if e.Depth != 5 || e.Score != 42 || e.Flag != tt.Exact || e.Move != 7 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestProbeMissOnKeyCollisionAtSameSlot(t *testing.T) {
	table := tt.New(1)
	table.Store(0x1234, tt.Entry{Depth: 1})

	// A different key that maps to the same slot as 0x1234.
	if _, ok := table.Probe(0x1234 + uint64(table.Len())); ok {
		t.Fatalf("expected a miss for a different key in the same slot")
	}
}

func TestClearEmptiesTable(t *testing.T) {
	table := tt.New(1)
	table.Store(0x1, tt.Entry{Depth: 3})
	table.Clear()

	if _, ok := table.Probe(0x1); ok {
		t.Fatalf("expected a miss after Clear")
	}
}

func TestStoreAlwaysReplaces(t *testing.T) {
	table := tt.New(1)
	table.Store(0x1, tt.Entry{Depth: 1, Score: 1})
	table.Store(0x1, tt.Entry{Depth: 9, Score: 9})

	e, ok := table.Probe(0x1)
	if !ok || e.Depth != 9 || e.Score != 9 {
		t.Fatalf("expected the newer entry to have replaced the older one, got %+v", e)
	}
}
