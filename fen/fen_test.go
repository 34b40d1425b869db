package fen

import (
	"testing"

	"github.com/fathomchess/zugzwang/types"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	fens := []string{
		InitialPosition,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/8/8/8/4K3/4k3 w - - 5 40",
	}

	for _, f := range fens {
		p := Parse(f)
		if got := Serialize(p); got != f {
			t.Fatalf("round trip mismatch: expected %q, got %q", f, got)
		}
	}
}

func TestParseNoEnPassantTarget(t *testing.T) {
	p := Parse(InitialPosition)
	if p.EPTarget != types.NoSquare {
		t.Fatalf("expected NoSquare, got %d", p.EPTarget)
	}
}

func TestTryParseRejectsMalformedFEN(t *testing.T) {
	if _, err := TryParse("not a fen string"); err == nil {
		t.Fatalf("expected an error for malformed FEN")
	}
}

func TestToBitboardArray(t *testing.T) {
	testcases := []struct {
		name     string
		fenStr   string
		expected [12]uint64
	}{
		{
			"Initial position",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
			[12]uint64{
				0xFF00, 0x42, 0x24, 0x81, 0x8, 0x10,
				0xFF000000000000, 0x4200000000000000, 0x2400000000000000,
				0x8100000000000000, 0x800000000000000, 0x1000000000000000,
			},
		},
		{
			"Two rooks, two pawns",
			"8/4p3/1PR5/8/4R3/8/4p3/8",
			[12]uint64{
				0x20000000000, 0x0, 0x0, 0x40010000000, 0x0, 0x0,
				0x10000000001000, 0x0, 0x0, 0x0, 0x0, 0x0,
			},
		},
	}

	for _, tc := range testcases {
		for pieceType, bitboard := range ToBitboardArray(tc.fenStr) {
			if tc.expected[pieceType] != bitboard {
				t.Fatalf("%s\nexpected:%x\ngot:%x", tc.name, tc.expected[pieceType], bitboard)
			}
		}
	}
}

func TestFromBitboardArray(t *testing.T) {
	testcases := []struct {
		name      string
		bitboards [12]uint64
		expected  string
	}{
		{
			"Initial position",
			[12]uint64{
				0xFF00, 0x42, 0x24, 0x81, 0x8, 0x10,
				0xFF000000000000, 0x4200000000000000, 0x2400000000000000,
				0x8100000000000000, 0x800000000000000, 0x1000000000000000,
			},
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		},
		{
			"Two rooks, two pawns",
			[12]uint64{
				0x20000000000, 0x0, 0x0, 0x40010000000, 0x0, 0x0,
				0x10000000001000, 0x0, 0x0, 0x0, 0x0, 0x0,
			},
			"8/4p3/1PR5/8/4R3/8/4p3/8",
		},
	}

	for _, tc := range testcases {
		got := FromBitboardArray(tc.bitboards)
		if tc.expected != got {
			t.Fatalf("expected: %s, got: %s", tc.expected, got)
		}
	}
}

// Best result: ~97 ns/op, 0 B/op, 0 allocs/op.
func BenchmarkToBitboardArray(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ToBitboardArray("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	}
}

// Best result: ~280 ns/op, 120 B/op, 4 allocs/op.
func BenchmarkFromBitboardArray(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FromBitboardArray([12]uint64{
			0xFF00, 0x42, 0x24, 0x81, 0x8, 0x10,
			0xFF000000000000, 0x4200000000000000, 0x2400000000000000,
			0x8100000000000000, 0x800000000000000, 0x1000000000000000,
		})
	}
}
