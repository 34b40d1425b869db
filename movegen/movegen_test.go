package movegen_test

import (
	"os"
	"testing"

	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/types"
)

func TestMain(m *testing.M) {
	movegen.InitAttackTables()
	os.Exit(m.Run())
}

func TestKnightAttacksFromCorner(t *testing.T) {
	got := movegen.KnightAttacks(types.SA1)
	if movegen.BitScan(got&-got) < 0 {
		t.Fatalf("expected at least one knight attack from a1")
	}
	if cnt := popcount(got); cnt != 2 {
		t.Fatalf("expected 2 knight attacks from a1, got %d", cnt)
	}
}

func TestKingAttacksFromCenter(t *testing.T) {
	got := movegen.KingAttacks(types.SE4)
	if cnt := popcount(got); cnt != 8 {
		t.Fatalf("expected 8 king attacks from e4, got %d", cnt)
	}
}

func TestRookAttacksOpenBoard(t *testing.T) {
	got := movegen.RookAttacks(types.SD4, 0)
	if cnt := popcount(got); cnt != 14 {
		t.Fatalf("expected 14 rook attacks on an empty board, got %d", cnt)
	}
}

func TestBishopAttacksBlockedByOccupancy(t *testing.T) {
	occ := uint64(types.F6)
	got := movegen.BishopAttacks(types.SD4, occ)
	if got&types.G7 != 0 {
		t.Fatalf("bishop attack should stop at the blocker on f6")
	}
	if got&types.F6 == 0 {
		t.Fatalf("bishop attack should include the blocking square itself")
	}
}

func TestGenPseudoLegalMovesInitialPosition(t *testing.T) {
	pos := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	var l types.MoveList
	movegen.GenPseudoLegalMoves(pos, &l)

	if int(l.LastMoveIndex) != 20 {
		t.Fatalf("expected 20 pseudo-legal moves from the initial position, got %d", l.LastMoveIndex)
	}
}

func TestCastlingRequiresEmptyPath(t *testing.T) {
	pos := fen.Parse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	var l types.MoveList
	movegen.GenPseudoLegalMoves(pos, &l)

	var sawShort, sawLong bool
	for i := range l.LastMoveIndex {
		m := l.Moves[i]
		if m.Type() != types.MoveCastling {
			continue
		}
		switch m.To() {
		case types.SG1:
			sawShort = true
		case types.SC1:
			sawLong = true
		}
	}
	if !sawShort || !sawLong {
		t.Fatalf("expected both white castling moves to be pseudo-legal, got short=%v long=%v", sawShort, sawLong)
	}
}

func TestIsSquareAttacked(t *testing.T) {
	pos := fen.Parse("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	_, _, occupancy := occupancyFor(pos)

	if !movegen.IsSquareAttacked(pos.Bitboards, occupancy, types.SE8, types.ColorWhite) {
		t.Fatalf("expected e8 to be attacked by the rook on e2")
	}
	if movegen.IsSquareAttacked(pos.Bitboards, occupancy, types.SA8, types.ColorWhite) {
		t.Fatalf("a8 should not be attacked")
	}
}

func occupancyFor(p types.Position) (white, black, all uint64) {
	for piece, bb := range p.Bitboards {
		if piece <= types.PieceWKing {
			white |= bb
		} else {
			black |= bb
		}
	}
	return white, black, white | black
}

func popcount(bb uint64) int {
	n := 0
	for bb != 0 {
		n++
		bb &= bb - 1
	}
	return n
}
