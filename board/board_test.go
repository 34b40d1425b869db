package board_test

import (
	"os"
	"testing"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/types"
	"github.com/fathomchess/zugzwang/zobrist"
)

func TestMain(m *testing.M) {
	movegen.InitAttackTables()
	zobrist.Init()
	os.Exit(m.Run())
}

func perft(b *board.Board, depth int) int {
	if depth == 0 {
		return 1
	}

	var moves types.MoveList
	b.GenLegalMoves(&moves)

	if depth == 1 {
		return int(moves.LastMoveIndex)
	}

	nodes := 0
	for i := range moves.LastMoveIndex {
		u := b.MakeUnchecked(moves.Moves[i])
		nodes += perft(b, depth-1)
		b.Unmake(u)
	}
	return nodes
}

func TestPerftInitialPosition(t *testing.T) {
	cases := []struct {
		depth    int
		expected int
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range cases {
		b := board.FromFEN(fen.InitialPosition)
		if got := perft(b, tc.depth); got != tc.expected {
			t.Fatalf("perft(%d): expected %d, got %d", tc.depth, tc.expected, got)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth    int
		expected int
	}{
		{1, 48},
		{2, 2039},
	}
	for _, tc := range cases {
		b := board.FromFEN(kiwipete)
		if got := perft(b, tc.depth); got != tc.expected {
			t.Fatalf("perft(%d): expected %d, got %d", tc.depth, tc.expected, got)
		}
	}
}

func TestPerftPosition3(t *testing.T) {
	const pos3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	cases := []struct {
		depth    int
		expected int
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, tc := range cases {
		b := board.FromFEN(pos3)
		if got := perft(b, tc.depth); got != tc.expected {
			t.Fatalf("perft(%d): expected %d, got %d", tc.depth, tc.expected, got)
		}
	}
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	b := board.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	var moves types.MoveList
	b.GenLegalMoves(&moves)

	for i := range moves.LastMoveIndex {
		before := b.Hash
		beforePos := b.Position
		u := b.MakeUnchecked(moves.Moves[i])

		if fromScratch := zobrist.Hash(b.Position); fromScratch != b.Hash {
			t.Fatalf("incremental hash %x diverged from from-scratch hash %x after move %v",
				b.Hash, fromScratch, moves.Moves[i])
		}

		b.Unmake(u)
		if b.Hash != before {
			t.Fatalf("hash not restored after unmake: expected %x, got %x", before, b.Hash)
		}
		if b.Position != beforePos {
			t.Fatalf("position not restored after unmake for move %v", moves.Moves[i])
		}
	}
}

func TestMakeRejectsMovesLeavingKingInCheck(t *testing.T) {
	// The e2 pawn is pinned to the white king on e1 along the e-file by the
	// black rook; capturing off the file on d3 would expose the king.
	b := board.FromFEN("4r3/8/8/8/8/3p4/4P3/4K3 w - - 0 1")

	pinnedCapture := types.NewMove(types.SD3, types.SE2, types.MoveNormal)
	if _, ok := b.Make(pinnedCapture); ok {
		t.Fatalf("expected pinned pawn capture to be rejected")
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := board.FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")

	ep := types.NewMove(types.SD6, types.SE5, types.MoveEnPassant)
	u, ok := b.Make(ep)
	if !ok {
		t.Fatalf("expected en passant capture to be legal")
	}
	if b.Bitboards[types.PieceBPawn] != 0 {
		t.Fatalf("expected the captured black pawn to be removed")
	}
	b.Unmake(u)
	if b.Bitboards[types.PieceBPawn] != types.D5 {
		t.Fatalf("expected unmake to restore the captured pawn on d5")
	}
}
