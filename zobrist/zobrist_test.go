package zobrist_test

import (
	"testing"

	"github.com/fathomchess/zugzwang/types"
	"github.com/fathomchess/zugzwang/zobrist"
)

func TestMain(m *testing.M) {
	zobrist.Init()
	m.Run()
}

func TestHashDeterministic(t *testing.T) {
	p := types.Position{
		ActiveColor:    types.ColorWhite,
		CastlingRights: 0xF,
		EPTarget:       types.NoSquare,
		FullmoveCnt:    1,
	}
	p.Bitboards[types.PieceWKing] = types.E1
	p.Bitboards[types.PieceBKing] = types.E8

	h1 := zobrist.Hash(p)
	h2 := zobrist.Hash(p)
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %x vs %x", h1, h2)
	}
}

func TestHashChangesWithSideToMove(t *testing.T) {
	p := types.Position{CastlingRights: 0, EPTarget: types.NoSquare}
	p.Bitboards[types.PieceWKing] = types.E1
	p.Bitboards[types.PieceBKing] = types.E8

	white := zobrist.Hash(p)
	p.ActiveColor = types.ColorBlack
	black := zobrist.Hash(p)

	if white == black {
		t.Fatalf("expected hash to change with side to move")
	}
}

func TestHashChangesWithEnPassantTarget(t *testing.T) {
	base := types.Position{CastlingRights: 0, EPTarget: types.NoSquare}
	base.Bitboards[types.PieceWKing] = types.E1
	base.Bitboards[types.PieceBKing] = types.E8

	withEP := base
	withEP.EPTarget = types.SE3

	if zobrist.Hash(base) == zobrist.Hash(withEP) {
		t.Fatalf("expected hash to change with en passant target")
	}
}
