package notation_test

import (
	"os"
	"testing"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/notation"
	"github.com/fathomchess/zugzwang/types"
	"github.com/fathomchess/zugzwang/zobrist"
)

func TestMain(m *testing.M) {
	movegen.InitAttackTables()
	zobrist.Init()
	os.Exit(m.Run())
}

func TestFormatParseUCIRoundTrip(t *testing.T) {
	m := types.NewMove(types.SE4, types.SE2, types.MoveNormal)
	s := notation.FormatUCI(m)
	if s != "e2e4" {
		t.Fatalf("expected e2e4, got %s", s)
	}

	from, to, _, isPromotion, err := notation.ParseUCI(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != types.SE2 || to != types.SE4 || isPromotion {
		t.Fatalf("unexpected parse result: from=%d to=%d promo=%v", from, to, isPromotion)
	}
}

func TestFormatUCIPromotion(t *testing.T) {
	m := types.NewPromotionMove(types.SA8, types.SA7, types.PromotionQueen)
	if s := notation.FormatUCI(m); s != "a7a8q" {
		t.Fatalf("expected a7a8q, got %s", s)
	}
}

func TestResolveMoveFindsExactLegalMove(t *testing.T) {
	b := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	var legal types.MoveList
	b.GenLegalMoves(&legal)

	m, ok := notation.ResolveMove("e2e4", legal)
	if !ok {
		t.Fatalf("expected e2e4 to resolve")
	}
	if m.Type() != types.MoveNormal {
		t.Fatalf("expected a normal pawn double push")
	}
}

func TestFormatSANSimpleMove(t *testing.T) {
	b := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	var legal types.MoveList
	b.GenLegalMoves(&legal)

	m, _ := notation.ResolveMove("g1f3", legal)
	if san := notation.FormatSAN(b, m, legal); san != "Nf3" {
		t.Fatalf("expected Nf3, got %s", san)
	}
}

func TestFormatSANCheckmate(t *testing.T) {
	// Fool's mate: black delivers checkmate with Qh4#.
	b := board.FromFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	var legal types.MoveList
	b.GenLegalMoves(&legal)

	m, ok := notation.ResolveMove("d8h4", legal)
	if !ok {
		t.Fatalf("expected Qd8-h4 to be legal")
	}
	if san := notation.FormatSAN(b, m, legal); san != "Qh4#" {
		t.Fatalf("expected Qh4#, got %s", san)
	}
}
