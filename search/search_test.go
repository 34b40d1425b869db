package search_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/notation"
	"github.com/fathomchess/zugzwang/search"
	"github.com/fathomchess/zugzwang/tt"
	"github.com/fathomchess/zugzwang/types"
	"github.com/fathomchess/zugzwang/zobrist"
)

func TestMain(m *testing.M) {
	movegen.InitAttackTables()
	zobrist.Init()
	os.Exit(m.Run())
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Scholar's mate: white to move, Qh5xf7 is mate with the c4 bishop
	// guarding f7.
	b := board.FromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	s := search.New(tt.New(4))

	result := s.Search(context.Background(), b, search.Limits{Depth: 4})
	if result.BestMove == 0 {
		t.Fatalf("expected a best move")
	}
	if got := notation.FormatUCI(result.BestMove); got != "h5f7" {
		t.Fatalf("expected mating move h5f7, got %s (score %d)", got, result.Score)
	}
	if result.Score < search.MateThreshold {
		t.Fatalf("expected a mate score, got %d", result.Score)
	}
}

func TestSearchPrefersWinningCapture(t *testing.T) {
	b := board.FromFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	s := search.New(tt.New(4))

	result := s.Search(context.Background(), b, search.Limits{Depth: 5})
	if got := notation.FormatUCI(result.BestMove); got != "e4d5" {
		t.Fatalf("expected the pawn to take the queen (e4d5), got %s", got)
	}
}

func TestSearchRespectsMoveTime(t *testing.T) {
	b := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	s := search.New(tt.New(4))

	start := time.Now()
	result := s.Search(context.Background(), b, search.Limits{MoveTime: 100 * time.Millisecond})
	elapsed := time.Since(start)

	if result.BestMove == 0 {
		t.Fatalf("expected a best move even when interrupted")
	}
	if elapsed > time.Second {
		t.Fatalf("search ran far past its move time budget: %v", elapsed)
	}
}

func TestSearchRespectsContextCancellation(t *testing.T) {
	b := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	s := search.New(tt.New(4))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := s.Search(ctx, b, search.Limits{})
	if result.BestMove == 0 {
		t.Fatalf("expected a best move even when cancelled")
	}
}

func TestSearchReturnsFallbackMoveWhenCancelledImmediately(t *testing.T) {
	b := board.FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	s := search.New(tt.New(4))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled before Search even starts depth 1

	result := s.Search(ctx, b, search.Limits{Depth: 10})
	if result.BestMove == 0 {
		t.Fatalf("expected a legal fallback move even though depth 1 never completed")
	}

	var legal types.MoveList
	b.GenLegalMoves(&legal)
	found := false
	for i := range legal.LastMoveIndex {
		if legal.Moves[i] == result.BestMove {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("fallback move %s is not a legal move from the start position", notation.FormatUCI(result.BestMove))
	}
}

func TestSeeWinningAndLosingCaptures(t *testing.T) {
	b := board.FromFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	var legal types.MoveList
	b.GenLegalMoves(&legal)

	m, ok := notation.ResolveMove("e4d5", legal)
	if !ok {
		t.Fatalf("expected e4d5 to be legal")
	}
	if got := search.See(b, m); got <= 0 {
		t.Fatalf("expected a winning SEE for pawn takes queen, got %d", got)
	}

	// Queen takes a pawn defended by another pawn.
	b = board.FromFEN("4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1")
	b.GenLegalMoves(&legal)
	m, ok = notation.ResolveMove("d1d5", legal)
	if !ok {
		t.Fatalf("expected d1d5 to be legal")
	}
	if got := search.See(b, m); got >= 0 {
		t.Fatalf("expected a losing SEE for queen takes defended pawn, got %d", got)
	}
}
