package boardfmt_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/boardfmt"
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

func TestBoardContainsPiecesAndMetadata(t *testing.T) {
	b := board.FromFEN(fen.InitialPosition)
	diagram := boardfmt.Board(b)

	if !strings.Contains(diagram, "Active color: white") {
		t.Fatalf("expected the diagram to report the active color")
	}
	if !strings.Contains(diagram, "En passant: none") {
		t.Fatalf("expected no en passant target in the starting position")
	}
	if !strings.Contains(diagram, "KQkq") {
		t.Fatalf("expected all four castling rights to show")
	}
	if strings.Count(diagram, "♙") != 8 {
		t.Fatalf("expected eight white pawns in the diagram")
	}
}

func TestBitboardMarksOnlySetSquares(t *testing.T) {
	diagram := boardfmt.Bitboard(types.A1|types.H8, types.PieceWRook)
	if strings.Count(diagram, "♖") != 2 {
		t.Fatalf("expected exactly two rook glyphs, got diagram:\n%s", diagram)
	}
}

func TestWriteSVGProducesWellFormedDocument(t *testing.T) {
	b := board.FromFEN(fen.InitialPosition)
	var buf bytes.Buffer

	boardfmt.WriteSVG(&buf, b)

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("expected a well-formed SVG document, got:\n%s", out)
	}
	if strings.Count(out, "<rect") != 64 {
		t.Fatalf("expected 64 squares, got %d", strings.Count(out, "<rect"))
	}
}
