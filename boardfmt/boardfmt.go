// Package boardfmt renders a [board.Board] for humans: a Unicode text
// diagram for terminals and logs, and an SVG diagram (via svgo) for
// documentation or a web UI to embed.
package boardfmt

import (
	"strings"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/types"
)

var pieceSymbols = [12]rune{
	'♙', '♘', '♗', '♖', '♕', '♔',
	'♟', '♞', '♝', '♜', '♛', '♚',
}

var squareNames = [64]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

// Bitboard formats a single bitboard into a rank-by-rank string, marking
// every set square with pieceType's symbol.
func Bitboard(bitboard uint64, pieceType types.Piece) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte(rank) + 1 + '0')
		sb.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := pieceSymbols[pieceType]
			if bitboard&square == 0 {
				symbol = '.'
			}
			sb.WriteRune(symbol)
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")

	return sb.String()
}

// Board formats a full position into a human-readable diagram, including
// active color, en passant target and castling rights.
func Board(b *board.Board) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte(rank) + 1 + '0')
		sb.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := '.'
			for i := types.PieceWPawn; i <= types.PieceBKing; i++ {
				if square&b.Bitboards[i] != 0 {
					symbol = pieceSymbols[i]
					break
				}
			}
			sb.WriteRune(symbol)
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")

	if b.ActiveColor == types.ColorWhite {
		sb.WriteString("white\nEn passant: ")
	} else {
		sb.WriteString("black\nEn passant: ")
	}

	if b.EPTarget == types.NoSquare {
		sb.WriteString("none\nCastling rights: ")
	} else {
		sb.WriteString(squareNames[b.EPTarget])
		sb.WriteString("\nCastling rights: ")
	}

	if b.CastlingRights&types.CastlingWhiteShort != 0 {
		sb.WriteByte('K')
	}
	if b.CastlingRights&types.CastlingWhiteLong != 0 {
		sb.WriteByte('Q')
	}
	if b.CastlingRights&types.CastlingBlackShort != 0 {
		sb.WriteByte('k')
	}
	if b.CastlingRights&types.CastlingBlackLong != 0 {
		sb.WriteByte('q')
	}
	sb.WriteByte('\n')

	return sb.String()
}
