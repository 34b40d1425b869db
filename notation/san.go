package notation

import (
	"strings"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/types"
)

var pieceLetters = [6]byte{0, 'N', 'B', 'R', 'Q', 'K'}

// FormatSAN renders m as Standard Algebraic Notation, disambiguating
// against every other legal move in legalMoves that shares m's destination
// and piece type, and appending '+' or '#' by making the move on b,
// checking whether the opponent has any legal reply, and unmaking it.
func FormatSAN(b *board.Board, m types.Move, legalMoves types.MoveList) string {
	if m.Type() == types.MoveCastling {
		san := "O-O"
		if m.To() == types.SC1 || m.To() == types.SC8 {
			san = "O-O-O"
		}
		return san + checkSuffix(b, m)
	}

	moved := b.PieceAt(m.From())
	kind := moved % 6
	captured := b.PieceAt(m.To()) != types.PieceNone || m.Type() == types.MoveEnPassant

	var sb strings.Builder

	if kind == types.PieceWPawn {
		if captured {
			sb.WriteByte(squareNames[m.From()][0])
		}
	} else {
		sb.WriteByte(pieceLetters[kind])
		sb.WriteString(disambiguate(b, m, legalMoves, moved))
	}

	if captured {
		sb.WriteByte('x')
	}
	sb.WriteString(squareNames[m.To()])

	if m.Type() == types.MovePromotion {
		sb.WriteByte('=')
		sb.WriteByte(promotionLetters[m.PromotionPiece()] - 'a' + 'A')
	}

	sb.WriteString(checkSuffix(b, m))

	return sb.String()
}

// disambiguate returns the minimal file/rank/square prefix needed to tell
// m apart from other legal moves of the same piece type to the same
// destination.
func disambiguate(b *board.Board, m types.Move, legalMoves types.MoveList, moved types.Piece) string {
	var sameFile, sameRank, ambiguous bool

	for i := range legalMoves.LastMoveIndex {
		other := legalMoves.Moves[i]
		if other == m || other.To() != m.To() {
			continue
		}
		if b.PieceAt(other.From()) != moved {
			continue
		}
		ambiguous = true
		if other.From()%8 == m.From()%8 {
			sameFile = true
		}
		if other.From()/8 == m.From()/8 {
			sameRank = true
		}
	}

	if !ambiguous {
		return ""
	}
	if !sameFile {
		return squareNames[m.From()][0:1]
	}
	if !sameRank {
		return squareNames[m.From()][1:2]
	}
	return squareNames[m.From()]
}

func checkSuffix(b *board.Board, m types.Move) string {
	u := b.MakeUnchecked(m)
	defer b.Unmake(u)

	opponent := b.ActiveColor
	if !b.InCheck(opponent) {
		return ""
	}

	var replies types.MoveList
	b.GenLegalMoves(&replies)
	if replies.LastMoveIndex == 0 {
		return "#"
	}
	return "+"
}
