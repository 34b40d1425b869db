// Package notation converts [types.Move] values to and from the text
// formats UCI GUIs and human-readable game logs use: long algebraic move
// strings and Standard Algebraic Notation.
package notation

import (
	"fmt"

	"github.com/fathomchess/zugzwang/types"
)

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

var promotionLetters = [4]byte{'n', 'b', 'r', 'q'}

// FormatUCI renders m as a four or five character long algebraic string,
// e.g. "e2e4" or "a7a8q".
func FormatUCI(m types.Move) string {
	s := squareNames[m.From()] + squareNames[m.To()]
	if m.Type() == types.MovePromotion {
		s += string(promotionLetters[m.PromotionPiece()])
	}
	return s
}

// ParseUCI parses a long algebraic move string into its from/to squares
// and, for a promotion, the promoted-to piece. It does not know which
// [types.MoveType] the move is (castling/en passant/normal) — resolving
// that requires checking against the legal move list for the position, as
// [ResolveMove] does.
func ParseUCI(s string) (from, to int, promotion types.PromotionFlag, isPromotion bool, err error) {
	if len(s) != 4 && len(s) != 5 {
		return 0, 0, 0, false, fmt.Errorf("notation: invalid UCI move %q", s)
	}
	from, err = parseSquare(s[0:2])
	if err != nil {
		return 0, 0, 0, false, err
	}
	to, err = parseSquare(s[2:4])
	if err != nil {
		return 0, 0, 0, false, err
	}
	if len(s) == 5 {
		isPromotion = true
		switch s[4] {
		case 'n':
			promotion = types.PromotionKnight
		case 'b':
			promotion = types.PromotionBishop
		case 'r':
			promotion = types.PromotionRook
		case 'q':
			promotion = types.PromotionQueen
		default:
			return 0, 0, 0, false, fmt.Errorf("notation: invalid promotion piece %q", s[4:])
		}
	}
	return from, to, promotion, isPromotion, nil
}

func parseSquare(s string) (int, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("notation: invalid square %q", s)
	}
	return int(s[0]-'a') + int(s[1]-'1')*8, nil
}

// ResolveMove finds the legal move in legalMoves whose UCI string matches
// uciStr, returning it with its true [types.MoveType] (castling/en
// passant/normal/promotion) as generated by move generation. The UCI
// protocol never names the move type explicitly, so the legal move list is
// the only source of truth for it.
func ResolveMove(uciStr string, legalMoves types.MoveList) (types.Move, bool) {
	for i := range legalMoves.LastMoveIndex {
		m := legalMoves.Moves[i]
		if FormatUCI(m) == uciStr {
			return m, true
		}
	}
	return 0, false
}
