// Package game implements chess game state management: a move stack over a
// [board.Board], draw detection (threefold repetition, fifty-move rule,
// insufficient material), and checkmate/stalemate classification.
//
// Make sure to call [movegen.InitAttackTables] and [zobrist.Init] once
// before using this package.
package game

import (
	"github.com/fathomchess/zugzwang/bitutil"
	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/types"
)

// Game tracks one chess game's state: the current board, the legal moves
// available to the side to move, and enough history to undo moves and
// detect repetition without ever re-parsing a FEN string.
type Game struct {
	Board      *board.Board
	LegalMoves types.MoveList
	history    []board.Undo
	// Repetitions counts, by Zobrist hash, how many times each position
	// has occurred in the game so far.
	Repetitions map[uint64]int
	// Captured records every piece taken, in the order it was taken, for
	// presentation layers that want to show a captured-material list.
	Captured []types.Piece
}

// NewGame creates a new game from the standard starting position.
func NewGame() *Game {
	return FromFEN(fen.InitialPosition)
}

// FromFEN creates a new game from a FEN position, with an empty history.
func FromFEN(fenStr string) *Game {
	g := &Game{
		Board:       board.FromFEN(fenStr),
		history:     make([]board.Undo, 0, 64),
		Repetitions: make(map[uint64]int, 64),
		Captured:    make([]types.Piece, 0, 16),
	}
	g.Board.GenLegalMoves(&g.LegalMoves)
	g.Repetitions[g.Board.Hash]++
	return g
}

// PushMove applies m, which must be present in g.LegalMoves, updating the
// move stack, captured-piece list, repetition table, and the legal move
// list for the next side to move. Reports whether m was found.
func (g *Game) PushMove(m types.Move) bool {
	idx := g.GetLegalMoveIndex(m)
	if idx < 0 {
		return false
	}
	m = g.LegalMoves.Moves[idx]

	captured := g.Board.PieceAt(m.To())
	if m.Type() == types.MoveEnPassant {
		if g.Board.ActiveColor == types.ColorWhite {
			captured = types.PieceBPawn
		} else {
			captured = types.PieceWPawn
		}
	}

	undo := g.Board.MakeUnchecked(m)
	g.history = append(g.history, undo)

	if captured != types.PieceNone {
		g.Captured = append(g.Captured, captured)
	}

	g.Board.GenLegalMoves(&g.LegalMoves)
	g.Repetitions[g.Board.Hash]++
	return true
}

// PopMove undoes the last pushed move. No-op if the history is empty.
func (g *Game) PopMove() {
	if len(g.history) == 0 {
		return
	}

	g.Repetitions[g.Board.Hash]--
	if g.Repetitions[g.Board.Hash] == 0 {
		delete(g.Repetitions, g.Board.Hash)
	}

	last := len(g.history) - 1
	undo := g.history[last]
	g.history = g.history[:last]

	if undo.Captured != types.PieceNone && len(g.Captured) > 0 {
		g.Captured = g.Captured[:len(g.Captured)-1]
	}

	g.Board.Unmake(undo)
	g.Board.GenLegalMoves(&g.LegalMoves)
}

// IsThreefoldRepetition reports whether the current position has occurred
// three or more times in the game, keyed by the board's Zobrist hash.
func (g *Game) IsThreefoldRepetition() bool {
	return g.Repetitions[g.Board.Hash] >= 3
}

// IsFiftyMoveRule reports whether fifty full moves have passed without a
// capture or a pawn move.
func (g *Game) IsFiftyMoveRule() bool {
	return g.Board.HalfmoveCnt >= 100
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate:
//
//  1. Both sides have a bare king.
//  2. One side has a king and a minor piece against a bare king.
//  3. Both sides have a king and a bishop, the bishops on the same color.
//  4. Both sides have a king and a knight.
func (g *Game) IsInsufficientMaterial() bool {
	const darkSquares uint64 = 0xAA55AA55AA55AA55
	material := g.material()

	if material == 0 {
		return true
	}
	if material == 3 &&
		g.Board.Bitboards[types.PieceWPawn] == 0 &&
		g.Board.Bitboards[types.PieceBPawn] == 0 {
		return true
	}
	if material == 6 {
		whiteBishop := g.Board.Bitboards[types.PieceWBishop]
		blackBishop := g.Board.Bitboards[types.PieceBBishop]

		sameColorBishops := whiteBishop != 0 && blackBishop != 0 &&
			(whiteBishop&darkSquares > 0) == (blackBishop&darkSquares > 0)
		bothKnights := g.Board.Bitboards[types.PieceWKnight] != 0 &&
			g.Board.Bitboards[types.PieceBKnight] != 0

		return sameColorBishops || bothKnights
	}
	return false
}

// IsCheckmate reports whether the side to move has no legal moves and is
// currently in check.
func (g *Game) IsCheckmate() bool {
	return g.LegalMoves.LastMoveIndex == 0 && g.Board.InCheck(g.Board.ActiveColor)
}

// IsStalemate reports whether the side to move has no legal moves but is
// not in check.
func (g *Game) IsStalemate() bool {
	return g.LegalMoves.LastMoveIndex == 0 && !g.Board.InCheck(g.Board.ActiveColor)
}

// Outcome classifies the current position, returning [types.ResultUnscored]
// if the game is still ongoing.
func (g *Game) Outcome() types.Result {
	switch {
	case g.IsCheckmate():
		return types.ResultCheckmate
	case g.IsStalemate():
		return types.ResultStalemate
	case g.IsInsufficientMaterial():
		return types.ResultInsufficientMaterial
	case g.IsFiftyMoveRule():
		return types.ResultFiftyMove
	case g.IsThreefoldRepetition():
		return types.ResultThreefoldRepetition
	default:
		return types.ResultUnscored
	}
}

// GetLegalMoveIndex checks whether m (identified by from/to square, and
// promotion piece if any) is present in g.LegalMoves, returning its index
// or -1. For an ambiguous promotion move it rewrites the stored move's
// promotion piece to match m's, defaulting to a queen promotion if m's
// promotion piece is out of range.
func (g *Game) GetLegalMoveIndex(m types.Move) int {
	for i := range g.LegalMoves.LastMoveIndex {
		legal := g.LegalMoves.Moves[i]
		if legal.From() != m.From() || legal.To() != m.To() {
			continue
		}
		if legal.Type() == types.MovePromotion {
			promo := m.PromotionPiece()
			if promo < types.PromotionKnight || promo > types.PromotionQueen {
				promo = types.PromotionQueen
			}
			g.LegalMoves.Moves[i] = types.NewPromotionMove(m.To(), m.From(), promo)
		}
		return int(i)
	}
	return -1
}

// material sums a coefficient-weighted piece count across both sides,
// excluding kings, to classify insufficient-material endings.
func (g *Game) material() int {
	var total int
	for piece := types.PieceWPawn; piece <= types.PieceBKing; piece++ {
		if piece == types.PieceWKing || piece == types.PieceBKing {
			continue
		}

		coefficient := 1
		switch piece {
		case types.PieceWKnight, types.PieceBKnight, types.PieceWBishop, types.PieceBBishop:
			coefficient = 3
		case types.PieceWRook, types.PieceBRook:
			coefficient = 5
		case types.PieceWQueen, types.PieceBQueen:
			coefficient = 9
		}

		total += bitutil.CountBits(g.Board.Bitboards[piece]) * coefficient
	}
	return total
}
