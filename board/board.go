// Package board implements the search-hot position representation: a
// 12-bitboard [types.Position] enriched with derived occupancy and an
// incrementally maintained Zobrist hash, plus the O(1) Undo-based
// make/unmake pair search relies on instead of copying the whole position
// per ply.
package board

import (
	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/types"
	"github.com/fathomchess/zugzwang/zobrist"
)

// Board wraps a [types.Position] with the derived state the search hot
// path needs on every node: per-color occupancy (so move generation and
// AttackersTo never rescan all 12 bitboards) and the running Zobrist hash.
type Board struct {
	types.Position
	WhiteOcc uint64
	BlackOcc uint64
	AllOcc   uint64
	Hash     uint64
}

// Undo captures everything [Board.MakeUnchecked] mutated, so
// [Board.Unmake] can restore the position in O(1) without ever touching a
// saved FEN string.
type Undo struct {
	Move         types.Move
	Moved        types.Piece
	Captured     types.Piece
	PrevCastling types.CastlingRights
	PrevEP       int
	PrevHalfmove int
	PrevHash     uint64
}

// New builds a Board from a parsed position, computing occupancy and hash.
func New(p types.Position) *Board {
	b := &Board{Position: p}
	b.recomputeOccupancy()
	b.Hash = zobrist.Hash(p)
	return b
}

// FromFEN parses fenStr and builds a Board from it.
func FromFEN(fenStr string) *Board {
	return New(fen.Parse(fenStr))
}

func (b *Board) recomputeOccupancy() {
	var white, black uint64
	for piece, bb := range b.Bitboards {
		if piece <= types.PieceWKing {
			white |= bb
		} else {
			black |= bb
		}
	}
	b.WhiteOcc, b.BlackOcc = white, black
	b.AllOcc = white | black
}

// PieceAt returns the piece occupying square, or [types.PieceNone].
func (b *Board) PieceAt(square int) types.Piece {
	mask := uint64(1) << square
	for piece, bb := range b.Bitboards {
		if bb&mask != 0 {
			return piece
		}
	}
	return types.PieceNone
}

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(color types.Color) int {
	return movegen.BitScan(b.Bitboards[types.PieceWKing+6*color])
}

// InCheck reports whether color's king is currently attacked.
func (b *Board) InCheck(color types.Color) bool {
	return movegen.IsSquareAttacked(b.Bitboards, b.AllOcc, b.KingSquare(color), 1^color)
}

// AttackersTo returns every piece of color `by` attacking sq.
func (b *Board) AttackersTo(sq int, by types.Color) uint64 {
	return movegen.AttackersTo(b.Bitboards, b.AllOcc, sq, by)
}

func (b *Board) place(piece types.Piece, mask uint64) {
	b.Bitboards[piece] |= mask
	b.Hash ^= zobrist.PieceKeys[piece][movegen.BitScan(mask)]
	if piece <= types.PieceWKing {
		b.WhiteOcc |= mask
	} else {
		b.BlackOcc |= mask
	}
	b.AllOcc |= mask
}

func (b *Board) remove(piece types.Piece, mask uint64) {
	b.Bitboards[piece] &^= mask
	b.Hash ^= zobrist.PieceKeys[piece][movegen.BitScan(mask)]
	if piece <= types.PieceWKing {
		b.WhiteOcc &^= mask
	} else {
		b.BlackOcc &^= mask
	}
	b.AllOcc &^= mask
}

func (b *Board) move(piece types.Piece, from, to uint64) {
	b.remove(piece, from)
	b.place(piece, to)
}

// MakeUnchecked applies m to the board unconditionally (it does not verify
// the mover's own king stays safe) and returns an Undo that
// [Board.Unmake] can use to invert it. This is the search hot path; use
// [Board.Make] when the legality check is also needed.
func (b *Board) MakeUnchecked(m types.Move) Undo {
	from, to := uint64(1)<<m.From(), uint64(1)<<m.To()
	moved := b.PieceAt(m.From())
	captured := types.PieceNone

	u := Undo{
		Move:         m,
		Moved:        moved,
		PrevCastling: b.CastlingRights,
		PrevEP:       b.EPTarget,
		PrevHalfmove: b.HalfmoveCnt,
		PrevHash:     b.Hash,
	}

	b.Hash ^= zobrist.CastlingKeys[b.CastlingRights]
	if b.EPTarget != types.NoSquare {
		b.Hash ^= zobrist.EPKeys[b.EPTarget]
	}

	switch m.Type() {
	case types.MoveNormal:
		captured = b.PieceAt(m.To())
		if captured != types.PieceNone {
			b.remove(captured, to)
			b.HalfmoveCnt = 0
		} else {
			b.HalfmoveCnt++
		}
		b.move(moved, from, to)

	case types.MoveEnPassant:
		if moved == types.PieceWPawn {
			captured = types.PieceBPawn
			b.remove(captured, to>>8)
		} else {
			captured = types.PieceWPawn
			b.remove(captured, to<<8)
		}
		b.move(moved, from, to)
		b.HalfmoveCnt = 0

	case types.MoveCastling:
		b.move(moved, from, to)
		rook := moved - 2 // king piece index - 2 == same-color rook index
		switch m.To() {
		case types.SG1, types.SG8:
			b.move(rook, to<<1, to>>1)
		case types.SC1, types.SC8:
			b.move(rook, to>>2, to<<1)
		}
		b.HalfmoveCnt++

	case types.MovePromotion:
		captured = b.PieceAt(m.To())
		if captured != types.PieceNone {
			b.remove(captured, to)
		}
		b.remove(moved, from)
		var promoted types.Piece
		if moved == types.PieceWPawn {
			promoted = m.PromotionPiece() + 1
		} else {
			promoted = m.PromotionPiece() + 7
		}
		b.place(promoted, to)
		b.HalfmoveCnt = 0
	}

	u.Captured = captured

	b.EPTarget = types.NoSquare
	switch moved {
	case types.PieceWPawn, types.PieceBPawn:
		if m.From()-m.To() == -16 {
			b.EPTarget = m.To() - 8
		} else if m.From()-m.To() == 16 {
			b.EPTarget = m.To() + 8
		}
		// Any pawn move resets the fifty-move counter, including a
		// single push that the MoveNormal branch above just incremented.
		b.HalfmoveCnt = 0
	case types.PieceWKing:
		b.CastlingRights &^= types.CastlingWhiteShort | types.CastlingWhiteLong
	case types.PieceBKing:
		b.CastlingRights &^= types.CastlingBlackShort | types.CastlingBlackLong
	}

	if moved == types.PieceWRook || captured == types.PieceWRook {
		if b.Bitboards[types.PieceWRook]&types.A1 == 0 {
			b.CastlingRights &^= types.CastlingWhiteLong
		}
		if b.Bitboards[types.PieceWRook]&types.H1 == 0 {
			b.CastlingRights &^= types.CastlingWhiteShort
		}
	}
	if moved == types.PieceBRook || captured == types.PieceBRook {
		if b.Bitboards[types.PieceBRook]&types.A8 == 0 {
			b.CastlingRights &^= types.CastlingBlackLong
		}
		if b.Bitboards[types.PieceBRook]&types.H8 == 0 {
			b.CastlingRights &^= types.CastlingBlackShort
		}
	}

	b.Hash ^= zobrist.CastlingKeys[b.CastlingRights]
	if b.EPTarget != types.NoSquare {
		b.Hash ^= zobrist.EPKeys[b.EPTarget]
	}

	if b.ActiveColor == types.ColorBlack {
		b.FullmoveCnt++
	}
	b.ActiveColor ^= 1
	b.Hash ^= zobrist.ColorKey

	return u
}

// Make applies m and verifies the mover's own king is not left in check,
// unmaking and returning false if it is — the legality gate spec's
// make/unmake algorithm requires.
func (b *Board) Make(m types.Move) (Undo, bool) {
	mover := b.ActiveColor
	u := b.MakeUnchecked(m)
	if b.InCheck(mover) {
		b.Unmake(u)
		return u, false
	}
	return u, true
}

// Unmake exactly inverts the effect of MakeUnchecked(u.Move).
func (b *Board) Unmake(u Undo) {
	b.ActiveColor ^= 1
	if b.ActiveColor == types.ColorBlack {
		b.FullmoveCnt--
	}

	m := u.Move
	from, to := uint64(1)<<m.From(), uint64(1)<<m.To()

	switch m.Type() {
	case types.MoveNormal:
		b.move(u.Moved, to, from)
		if u.Captured != types.PieceNone {
			b.place(u.Captured, to)
		}

	case types.MoveEnPassant:
		b.move(u.Moved, to, from)
		if u.Moved == types.PieceWPawn {
			b.place(types.PieceBPawn, to>>8)
		} else {
			b.place(types.PieceWPawn, to<<8)
		}

	case types.MoveCastling:
		b.move(u.Moved, to, from)
		rook := u.Moved - 2
		switch m.To() {
		case types.SG1, types.SG8:
			b.move(rook, to>>1, to<<1)
		case types.SC1, types.SC8:
			b.move(rook, to<<1, to>>2)
		}

	case types.MovePromotion:
		var promoted types.Piece
		if u.Moved == types.PieceWPawn {
			promoted = m.PromotionPiece() + 1
		} else {
			promoted = m.PromotionPiece() + 7
		}
		b.remove(promoted, to)
		b.place(u.Moved, from)
		if u.Captured != types.PieceNone {
			b.place(u.Captured, to)
		}
	}

	b.Hash = u.PrevHash
	b.CastlingRights = u.PrevCastling
	b.EPTarget = u.PrevEP
	b.HalfmoveCnt = u.PrevHalfmove
}

// GenLegalMoves appends every fully legal move to l, filtering
// [movegen.GenPseudoLegalMoves]'s output by actually making and unmaking
// each candidate and checking the mover's own king.
func (b *Board) GenLegalMoves(l *types.MoveList) {
	var pseudo types.MoveList
	movegen.GenPseudoLegalMoves(b.Position, &pseudo)

	l.LastMoveIndex = 0
	mover := b.ActiveColor
	for i := range pseudo.LastMoveIndex {
		m := pseudo.Moves[i]
		u := b.MakeUnchecked(m)
		if !b.InCheck(mover) {
			l.Push(m)
		}
		b.Unmake(u)
	}
}
