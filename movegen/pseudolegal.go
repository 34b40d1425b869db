package movegen

import "github.com/fathomchess/zugzwang/types"

// GenPseudoLegalMoves appends every pseudo-legal move for the side to move
// in p to l. Pseudo-legal here means the move obeys piece movement rules
// and castling's empty/unattacked-path requirements, but may still leave
// the mover's own king in check; callers filter those out (see
// board.Board.GenLegalMoves) by making the move and checking
// [AttackersTo] against the king square.
func GenPseudoLegalMoves(p types.Position, l *types.MoveList) {
	l.LastMoveIndex = 0

	genPawnMoves(p, l)
	genLeaperAndSliderMoves(p, l)
	genKingMoves(p, l)
}

func occupancyOf(p types.Position) (white, black, all uint64) {
	for piece, bb := range p.Bitboards {
		if piece <= types.PieceWKing {
			white |= bb
		} else {
			black |= bb
		}
	}
	all = white | black
	return
}

func genPawnMoves(p types.Position, l *types.MoveList) {
	white, black, occupancy := occupancyOf(p)
	var enemies uint64
	if p.ActiveColor == types.ColorWhite {
		enemies = black
	} else {
		enemies = white
	}

	var ep uint64
	if p.EPTarget != types.NoSquare {
		ep = uint64(1) << p.EPTarget
	}

	pawns := p.Bitboards[types.PieceWPawn+6*p.ActiveColor]

	dir, initRank, promoRank := 8, uint64(rank2), uint64(rank8)
	if p.ActiveColor == types.ColorBlack {
		dir, initRank, promoRank = -8, rank7, rank1
	}

	for pawns != 0 {
		from := popLSB(&pawns)
		square := uint64(1) << from

		fwd := from + dir
		fwdBB := uint64(1) << fwd
		if fwdBB&occupancy == 0 {
			pushPawnMove(l, fwd, from, fwdBB&promoRank != 0)

			dbl := from + 2*dir
			if square&initRank != 0 && uint64(1)<<dbl&occupancy == 0 {
				l.Push(types.NewMove(dbl, from, types.MoveNormal))
			}
		}

		attacks := pawnAttacks[p.ActiveColor][from] & (enemies | ep)
		for attacks != 0 {
			to := popLSB(&attacks)
			switch {
			case uint64(1)<<to&promoRank != 0:
				pushPromotions(l, to, from)
			case uint64(1)<<to&ep != 0:
				l.Push(types.NewMove(to, from, types.MoveEnPassant))
			default:
				l.Push(types.NewMove(to, from, types.MoveNormal))
			}
		}
	}
}

func pushPawnMove(l *types.MoveList, to, from int, promotion bool) {
	if promotion {
		pushPromotions(l, to, from)
		return
	}
	l.Push(types.NewMove(to, from, types.MoveNormal))
}

func pushPromotions(l *types.MoveList, to, from int) {
	l.Push(types.NewPromotionMove(to, from, types.PromotionKnight))
	l.Push(types.NewPromotionMove(to, from, types.PromotionBishop))
	l.Push(types.NewPromotionMove(to, from, types.PromotionRook))
	l.Push(types.NewPromotionMove(to, from, types.PromotionQueen))
}

func genLeaperAndSliderMoves(p types.Position, l *types.MoveList) {
	white, black, occupancy := occupancyOf(p)
	var allies uint64
	if p.ActiveColor == types.ColorWhite {
		allies = white
	} else {
		allies = black
	}

	c := 6 * p.ActiveColor
	for piece := types.PieceWKnight + c; piece <= types.PieceWQueen+c; piece++ {
		pieces := p.Bitboards[piece]
		for pieces != 0 {
			from := popLSB(&pieces)

			var dests uint64
			switch piece {
			case types.PieceWKnight, types.PieceBKnight:
				dests = knightAttacks[from]
			case types.PieceWBishop, types.PieceBBishop:
				dests = BishopAttacks(from, occupancy)
			case types.PieceWRook, types.PieceBRook:
				dests = RookAttacks(from, occupancy)
			case types.PieceWQueen, types.PieceBQueen:
				dests = QueenAttacks(from, occupancy)
			}

			dests &^= allies
			for dests != 0 {
				l.Push(types.NewMove(popLSB(&dests), from, types.MoveNormal))
			}
		}
	}
}

func genKingMoves(p types.Position, l *types.MoveList) {
	white, black, occupancy := occupancyOf(p)
	var allies uint64
	if p.ActiveColor == types.ColorWhite {
		allies = white
	} else {
		allies = black
	}

	kingBB := p.Bitboards[types.PieceWKing+6*p.ActiveColor]
	king := BitScan(kingBB)

	// Exclude the king itself from occupancy so sliding attacks aren't
	// blocked by the square the king is about to vacate.
	attacked := attackedSquares(p.Bitboards, occupancy&^kingBB, 1^p.ActiveColor)

	dests := kingAttacks[king] &^ attacked &^ allies
	for dests != 0 {
		l.Push(types.NewMove(popLSB(&dests), king, types.MoveNormal))
	}

	genCastling(p, king, attacked, occupancy, l)
}

// attackedSquares returns every square attacked by color `by`.
func attackedSquares(bitboards [12]uint64, occupancy uint64, by types.Color) (attacks uint64) {
	for piece := types.PieceWBishop + 6*by; piece <= types.PieceWQueen+6*by; piece++ {
		bb := bitboards[piece]
		for bb != 0 {
			sq := popLSB(&bb)
			switch piece {
			case types.PieceWBishop, types.PieceBBishop:
				attacks |= BishopAttacks(sq, occupancy)
			case types.PieceWRook, types.PieceBRook:
				attacks |= RookAttacks(sq, occupancy)
			case types.PieceWQueen, types.PieceBQueen:
				attacks |= QueenAttacks(sq, occupancy)
			}
		}
	}
	attacks |= pawnAttackSet(bitboards[types.PieceWPawn+6*by], by)
	attacks |= knightAttackSet(bitboards[types.PieceWKnight+6*by])
	attacks |= kingAttackSet(bitboards[types.PieceWKing+6*by])
	return attacks
}

func genCastling(p types.Position, king int, attacked, occupancy uint64, l *types.MoveList) {
	if attacked&(uint64(1)<<king) != 0 {
		return // can't castle out of check
	}

	type candidate struct {
		flag types.CastlingRights
		dest int
		rook uint64
	}

	var candidates []candidate
	if p.ActiveColor == types.ColorWhite {
		candidates = []candidate{
			{types.CastlingWhiteShort, types.SG1, types.H1},
			{types.CastlingWhiteLong, types.SC1, types.A1},
		}
	} else {
		candidates = []candidate{
			{types.CastlingBlackShort, types.SG8, types.H8},
			{types.CastlingBlackLong, types.SC8, types.A8},
		}
	}

	rookPiece := types.PieceWRook + 6*p.ActiveColor
	for i, cand := range candidates {
		if p.CastlingRights&cand.flag == 0 {
			continue
		}
		if p.Bitboards[rookPiece]&cand.rook == 0 {
			continue
		}
		pathIdx := i
		if p.ActiveColor == types.ColorBlack {
			pathIdx += 2
		}
		if castlingEmptyPath[pathIdx]&occupancy != 0 {
			continue
		}
		if castlingKingPath[pathIdx]&attacked != 0 {
			continue
		}
		l.Push(types.NewMove(cand.dest, king, types.MoveCastling))
	}
}
