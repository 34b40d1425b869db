package search

import (
	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/types"
)

// seeValues holds fixed piece values for the exchange evaluation, separate
// from eval's tapered material tables since SEE only cares about a rough
// ordering of who wins a capture sequence, not positional score.
var seeValues = [6]int{100, 320, 330, 500, 900, 20000}

func pieceValue(p types.Piece) int {
	if p == types.PieceNone {
		return 0
	}
	return seeValues[p%6]
}

func colorOf(p types.Piece) types.Color {
	if p >= types.PieceBPawn {
		return types.ColorBlack
	}
	return types.ColorWhite
}

// See runs the standard swap algorithm for the capture (or en passant) m on
// b, returning the net material gain for the side that moves m if both
// sides always recapture on m.To() with their least valuable attacker.
// https://www.chessprogramming.org/Static_Exchange_Evaluation
func See(b *board.Board, m types.Move) int {
	from, to := m.From(), m.To()
	fromBB, toBB := uint64(1)<<from, uint64(1)<<to

	attacker := b.PieceAt(from)
	var captured types.Piece

	bitboards := b.Bitboards
	occ := b.AllOcc

	if m.Type() == types.MoveEnPassant {
		if attacker == types.PieceWPawn {
			captured = types.PieceBPawn
			capSq := uint64(1) << (to - 8)
			bitboards[captured] &^= capSq
			occ &^= capSq
		} else {
			captured = types.PieceWPawn
			capSq := uint64(1) << (to + 8)
			bitboards[captured] &^= capSq
			occ &^= capSq
		}
	} else {
		captured = b.PieceAt(to)
	}

	var gain [32]int
	depth := 0
	gain[0] = pieceValue(captured)

	occ &^= fromBB
	occ |= toBB
	bitboards[attacker] &^= fromBB

	side := 1 ^ colorOf(attacker)
	attackerValue := pieceValue(attacker)

	for {
		depth++
		gain[depth] = attackerValue - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attackers := movegen.AttackersTo(bitboards, occ, to, side)
		if attackers == 0 {
			break
		}

		sq, piece, ok := leastValuableAttacker(bitboards, attackers, side)
		if !ok {
			break
		}

		attackerValue = pieceValue(piece)
		mask := uint64(1) << sq
		occ &^= mask
		bitboards[piece] &^= mask
		side ^= 1
	}

	// gain[depth] is speculative: it assumes a recapture that never
	// happened, so backpropagation starts one entry below it.
	for depth--; depth > 0; depth-- {
		if -gain[depth] < gain[depth-1] {
			gain[depth-1] = -gain[depth]
		}
	}

	return gain[0]
}

func leastValuableAttacker(bitboards [12]uint64, attackers uint64, side types.Color) (int, types.Piece, bool) {
	base := side * 6
	for offset := 0; offset < 6; offset++ {
		piece := base + offset
		if bb := attackers & bitboards[piece]; bb != 0 {
			return movegen.BitScan(bb), piece, true
		}
	}
	return 0, types.PieceNone, false
}
