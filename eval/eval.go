// Package eval implements tapered middlegame/endgame position evaluation:
// PeSTO-style material and piece-square tables blended by game phase, plus
// a handful of positional terms (bishop pair, pawn structure, rook files,
// king safety, pawn threats, hanging pieces, pins).
package eval

import (
	"math/bits"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/types"
)

// Tempo is added for the side to move.
const Tempo = 10

const fileA = 0x0101010101010101

func fileMask(f int) uint64 { return fileA << uint(f) }

func adjacentFiles(f int) uint64 {
	var m uint64
	if f > 0 {
		m |= fileMask(f - 1)
	}
	if f < 7 {
		m |= fileMask(f + 1)
	}
	return m
}

// Evaluate scores b from the perspective of the side to move: positive
// means the mover is better.
func Evaluate(b *board.Board) int {
	score := evaluateWhite(b) + Tempo
	if b.ActiveColor == types.ColorBlack {
		score = -evaluateWhite(b) + Tempo
	}
	return score
}

func evaluateWhite(b *board.Board) int {
	var mg, eg, phase int

	for piece, bb := range b.Bitboards {
		kind := piece % 6
		isWhite := piece <= types.PieceWKing
		bitboard := bb
		for bitboard != 0 {
			square := bits.TrailingZeros64(bitboard)
			bitboard &= bitboard - 1

			sq := square
			if !isWhite {
				sq = mirror(square)
			}

			m := materialMG[kind] + mgPST[kind][sq]
			e := materialEG[kind] + egPST[kind][sq]
			if isWhite {
				mg += m
				eg += e
			} else {
				mg -= m
				eg -= e
			}
			phase += phaseWeight[kind]
		}
	}

	if phase > 24 {
		phase = 24
	}

	bpMG, bpEG := bishopPair(b)
	mg += bpMG
	eg += bpEG

	psMG, psEG := pawnStructure(b)
	mg += psMG
	eg += psEG

	rfMG, rfEG := rookFiles(b)
	mg += rfMG
	eg += rfEG

	ksMG, ksEG := kingShield(b)
	mg += ksMG
	eg += ksEG

	ptMG, ptEG := pawnThreats(b)
	mg += ptMG
	eg += ptEG

	hanging := hangingPieces(b)
	mg += hanging
	eg += hanging

	pin := pins(b)
	mg += pin
	eg += pin

	return (mg*phase + eg*(24-phase)) / 24
}

func bishopPair(b *board.Board) (mg, eg int) {
	if bits.OnesCount64(b.Bitboards[types.PieceWBishop]) >= 2 {
		mg += 30
		eg += 50
	}
	if bits.OnesCount64(b.Bitboards[types.PieceBBishop]) >= 2 {
		mg -= 30
		eg -= 50
	}
	return mg, eg
}

func pawnStructure(b *board.Board) (mg, eg int) {
	wmg, weg := pawnStructureFor(b.Bitboards[types.PieceWPawn], b.Bitboards[types.PieceBPawn], types.ColorWhite)
	bmg, beg := pawnStructureFor(b.Bitboards[types.PieceBPawn], b.Bitboards[types.PieceWPawn], types.ColorBlack)
	return wmg - bmg, weg - beg
}

func pawnStructureFor(own, enemy uint64, color types.Color) (mg, eg int) {
	for f := 0; f < 8; f++ {
		fileCount := bits.OnesCount64(own & fileMask(f))
		if fileCount > 1 {
			mg -= 10 * (fileCount - 1) // doubled
			eg -= 20 * (fileCount - 1)
		}
		if fileCount > 0 && own&adjacentFiles(f) == 0 {
			mg -= 15 // isolated
			eg -= 25
		}
	}

	bb := own
	for bb != 0 {
		square := bits.TrailingZeros64(bb)
		bb &= bb - 1
		if isPassed(square, own, enemy, color) {
			rank := square / 8
			if color == types.ColorBlack {
				rank = 7 - rank
			}
			bonus := 10 + rank*rank
			mg += bonus
			eg += bonus
		}
	}
	return mg, eg
}

func isPassed(square int, own, enemy uint64, color types.Color) bool {
	f := square % 8
	front := adjacentFiles(f) | fileMask(f)

	var mask uint64
	if color == types.ColorWhite {
		for r := square/8 + 1; r < 8; r++ {
			mask |= front & (uint64(0xFF) << (r * 8))
		}
	} else {
		for r := square/8 - 1; r >= 0; r-- {
			mask |= front & (uint64(0xFF) << (r * 8))
		}
	}
	return enemy&mask == 0
}

func rookFiles(b *board.Board) (mg, eg int) {
	allPawns := b.Bitboards[types.PieceWPawn] | b.Bitboards[types.PieceBPawn]

	rooks := b.Bitboards[types.PieceWRook]
	for rooks != 0 {
		square := bits.TrailingZeros64(rooks)
		rooks &= rooks - 1
		bonus := rookFileBonus(square, allPawns, b.Bitboards[types.PieceWPawn])
		mg += bonus
		eg += bonus
	}

	rooks = b.Bitboards[types.PieceBRook]
	for rooks != 0 {
		square := bits.TrailingZeros64(rooks)
		rooks &= rooks - 1
		bonus := rookFileBonus(square, allPawns, b.Bitboards[types.PieceBPawn])
		mg -= bonus
		eg -= bonus
	}

	return mg, eg
}

func rookFileBonus(square int, allPawns, ownPawns uint64) int {
	f := fileMask(square % 8)
	if allPawns&f == 0 {
		return 20 // fully open
	}
	if ownPawns&f == 0 {
		return 10 // semi-open
	}
	return 0
}

func kingShield(b *board.Board) (mg, eg int) {
	penalty := kingShieldFor(b.KingSquare(types.ColorWhite), b.Bitboards[types.PieceWPawn], types.ColorWhite) -
		kingShieldFor(b.KingSquare(types.ColorBlack), b.Bitboards[types.PieceBPawn], types.ColorBlack)
	return penalty, penalty
}

// kingShieldFor only evaluates a pawn shield when the king sits on its own
// back rank, matching the spec's deliberately narrow king-safety scope (no
// open-file or attacker-count heuristics). The shield is scored as a
// penalty for missing pawns, not a bonus for present ones. A king that has
// left its back rank is not scored at all.
func kingShieldFor(king int, ownPawns uint64, color types.Color) int {
	rank := king / 8
	if color == types.ColorWhite && rank != 0 {
		return 0
	}
	if color == types.ColorBlack && rank != 7 {
		return 0
	}

	shieldRank := 1
	if color == types.ColorBlack {
		shieldRank = 6
	}

	f := king % 8
	shieldCount := 0
	for _, df := range []int{-1, 0, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		if ownPawns&(uint64(1)<<(shieldRank*8+nf)) != 0 {
			shieldCount++
		}
	}
	return -20 * (3 - shieldCount)
}

func pawnThreats(b *board.Board) (mg, eg int) {
	whiteAttacks := movegen.PawnAttacksBitboard(b.Bitboards[types.PieceWPawn], types.ColorWhite)
	blackAttacks := movegen.PawnAttacksBitboard(b.Bitboards[types.PieceBPawn], types.ColorBlack)

	threatMG := [6]int{0, 15, 20, 30, 40, 0}
	threatEG := [6]int{0, 10, 15, 25, 35, 0}

	for piece := types.PieceBKnight; piece <= types.PieceBQueen; piece++ {
		kind := piece % 6
		if count := bits.OnesCount64(whiteAttacks & b.Bitboards[piece]); count > 0 {
			mg += threatMG[kind] * count
			eg += threatEG[kind] * count
		}
	}
	for piece := types.PieceWKnight; piece <= types.PieceWQueen; piece++ {
		kind := piece % 6
		if count := bits.OnesCount64(blackAttacks & b.Bitboards[piece]); count > 0 {
			mg -= threatMG[kind] * count
			eg -= threatEG[kind] * count
		}
	}
	return mg, eg
}

var hangingPenalty = [6]int{0, 50, 60, 85, 120, 0}

func hangingPieces(b *board.Board) int {
	score := 0
	for piece, bb := range b.Bitboards {
		if piece == types.PieceWPawn || piece == types.PieceBPawn ||
			piece == types.PieceWKing || piece == types.PieceBKing {
			continue
		}
		isWhite := piece <= types.PieceWKing
		enemy := types.ColorBlack
		if !isWhite {
			enemy = types.ColorWhite
		}
		bitboard := bb
		for bitboard != 0 {
			square := bits.TrailingZeros64(bitboard)
			bitboard &= bitboard - 1
			attackers := b.AttackersTo(square, enemy)
			defenders := b.AttackersTo(square, 1^enemy)
			if attackers != 0 && defenders == 0 {
				penalty := hangingPenalty[piece%6]
				if isWhite {
					score -= penalty
				} else {
					score += penalty
				}
			}
		}
	}
	return score
}

// pins scores, for each side, every friendly non-king piece whose removal
// would expose its own king to a sliding attacker along the vacated ray.
func pins(b *board.Board) int {
	return pinsFor(b, types.ColorBlack) - pinsFor(b, types.ColorWhite)
}

func pinsFor(b *board.Board, color types.Color) int {
	kingSq := b.KingSquare(color)
	enemy := 1 ^ color

	first, last := pieceRange(color)

	bitboards := b.Bitboards
	occ := b.AllOcc

	penalty := 0
	for piece := first; piece <= last; piece++ {
		if piece == types.PieceWKing || piece == types.PieceBKing {
			continue
		}

		bb := bitboards[piece]
		for bb != 0 {
			square := bits.TrailingZeros64(bb)
			bb &= bb - 1

			mask := uint64(1) << uint(square)
			bitboards[piece] &^= mask
			occ &^= mask

			attackers := movegen.AttackersTo(bitboards, occ, kingSq, enemy)
			if hasSlidingAttacker(bitboards, attackers, enemy) {
				penalty += 25
			}

			bitboards[piece] |= mask
			occ |= mask
		}
	}
	return penalty
}

func pieceRange(color types.Color) (first, last types.Piece) {
	if color == types.ColorWhite {
		return types.PieceWPawn, types.PieceWKing
	}
	return types.PieceBPawn, types.PieceBKing
}

func hasSlidingAttacker(bitboards [12]uint64, attackers uint64, by types.Color) bool {
	sliders := bitboards[types.PieceWBishop] | bitboards[types.PieceWRook] | bitboards[types.PieceWQueen]
	if by == types.ColorBlack {
		sliders = bitboards[types.PieceBBishop] | bitboards[types.PieceBRook] | bitboards[types.PieceBQueen]
	}
	return attackers&sliders != 0
}
