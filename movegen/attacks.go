package movegen

import (
	"github.com/fathomchess/zugzwang/bitutil"
	"github.com/fathomchess/zugzwang/types"
)

// BitScan returns the index of the least significant set bit. Exported so
// board and search can walk bitboards without importing bitutil directly
// for every call site that already holds a movegen import.
func BitScan(bitboard uint64) int { return bitutil.BitScan(bitboard) }

// pawnAttackSet returns the squares attacked by every pawn in bitboard, for
// the given color. Safe to call with multiple pawns set at once.
func pawnAttackSet(bitboard uint64, color types.Color) uint64 {
	if color == types.ColorWhite {
		return (bitboard & notAFile << 7) | (bitboard & notHFile << 9)
	}
	return (bitboard & notAFile >> 9) | (bitboard & notHFile >> 7)
}

func knightAttackSet(bitboard uint64) uint64 {
	return (bitboard & notAFile >> 17) |
		(bitboard & notHFile >> 15) |
		(bitboard & notABFile >> 10) |
		(bitboard & notGHFile >> 6) |
		(bitboard & notABFile << 6) |
		(bitboard & notGHFile << 10) |
		(bitboard & notAFile << 15) |
		(bitboard & notHFile << 17)
}

func kingAttackSet(bitboard uint64) uint64 {
	return (bitboard & notAFile >> 9) |
		(bitboard >> 8) |
		(bitboard & notHFile >> 7) |
		(bitboard & notAFile >> 1) |
		(bitboard & notHFile << 1) |
		(bitboard & notAFile << 7) |
		(bitboard << 8) |
		(bitboard & notHFile << 9)
}

// PawnAttacksBitboard returns the squares attacked by every pawn set in
// bitboard, for the given color. Unlike [PawnAttacks] this works on a
// multi-pawn bitboard at once, for evaluation terms that need the full
// attack set rather than one square's worth.
func PawnAttacksBitboard(bitboard uint64, color types.Color) uint64 {
	return pawnAttackSet(bitboard, color)
}

// PawnAttacks returns the precomputed attack set of a single pawn on sq.
func PawnAttacks(sq int, color types.Color) uint64 { return pawnAttacks[color][sq] }

// KnightAttacks returns the precomputed attack set of a single knight on sq.
func KnightAttacks(sq int) uint64 { return knightAttacks[sq] }

// KingAttacks returns the precomputed attack set of a single king on sq.
func KingAttacks(sq int) uint64 { return kingAttacks[sq] }

// BishopAttacks returns the attack set of a bishop on sq given the full
// board occupancy, via the magic-bitboard lookup table.
func BishopAttacks(sq int, occupancy uint64) uint64 {
	occ := occupancy & bishopMasks[sq]
	occ *= bishopMagics[sq]
	occ >>= 64 - bishopBits[sq]
	return bishopAttackTable[sq][occ]
}

// RookAttacks returns the attack set of a rook on sq given the full board
// occupancy, via the magic-bitboard lookup table.
func RookAttacks(sq int, occupancy uint64) uint64 {
	occ := occupancy & rookMasks[sq]
	occ *= rookMagics[sq]
	occ >>= 64 - rookBits[sq]
	return rookAttackTable[sq][occ]
}

// QueenAttacks is the union of a bishop's and a rook's attacks from sq.
func QueenAttacks(sq int, occupancy uint64) uint64 {
	return BishopAttacks(sq, occupancy) | RookAttacks(sq, occupancy)
}

// AttackersTo returns the bitboard of every piece of color `by` that
// attacks square sq, given the board's current occupancy. Used both for
// in-check/king-safety tests and, with mutated occupancy, by search's
// static exchange evaluation.
func AttackersTo(bitboards [12]uint64, occupancy uint64, sq int, by types.Color) uint64 {
	var attackers uint64

	pawnPiece := types.PieceWPawn + 6*by
	// A pawn of color `by` attacks sq if sq is among the squares attacked
	// by a pawn of the opposite color standing on sq (attack sets are
	// symmetric under color inversion for this purpose).
	attackers |= pawnAttacks[1^by][sq] & bitboards[pawnPiece]
	attackers |= knightAttacks[sq] & bitboards[types.PieceWKnight+6*by]
	attackers |= kingAttacks[sq] & bitboards[types.PieceWKing+6*by]
	attackers |= BishopAttacks(sq, occupancy) & (bitboards[types.PieceWBishop+6*by] | bitboards[types.PieceWQueen+6*by])
	attackers |= RookAttacks(sq, occupancy) & (bitboards[types.PieceWRook+6*by] | bitboards[types.PieceWQueen+6*by])

	return attackers
}

// IsSquareAttacked reports whether any piece of color `by` attacks sq.
func IsSquareAttacked(bitboards [12]uint64, occupancy uint64, sq int, by types.Color) bool {
	return AttackersTo(bitboards, occupancy, sq, by) != 0
}
