// Package movegen implements attack-table initialization and pseudo-legal
// move generation using magic bitboards.
//
// Call [InitAttackTables] once, as close as possible to process start,
// before generating any moves.
package movegen

import "github.com/fathomchess/zugzwang/types"

const (
	notAFile  uint64 = 0xFEFEFEFEFEFEFEFE
	notHFile  uint64 = 0x7F7F7F7F7F7F7F7F
	notABFile uint64 = 0xFCFCFCFCFCFCFCFC
	notGHFile uint64 = 0x3F3F3F3F3F3F3F3F
	not1Rank  uint64 = 0xFFFFFFFFFFFFFF00
	not8Rank  uint64 = 0x00FFFFFFFFFFFFFF
	rank1     uint64 = 0xFF
	rank2     uint64 = 0xFF00
	rank7     uint64 = 0xFF000000000000
	rank8     uint64 = 0xFF00000000000000
)

// bishopMagics and rookMagics are verified perfect-hash multipliers: for
// every square, (relevantOccupancy & mask) * magic >> (64-bits) produces a
// collision-free index into that square's attack table.
var bishopMagics = [64]uint64{
	0x11410121040100, 0x2084820928010, 0xa010208481080040, 0x214240082000610,
	0x4d104000400480, 0x1012010804408, 0x42044101452000c, 0x2844804050104880,
	0x814204290a0a00, 0x10280688224500, 0x1080410101010084, 0x10020a108408004,
	0x2482020210c80080, 0x480104a0040400, 0x411006404200810, 0x1024010908024292,
	0x1004401001011a, 0x810006081220080, 0x1040404206004100, 0x58080000820041ce,
	0x3406000422010890, 0x1a004100520210, 0x202a000048040400, 0x225004441180110,
	0x8064240102240, 0x1424200404010402, 0x1041100041024200, 0x8082002012008200,
	0x1010008104000, 0x8808004000806000, 0x380a000080c400, 0x31040100042d0101,
	0x110109008082220, 0x4010880204201, 0x4006462082100300, 0x4002010040140041,
	0x40090200250880, 0x2010100c40c08040, 0x12800ac01910104, 0x10b20051020100,
	0x210894104828c000, 0x50440220004800, 0x1002011044180800, 0x4220404010410204,
	0x1002204a2020401, 0x21021001000210, 0x4880081009402, 0xc208088c088e0040,
	0x4188464200080, 0x3810440618022200, 0xc020310401040420, 0x2000008208800e0,
	0x4c910240020, 0x425100a8602a0, 0x20c4206a0c030510, 0x4c10010801184000,
	0x200202020a026200, 0x6000004400841080, 0xc14004121082200, 0x400324804208800,
	0x1802200040504100, 0x1820000848488820, 0x8620682a908400, 0x8010600084204240,
}

var rookMagics = [64]uint64{
	0x2080008040002010, 0x40200010004000, 0x100090010200040, 0x2080080010000480,
	0x880040080080102, 0x8200106200042108, 0x410041000408b200, 0x100009a00402100,
	0x5800800020804000, 0x848404010002000, 0x101001820010041, 0x10a0040100420080,
	0x8a02002006001008, 0x926000844110200, 0x8000800200800100, 0x28060001008c2042,
	0x10818002204000, 0x10004020004001, 0x110002008002400, 0x11a020010082040,
	0x2001010008000410, 0x42010100080400, 0x4004040008020110, 0x820000840041,
	0x400080208000, 0x2080200040005000, 0x8000200080100080, 0x4400080180500080,
	0x4900080080040080, 0x4004004480020080, 0x8006000200040108, 0xc481000100006396,
	0x1000400080800020, 0x201004400040, 0x10008010802000, 0x204012000a00,
	0x800400800802, 0x284000200800480, 0x3000403000200, 0x840a6000514,
	0x4080c000228012, 0x10002000444010, 0x620001000808020, 0xc210010010009,
	0x100c001008010100, 0xc10020004008080, 0x20100802040001, 0x808008305420014,
	0xc010800840043080, 0x208401020890100, 0x10b0081020028280, 0x6087001001220900,
	0xc080011000500, 0x9810200040080, 0x2000010882100400, 0x2000050880540200,
	0x800020104200810a, 0x6220250242008016, 0x9180402202900a, 0x40210500100009,
	0x6000814102026, 0x410100080a040013, 0x10405008022d1184, 0x1000009400410822,
}

var bishopBits = [64]int{
	6, 5, 5, 5, 5, 5, 5, 6,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	6, 5, 5, 5, 5, 5, 5, 6,
}

var rookBits = [64]int{
	12, 11, 11, 11, 11, 11, 11, 12,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	12, 11, 11, 11, 11, 11, 11, 12,
}

// castlingEmptyPath holds, per flag (WhiteShort, WhiteLong, BlackShort,
// BlackLong), the squares between king and rook that must be empty for
// that castle to be pseudo-legal.
var castlingEmptyPath = [4]uint64{
	types.F1 | types.G1,
	types.B1 | types.C1 | types.D1,
	types.F8 | types.G8,
	types.B8 | types.C8 | types.D8,
}

// castlingKingPath holds the squares the king itself crosses (including
// its origin and destination), none of which may be attacked.
var castlingKingPath = [4]uint64{
	types.E1 | types.F1 | types.G1,
	types.E1 | types.D1 | types.C1,
	types.E8 | types.F8 | types.G8,
	types.E8 | types.D8 | types.C8,
}

var (
	pawnAttacks   [2][64]uint64
	knightAttacks [64]uint64
	kingAttacks   [64]uint64

	bishopMasks [64]uint64
	rookMasks   [64]uint64

	bishopAttackTable [64][512]uint64
	rookAttackTable   [64][4096]uint64

	tablesReady bool
)

// InitAttackTables builds the leaper and magic sliding-piece attack tables.
// Idempotent: safe to call more than once.
func InitAttackTables() {
	if tablesReady {
		return
	}

	for sq := range 64 {
		bb := uint64(1) << sq
		pawnAttacks[types.ColorWhite][sq] = pawnAttackSet(bb, types.ColorWhite)
		pawnAttacks[types.ColorBlack][sq] = pawnAttackSet(bb, types.ColorBlack)
		knightAttacks[sq] = knightAttackSet(bb)
		kingAttacks[sq] = kingAttackSet(bb)
	}

	initRelevantOccupancy(&bishopMasks, true)
	initRelevantOccupancy(&rookMasks, false)

	for sq := range 64 {
		bits := bishopBits[sq]
		for i := range 1 << bits {
			occ := occupancyFromIndex(i, bits, bishopMasks[sq])
			key := occ * bishopMagics[sq] >> (64 - bits)
			bishopAttackTable[sq][key] = slidingAttacksRay(sq, occ, bishopDirs)
		}

		bits = rookBits[sq]
		for i := range 1 << bits {
			occ := occupancyFromIndex(i, bits, rookMasks[sq])
			key := occ * rookMagics[sq] >> (64 - bits)
			rookAttackTable[sq][key] = slidingAttacksRay(sq, occ, rookDirs)
		}
	}

	tablesReady = true
}

// occupancyFromIndex enumerates the index-th subset of the relevant
// occupancy mask, used to populate every blocker combination during
// attack-table initialization.
func occupancyFromIndex(index, relevantBits int, mask uint64) (occupancy uint64) {
	m := mask
	for i := range relevantBits {
		square := popLSB(&m)
		if index&(1<<i) != 0 {
			occupancy |= uint64(1) << square
		}
	}
	return occupancy
}

func initRelevantOccupancy(dst *[64]uint64, bishop bool) {
	dirs := rookDirs
	if bishop {
		dirs = bishopDirs
	}
	for sq := range 64 {
		var mask uint64
		for _, d := range dirs {
			r, f := rank(sq), file(sq)
			for {
				nr, nf := r+d.dr, f+d.df
				// Relevant occupancy excludes the board edge along each
				// axis the ray actually travels on: a blocker on the
				// final edge square never changes the attack set.
				if d.dr != 0 && (nr < 1 || nr > 6) {
					break
				}
				if d.df != 0 && (nf < 1 || nf > 6) {
					break
				}
				r, f = nr, nf
				mask |= uint64(1) << (r*8 + f)
			}
		}
		dst[sq] = mask
	}
}

type direction struct{ dr, df int }

var bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func rank(sq int) int { return sq / 8 }
func file(sq int) int { return sq % 8 }

// slidingAttacksRay walks each direction from sq until it falls off the
// board or hits an occupied square (inclusive of that blocker).
func slidingAttacksRay(sq int, occupancy uint64, dirs []direction) (attacks uint64) {
	for _, d := range dirs {
		r, f := rank(sq), file(sq)
		for {
			r, f = r+d.dr, f+d.df
			if r < 0 || r > 7 || f < 0 || f > 7 {
				break
			}
			s := r*8 + f
			attacks |= uint64(1) << s
			if occupancy&(uint64(1)<<s) != 0 {
				break
			}
		}
	}
	return attacks
}

func popLSB(bb *uint64) int {
	sq := BitScan(*bb)
	*bb &= *bb - 1
	return sq
}
