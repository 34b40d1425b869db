// Package zobrist implements Zobrist hashing of chess positions.
//
// Keys are generated once at process start and used both to build a hash
// from scratch (used by tests and by FEN loading) and to maintain the hash
// incrementally as moves are made and unmade on a [github.com/fathomchess/zugzwang/board.Board].
package zobrist

import (
	"math/bits"
	"math/rand/v2"

	"github.com/fathomchess/zugzwang/types"
)

var (
	// PieceKeys holds one key per piece type per square.
	PieceKeys [12][64]uint64
	// EPKeys holds one key per en passant target file-aware square.
	EPKeys [64]uint64
	// CastlingKeys holds one key per castling rights nibble value (0-15).
	CastlingKeys [16]uint64
	// ColorKey is XORed in whenever black is the active color.
	ColorKey uint64

	initialized bool
)

// Init generates the process-wide Zobrist key tables. Safe to call more
// than once; later calls are no-ops so packages that import zobrist for its
// side effects (e.g. during tests) don't regenerate keys mid-search.
func Init() {
	if initialized {
		return
	}
	for piece := range PieceKeys {
		for square := range PieceKeys[piece] {
			PieceKeys[piece][square] = rand.Uint64()
		}
	}
	for square := range EPKeys {
		EPKeys[square] = rand.Uint64()
	}
	for i := range CastlingKeys {
		CastlingKeys[i] = rand.Uint64()
	}
	ColorKey = rand.Uint64()
	initialized = true
}

// Hash computes the Zobrist hash of a position from scratch. Used to seed a
// freshly loaded position and to cross-check the incremental hash
// maintained by board.Board during make/unmake (see property P4).
func Hash(p types.Position) uint64 {
	var h uint64

	for piece, bitboard := range p.Bitboards {
		bb := bitboard
		for bb != 0 {
			square := bits.TrailingZeros64(bb)
			h ^= PieceKeys[piece][square]
			bb &= bb - 1
		}
	}

	h ^= CastlingKeys[p.CastlingRights]

	if p.EPTarget != types.NoSquare {
		h ^= EPKeys[p.EPTarget]
	}

	if p.ActiveColor == types.ColorBlack {
		h ^= ColorKey
	}

	return h
}
