// Package fen implements conversions between Forsyth-Edwards Notation
// strings and [types.Position] values.
//
// [TryParse] validates its input and returns an error instead of panicking,
// since the UCI loop must not crash the engine process on a malformed GUI
// command. [Parse] panics on malformed input and is for trusted callers;
// [Serialize] returns no error.
package fen

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/fathomchess/zugzwang/types"
)

// InitialPosition is the standard starting FEN string.
const InitialPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ToBitboardArray converts the first field of a FEN string into an array of
// piece bitboards.
func ToBitboardArray(piecePlacementData string) [12]uint64 {
	var bitboards [12]uint64
	squareIndex := 56

	for i := 0; i < len(piecePlacementData); i++ {
		char := piecePlacementData[i]

		switch {
		case char == '/':
			squareIndex -= 16
		case char >= '1' && char <= '8':
			squareIndex += int(char - '0')
		default:
			bitboards[pieceFromSymbol(char)] |= 1 << squareIndex
			squareIndex++
		}
	}

	return bitboards
}

func pieceFromSymbol(char byte) types.Piece {
	switch char {
	case 'N':
		return types.PieceWKnight
	case 'B':
		return types.PieceWBishop
	case 'R':
		return types.PieceWRook
	case 'Q':
		return types.PieceWQueen
	case 'K':
		return types.PieceWKing
	case 'p':
		return types.PieceBPawn
	case 'n':
		return types.PieceBKnight
	case 'b':
		return types.PieceBBishop
	case 'r':
		return types.PieceBRook
	case 'q':
		return types.PieceBQueen
	case 'k':
		return types.PieceBKing
	default: // 'P'
		return types.PieceWPawn
	}
}

var pieceSymbols = [12]byte{
	'P', 'N', 'B', 'R', 'Q', 'K',
	'p', 'n', 'b', 'r', 'q', 'k',
}

// FromBitboardArray converts an array of piece bitboards into the first
// field of a FEN string.
func FromBitboardArray(bitboards [12]uint64) string {
	var placement strings.Builder
	placement.Grow(20)

	var board [8][8]byte
	for pieceType, bitboard := range bitboards {
		for ; bitboard > 0; bitboard &= bitboard - 1 {
			square := bits.TrailingZeros64(bitboard)
			board[square/8][square%8] = pieceSymbols[pieceType]
		}
	}

	for rank := 7; rank >= 0; rank-- {
		var empty byte
		for file := 0; file < 8; file++ {
			char := board[rank][file]
			if char == 0 {
				empty++
				continue
			}
			if empty > 0 {
				placement.WriteByte('0' + empty)
				empty = 0
			}
			placement.WriteByte(char)
		}
		if empty > 0 {
			placement.WriteByte('0' + empty)
		}
		if rank != 0 {
			placement.WriteByte('/')
		}
	}

	return placement.String()
}

func squareFromString(str string) (int, error) {
	if str == "-" {
		return types.NoSquare, nil
	}
	if len(str) != 2 || str[0] < 'a' || str[0] > 'h' || str[1] < '1' || str[1] > '8' {
		return types.NoSquare, fmt.Errorf("fen: invalid square %q", str)
	}
	return int(str[0]-'a') + int(str[1]-'1')*8, nil
}

func squareToString(square int) string {
	files := "abcdefgh"
	return string([]byte{files[square%8], '0' + byte(square/8+1)})
}

// Parse parses a full six-field FEN string into a [types.Position].
func Parse(fenStr string) types.Position {
	p, err := TryParse(fenStr)
	if err != nil {
		panic(err)
	}
	return p
}

// TryParse parses a full six-field FEN string into a [types.Position],
// returning an error instead of panicking on malformed input.
func TryParse(fenStr string) (types.Position, error) {
	fields := strings.Fields(fenStr)
	if len(fields) != 6 {
		return types.Position{}, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	var p types.Position
	p.Bitboards = ToBitboardArray(fields[0])

	switch fields[1] {
	case "w":
		p.ActiveColor = types.ColorWhite
	case "b":
		p.ActiveColor = types.ColorBlack
	default:
		return types.Position{}, fmt.Errorf("fen: invalid active color %q", fields[1])
	}

	for i := 0; i < len(fields[2]); i++ {
		switch fields[2][i] {
		case 'K':
			p.CastlingRights |= types.CastlingWhiteShort
		case 'Q':
			p.CastlingRights |= types.CastlingWhiteLong
		case 'k':
			p.CastlingRights |= types.CastlingBlackShort
		case 'q':
			p.CastlingRights |= types.CastlingBlackLong
		case '-':
		default:
			return types.Position{}, fmt.Errorf("fen: invalid castling field %q", fields[2])
		}
	}

	ep, err := squareFromString(fields[3])
	if err != nil {
		return types.Position{}, err
	}
	p.EPTarget = ep

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		return types.Position{}, fmt.Errorf("fen: invalid halfmove counter: %w", err)
	}
	p.HalfmoveCnt = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil {
		return types.Position{}, fmt.Errorf("fen: invalid fullmove counter: %w", err)
	}
	p.FullmoveCnt = fullmove

	return p, nil
}

// Serialize converts a position into its six-field FEN string.
func Serialize(p types.Position) string {
	var sb strings.Builder
	sb.Grow(64)

	sb.WriteString(FromBitboardArray(p.Bitboards))
	sb.WriteByte(' ')
	if p.ActiveColor == types.ColorWhite {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	before := sb.Len()
	if p.CastlingRights&types.CastlingWhiteShort != 0 {
		sb.WriteByte('K')
	}
	if p.CastlingRights&types.CastlingWhiteLong != 0 {
		sb.WriteByte('Q')
	}
	if p.CastlingRights&types.CastlingBlackShort != 0 {
		sb.WriteByte('k')
	}
	if p.CastlingRights&types.CastlingBlackLong != 0 {
		sb.WriteByte('q')
	}
	if sb.Len() == before {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	if p.EPTarget == types.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(squareToString(p.EPTarget))
	}
	sb.WriteByte(' ')

	sb.WriteString(strconv.Itoa(p.HalfmoveCnt))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveCnt))

	return sb.String()
}
