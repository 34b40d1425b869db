// Package perft implements performance/correctness testing for move
// generation: walking the legal-move tree to a fixed depth and counting
// leaf nodes, optionally broken down per root move ("divide").
//
// See https://www.chessprogramming.org/Perft_Results
package perft

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/notation"
	"github.com/fathomchess/zugzwang/types"
)

// Count walks the legal-move tree rooted at b to depth plies and returns
// the number of leaf nodes reached.
func Count(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var moves types.MoveList
	b.GenLegalMoves(&moves)

	if depth == 1 {
		return uint64(moves.LastMoveIndex)
	}

	var nodes uint64
	for i := range moves.LastMoveIndex {
		u := b.MakeUnchecked(moves.Moves[i])
		nodes += Count(b, depth-1)
		b.Unmake(u)
	}
	return nodes
}

// DivideEntry is one root move's perft subtree count, as reported by
// [Divide].
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide runs perft one ply at a time from the root, reporting the node
// count contributed by each individual root move. Used to bisect which
// root move's subtree disagrees with a known-correct engine.
func Divide(b *board.Board, depth int) []DivideEntry {
	var moves types.MoveList
	b.GenLegalMoves(&moves)

	entries := make([]DivideEntry, 0, moves.LastMoveIndex)
	for i := range moves.LastMoveIndex {
		m := moves.Moves[i]
		u := b.MakeUnchecked(m)
		entries = append(entries, DivideEntry{
			Move:  notation.FormatUCI(m),
			Nodes: Count(b, depth-1),
		})
		b.Unmake(u)
	}
	return entries
}

// Case is one line of a perft test suite: a FEN position paired with the
// expected leaf count at a given depth.
type Case struct {
	FEN   string
	Depth int
	Want  uint64
}

// ReadCases parses a perft suite file, one case per line in the format
// "FEN; D<depth> <expected>", e.g.:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1; D4 197281
//
// Blank lines and lines starting with '#' are skipped.
func ReadCases(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fenPart, depthPart, ok := strings.Cut(line, ";")
		if !ok {
			return nil, fmt.Errorf("perft: malformed line %q: missing ';'", line)
		}

		fields := strings.Fields(strings.TrimSpace(depthPart))
		if len(fields) != 2 || len(fields[0]) < 2 || fields[0][0] != 'D' {
			return nil, fmt.Errorf("perft: malformed line %q: expected \"D<depth> <count>\"", line)
		}

		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil {
			return nil, fmt.Errorf("perft: invalid depth in %q: %w", line, err)
		}
		want, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("perft: invalid node count in %q: %w", line, err)
		}

		cases = append(cases, Case{
			FEN:   strings.TrimSpace(fenPart),
			Depth: depth,
			Want:  want,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}
