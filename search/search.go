// Package search implements iterative-deepening negamax over a [board.Board]:
// alpha-beta pruning backed by a shared transposition table, a one-ply
// check extension, quiescence search on the capture horizon, late move
// reductions, killer moves, the history heuristic, and static exchange
// evaluation for move ordering and quiescence pruning.
package search

import (
	"context"
	"sort"
	"time"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/eval"
	"github.com/fathomchess/zugzwang/tt"
	"github.com/fathomchess/zugzwang/types"
)

const (
	// Infinity bounds the negamax window; kept well clear of Mate so mate
	// scores never overflow it at the deepest searched ply.
	Infinity = 30000
	// Mate is the score assigned to a checkmate found at ply 0. A mate
	// found deeper is reported as Mate-ply so shallower mates always
	// outscore deeper ones.
	Mate = 29000
	// MateThreshold marks the boundary above which a score should be
	// read as "mate in N" rather than a material/positional evaluation.
	MateThreshold = Mate - MaxPly
	// MaxPly bounds recursion depth and the killer-move table.
	MaxPly = 64
)

// Limits bounds one call to [Searcher.Search]. A zero value searches until
// ctx is cancelled or the engine finds a mate.
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
}

// Result is the outcome of completing (or being interrupted after) one or
// more iterative-deepening iterations.
type Result struct {
	BestMove types.Move
	Score    int
	Depth    int
	Nodes    uint64
	PV       []types.Move
}

// Searcher holds the state that persists across the plies of a single
// search call: killer moves, the history table, and node/time bookkeeping.
// It is not safe for concurrent use by more than one goroutine at a time.
type Searcher struct {
	tt *tt.Table

	killers [MaxPly][2]types.Move
	history [12][64]int

	nodes    uint64
	nodeCap  uint64
	deadline time.Time
	stopped  bool
}

// New creates a Searcher backed by table, which the caller owns. Search
// never clears the table itself; the UCI engine clears it before each "go".
func New(table *tt.Table) *Searcher {
	return &Searcher{tt: table}
}

// Search runs iterative deepening from depth 1 up to limits.Depth (or
// [MaxPly] if unset), returning the result of the deepest completed
// iteration. An interrupted iteration past depth 1 is discarded; if depth 1
// itself is interrupted, the result is the table's move for the root or,
// failing that, the first legal move. It stops early when ctx is
// cancelled, when limits.MoveTime elapses, or when limits.Nodes is reached.
func (s *Searcher) Search(ctx context.Context, b *board.Board, limits Limits) Result {
	s.nodes = 0
	s.nodeCap = limits.Nodes
	s.stopped = false
	s.killers = [MaxPly][2]types.Move{}
	s.history = [12][64]int{}

	if limits.MoveTime > 0 {
		s.deadline = time.Now().Add(limits.MoveTime)
	} else {
		s.deadline = time.Time{}
	}
	s.checkStop(ctx)

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	var result Result
	var rootMoves types.MoveList
	b.GenLegalMoves(&rootMoves)
	if rootMoves.LastMoveIndex > 0 {
		fallback := rootMoves.Moves[0]
		if entry, ok := s.tt.Probe(b.Hash); ok {
			fallback = types.Move(entry.Move)
		}
		result.BestMove = fallback
	}

	for depth := 1; depth <= maxDepth; depth++ {
		score := s.negamax(ctx, b, depth, -Infinity, Infinity, 0)
		if s.stopped && depth > 1 {
			break
		}

		if entry, ok := s.tt.Probe(b.Hash); ok {
			result = Result{
				BestMove: types.Move(entry.Move),
				Score:    score,
				Depth:    depth,
				Nodes:    s.nodes,
				PV:       s.extractPV(b, depth),
			}
		}

		select {
		case <-ctx.Done():
			s.stopped = true
		default:
		}
		if s.stopped {
			break
		}
		if score > MateThreshold || score < -MateThreshold {
			break
		}
	}
	return result
}

func (s *Searcher) outOfTime() bool {
	if s.nodeCap != 0 && s.nodes >= s.nodeCap {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// checkStop latches s.stopped once the node/deadline budget is spent or ctx
// is cancelled. It's called every 1024 nodes from both negamax and
// quiescence so a "stop" or deadline is noticed within bounded nodes
// instead of only between iterative-deepening depths.
func (s *Searcher) checkStop(ctx context.Context) {
	if s.outOfTime() {
		s.stopped = true
		return
	}
	select {
	case <-ctx.Done():
		s.stopped = true
	default:
	}
}

func (s *Searcher) negamax(ctx context.Context, b *board.Board, depth, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes&1023 == 0 {
		s.checkStop(ctx)
	}
	if s.stopped {
		return 0
	}
	if ply > 0 && b.HalfmoveCnt >= 100 {
		return 0
	}

	pvNode := beta-alpha > 1
	alphaOrig := alpha
	hash := b.Hash

	var ttMove types.Move
	if entry, ok := s.tt.Probe(hash); ok {
		ttMove = types.Move(entry.Move)
		if entry.Depth >= depth && !pvNode {
			switch entry.Flag {
			case tt.Exact:
				return entry.Score
			case tt.LowerBound:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case tt.UpperBound:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ctx, b, alpha, beta, ply)
	}

	var moves types.MoveList
	b.GenLegalMoves(&moves)
	if moves.LastMoveIndex == 0 {
		if b.InCheck(b.ActiveColor) {
			return -Mate + ply
		}
		return 0
	}

	ordered := s.orderMoves(b, moves, ttMove, ply)

	bestScore := -Infinity
	bestMove := ordered[0]
	for i, m := range ordered {
		moved := b.PieceAt(m.From())
		tactical := isTactical(b, m)

		u := b.MakeUnchecked(m)
		givesCheck := b.InCheck(b.ActiveColor)

		newDepth := depth - 1
		if givesCheck {
			// A move that checks the opponent is extended a ply so the
			// forcing line is resolved rather than cut off mid-check.
			newDepth++
		}
		var score int
		if depth >= 3 && i >= 1 && ply > 0 && !tactical && !givesCheck {
			score = -s.negamax(ctx, b, newDepth-1, -alpha-1, -alpha, ply+1)
			if score > alpha {
				score = -s.negamax(ctx, b, newDepth, -beta, -alpha, ply+1)
			}
		} else {
			score = -s.negamax(ctx, b, newDepth, -beta, -alpha, ply+1)
		}
		b.Unmake(u)

		if s.stopped {
			return 0
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !tactical {
				s.recordKiller(ply, m)
				s.history[moved][m.To()] += depth * depth
			}
			bestScore = beta
			break
		}
	}

	flag := tt.Exact
	switch {
	case bestScore <= alphaOrig:
		flag = tt.UpperBound
	case bestScore >= beta:
		flag = tt.LowerBound
	}
	s.tt.Store(hash, tt.Entry{Depth: depth, Score: bestScore, Flag: flag, Move: uint16(bestMove)})

	return bestScore
}

// quiescence extends the search along capture sequences past the nominal
// depth horizon so the static evaluation is never called on a position
// with an unresolved capture hanging over it.
func (s *Searcher) quiescence(ctx context.Context, b *board.Board, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes&1023 == 0 {
		s.checkStop(ctx)
	}
	if s.stopped || ply >= MaxPly {
		return eval.Evaluate(b)
	}

	standPat := eval.Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var moves types.MoveList
	b.GenLegalMoves(&moves)

	for i := range moves.LastMoveIndex {
		m := moves.Moves[i]
		if !isTactical(b, m) {
			continue
		}
		if See(b, m) < 0 {
			continue
		}

		u := b.MakeUnchecked(m)
		score := -s.quiescence(ctx, b, -beta, -alpha, ply+1)
		b.Unmake(u)

		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func isTactical(b *board.Board, m types.Move) bool {
	if m.Type() == types.MovePromotion || m.Type() == types.MoveEnPassant {
		return true
	}
	return b.PieceAt(m.To()) != types.PieceNone
}

func (s *Searcher) recordKiller(ply int, m types.Move) {
	if ply >= MaxPly || s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// orderMoves scores every candidate move so the loop in negamax searches
// the most promising ones first: the transposition table's move, then
// captures and promotions by SEE (losing ones included), then killer moves
// for this ply, then everything else by history score.
func (s *Searcher) orderMoves(b *board.Board, moves types.MoveList, ttMove types.Move, ply int) []types.Move {
	type scoredMove struct {
		move  types.Move
		score int
	}

	list := make([]scoredMove, moves.LastMoveIndex)
	for i := range moves.LastMoveIndex {
		m := moves.Moves[i]
		var sc int
		switch {
		case m == ttMove:
			sc = 1 << 30
		case isTactical(b, m):
			sc = (1 << 20) + See(b, m)
		case ply < MaxPly && m == s.killers[ply][0]:
			sc = 1 << 15
		case ply < MaxPly && m == s.killers[ply][1]:
			sc = 1 << 14
		default:
			sc = s.history[b.PieceAt(m.From())][m.To()]
		}
		list[i] = scoredMove{m, sc}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].score > list[j].score })

	ordered := make([]types.Move, len(list))
	for i, e := range list {
		ordered[i] = e.move
	}
	return ordered
}

// extractPV walks the transposition table from b's current position,
// re-verifying each stored move against the legal move list before
// trusting it (a stale or colliding entry must not be reported as part of
// the principal variation).
func (s *Searcher) extractPV(b *board.Board, maxLen int) []types.Move {
	var pv []types.Move
	var undos []board.Undo

	for i := 0; i < maxLen; i++ {
		entry, ok := s.tt.Probe(b.Hash)
		if !ok {
			break
		}
		m := types.Move(entry.Move)

		var legal types.MoveList
		b.GenLegalMoves(&legal)
		found := false
		for j := range legal.LastMoveIndex {
			if legal.Moves[j] == m {
				found = true
				break
			}
		}
		if !found {
			break
		}

		pv = append(pv, m)
		undos = append(undos, b.MakeUnchecked(m))
	}

	for i := len(undos) - 1; i >= 0; i-- {
		b.Unmake(undos[i])
	}
	return pv
}
