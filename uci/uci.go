// Package uci implements the Universal Chess Interface protocol loop:
// reading commands line by line, driving a [game.Game] and a [search.Searcher]
// against them, and writing the responses a GUI expects.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"

	"github.com/fathomchess/zugzwang/config"
	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/game"
	"github.com/fathomchess/zugzwang/notation"
	"github.com/fathomchess/zugzwang/search"
	"github.com/fathomchess/zugzwang/tt"
	"github.com/fathomchess/zugzwang/types"
)

var log = logging.MustGetLogger("uci")

const (
	name   = "Zugzwang"
	author = "fathomchess"
)

// Engine holds the protocol-level state for one UCI session: the game
// under analysis, the shared search table, the declared options, and the
// bookkeeping needed to cancel an in-flight "go" when "stop", "ucinewgame",
// "quit" or a new "go" arrives.
type Engine struct {
	opts     config.Options
	table    *tt.Table
	searcher *search.Searcher
	game     *game.Game

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewEngine creates an Engine with opts applied (a zero value behaves like
// [config.Default]).
func NewEngine(opts config.Options) *Engine {
	if opts.HashMB == 0 {
		opts = config.Default()
	}
	table := tt.New(opts.HashMB)
	return &Engine{
		opts:     opts,
		table:    table,
		searcher: search.New(table),
		game:     game.NewGame(),
	}
}

// Loop reads UCI commands from r line by line until "quit" or EOF, writing
// responses to w. Unknown commands and unknown options are ignored, per
// the protocol's tolerance for forward-compatible GUIs.
func (e *Engine) Loop(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "uci":
			e.handleUCI(w)
		case "isready":
			fmt.Fprintln(w, "readyok")
		case "ucinewgame":
			e.handleNewGame()
		case "setoption":
			e.handleSetOption(fields)
		case "position":
			e.handlePosition(fields)
		case "go":
			e.handleGo(w, fields)
		case "stop":
			e.stopSearch()
		case "quit":
			e.stopSearch()
			return
		default:
			log.Debugf("ignoring unrecognized command: %s", fields[0])
		}
	}
}

func (e *Engine) handleUCI(w io.Writer) {
	fmt.Fprintf(w, "id name %s\n", name)
	fmt.Fprintf(w, "id author %s\n", author)
	fmt.Fprintf(w, "option name Hash type spin default %d min %d max %d\n",
		config.DefaultHashMB, config.MinHashMB, config.MaxHashMB)
	fmt.Fprintf(w, "option name Threads type spin default %d min 1 max 1\n", config.DefaultThreads)
	fmt.Fprintln(w, "uciok")
}

func (e *Engine) handleNewGame() {
	e.stopSearch()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table.Clear()
	e.game = game.NewGame()
}

// handleSetOption applies "setoption name <name> value <value>". Only
// Hash is adjustable at runtime; everything else is accepted and ignored,
// matching the protocol's requirement to never fail on an unknown option.
func (e *Engine) handleSetOption(fields []string) {
	if len(fields) < 5 || fields[1] != "name" || fields[3] != "value" {
		return
	}
	optName, value := fields[2], fields[4]

	if optName != "Hash" {
		log.Debugf("ignoring unsupported option %q", optName)
		return
	}

	mb, err := strconv.Atoi(value)
	if err != nil {
		log.Warningf("setoption Hash: %v", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.opts.SetHash(mb); err != nil {
		log.Warningf("setoption Hash: %v", err)
		return
	}
	e.table = tt.New(mb)
	e.searcher = search.New(e.table)
}

// handlePosition applies "position [startpos|fen <fen>] [moves <m1> <m2> ...]".
func (e *Engine) handlePosition(fields []string) {
	if len(fields) < 2 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := 1
	switch fields[i] {
	case "startpos":
		e.game = game.NewGame()
		i++
	case "fen":
		i++
		start := i
		for i < len(fields) && fields[i] != "moves" {
			i++
		}
		fenStr := strings.Join(fields[start:i], " ")
		if _, err := fen.TryParse(fenStr); err != nil {
			log.Warningf("position: %v", err)
			return
		}
		e.game = game.FromFEN(fenStr)
	default:
		log.Warningf("position: expected \"startpos\" or \"fen\", got %q", fields[i])
		return
	}

	if i < len(fields) && fields[i] == "moves" {
		i++
		for ; i < len(fields); i++ {
			m, ok := notation.ResolveMove(fields[i], e.game.LegalMoves)
			if !ok {
				log.Warningf("position: skipping illegal move %q", fields[i])
				continue
			}
			e.game.PushMove(m)
		}
	}
}

// handleGo starts a search in the background, per "go [depth <n>] [movetime <ms>] [nodes <n>]".
// The previous search, if any, is stopped first.
func (e *Engine) handleGo(w io.Writer, fields []string) {
	e.stopSearch()

	e.mu.Lock()
	e.table.Clear()
	limits := search.Limits{Depth: e.opts.Depth}
	for i := 1; i < len(fields)-1; i++ {
		switch fields[i] {
		case "depth":
			if d, err := strconv.Atoi(fields[i+1]); err == nil {
				limits.Depth = d
			}
		case "movetime":
			if ms, err := strconv.Atoi(fields[i+1]); err == nil {
				limits.MoveTime = time.Duration(ms) * time.Millisecond
			}
		case "nodes":
			if n, err := strconv.ParseUint(fields[i+1], 10, 64); err == nil {
				limits.Nodes = n
			}
		}
	}
	b := e.game.Board
	searcher := e.searcher
	e.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	var group errgroup.Group
	e.mu.Lock()
	e.cancel = cancel
	e.group = &group
	e.mu.Unlock()

	group.Go(func() error {
		result := searcher.Search(ctx, b, limits)

		if result.BestMove == 0 {
			fmt.Fprintln(w, "bestmove 0000")
			return nil
		}
		fmt.Fprintf(w, "info depth %d score cp %d nodes %d pv %s\n",
			result.Depth, result.Score, result.Nodes, formatPV(result.PV))
		fmt.Fprintf(w, "bestmove %s\n", notation.FormatUCI(result.BestMove))
		return nil
	})
}

// stopSearch cancels any in-flight search and waits for it to report its
// bestmove before returning, so a following "position"/"go" never races
// against the previous search's board reads.
func (e *Engine) stopSearch() {
	e.mu.Lock()
	cancel := e.cancel
	group := e.group
	e.cancel = nil
	e.group = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if group != nil {
		group.Wait()
	}
}

func formatPV(pv []types.Move) string {
	var sb strings.Builder
	for i, m := range pv {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(notation.FormatUCI(m))
	}
	return sb.String()
}
