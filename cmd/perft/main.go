// Command perft measures move-generation performance and correctness by
// walking the legal-move tree to a fixed depth and comparing the leaf
// count against known-correct values.
//
// See https://www.chessprogramming.org/Perft_Results
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/fathomchess/zugzwang/board"
	"github.com/fathomchess/zugzwang/fen"
	"github.com/fathomchess/zugzwang/internal/perft"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/zobrist"
)

func main() {
	movegen.InitAttackTables()
	zobrist.Init()

	depth := flag.Int("depth", 5, "perft depth")
	fenStr := flag.String("fen", fen.InitialPosition, "FEN of the position to search")
	divide := flag.Bool("divide", false, "report node counts per root move")
	suite := flag.String("suite", "", "path to a perft suite file (\"FEN; D<depth> <expected>\" per line)")
	cpuprofile := flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof")
	memprofile := flag.Bool("memprofile", false, "write a memory profile to ./mem.pprof")
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memprofile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if *suite != "" {
		runSuite(*suite)
		return
	}

	b := board.FromFEN(*fenStr)

	if *divide {
		start := time.Now()
		entries := perft.Divide(b, *depth)
		var total uint64
		for _, e := range entries {
			log.Printf("%s: %d", e.Move, e.Nodes)
			total += e.Nodes
		}
		log.Printf("total: %d (%s)", total, time.Since(start))
		return
	}

	start := time.Now()
	nodes := perft.Count(b, *depth)
	elapsed := time.Since(start)

	log.Printf("depth %d: %d nodes in %s (%.0f nps)", *depth, nodes, elapsed,
		float64(nodes)/elapsed.Seconds())
}

func runSuite(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("perft: %v", err)
	}
	defer f.Close()

	cases, err := perft.ReadCases(f)
	if err != nil {
		log.Fatalf("perft: %v", err)
	}

	failures := 0
	for _, c := range cases {
		b := board.FromFEN(c.FEN)
		got := perft.Count(b, c.Depth)
		if got != c.Want {
			failures++
			log.Printf("FAIL %s D%d: expected %d, got %d", c.FEN, c.Depth, c.Want, got)
			continue
		}
		log.Printf("ok   %s D%d: %d", c.FEN, c.Depth, got)
	}

	if failures > 0 {
		log.Fatalf("%d/%d cases failed", failures, len(cases))
	}
}
