package uci_test

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fathomchess/zugzwang/config"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/uci"
	"github.com/fathomchess/zugzwang/zobrist"
)

func TestMain(m *testing.M) {
	movegen.InitAttackTables()
	zobrist.Init()
	os.Exit(m.Run())
}

func TestUCIHandshake(t *testing.T) {
	engine := uci.NewEngine(config.Default())
	var out bytes.Buffer

	engine.Loop(strings.NewReader("uci\nisready\nquit\n"), &out)

	got := out.String()
	if !strings.Contains(got, "id name") {
		t.Fatalf("expected an id name line, got:\n%s", got)
	}
	if !strings.Contains(got, "uciok") {
		t.Fatalf("expected uciok, got:\n%s", got)
	}
	if !strings.Contains(got, "readyok") {
		t.Fatalf("expected readyok, got:\n%s", got)
	}
}

func TestUCIPositionAndGoReturnsBestMove(t *testing.T) {
	engine := uci.NewEngine(config.Default())
	var out bytes.Buffer

	// "stop" blocks until the search goroutine has reported its bestmove,
	// so the buffer is safe to inspect once Loop returns.
	input := "position startpos moves e2e4 e7e5\ngo movetime 5000\nstop\nquit\n"

	done := make(chan struct{})
	go func() {
		engine.Loop(strings.NewReader(input), &out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("engine did not finish processing input in time")
	}

	if !strings.Contains(out.String(), "bestmove") {
		t.Fatalf("expected a bestmove line, got:\n%s", out.String())
	}
}

func TestUCISetOptionHash(t *testing.T) {
	engine := uci.NewEngine(config.Default())
	var out bytes.Buffer

	engine.Loop(strings.NewReader("setoption name Hash value 128\nisready\nquit\n"), &out)

	if !strings.Contains(out.String(), "readyok") {
		t.Fatalf("expected engine to remain responsive after setoption, got:\n%s", out.String())
	}
}

func TestUCIUnknownCommandIsIgnored(t *testing.T) {
	engine := uci.NewEngine(config.Default())
	var out bytes.Buffer

	engine.Loop(strings.NewReader("notacommand\nisready\nquit\n"), &out)

	if !strings.Contains(out.String(), "readyok") {
		t.Fatalf("expected an unknown command to be ignored, got:\n%s", out.String())
	}
}
