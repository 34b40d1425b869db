// Command zugzwang is a UCI-compliant chess engine.
package main

import (
	"flag"
	"os"

	"github.com/op/go-logging"

	"github.com/fathomchess/zugzwang/config"
	"github.com/fathomchess/zugzwang/movegen"
	"github.com/fathomchess/zugzwang/uci"
	"github.com/fathomchess/zugzwang/zobrist"
)

var log = logging.MustGetLogger("main")

func main() {
	configPath := flag.String("config", "", "optional TOML file with engine option defaults")
	flag.Parse()

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)
	logging.SetFormatter(logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
	))

	movegen.InitAttackTables()
	zobrist.Init()

	opts := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		opts = loaded
	}

	engine := uci.NewEngine(opts)
	engine.Loop(os.Stdin, os.Stdout)
}
