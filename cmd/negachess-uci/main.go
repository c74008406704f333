// Command negachess-uci speaks the UCI protocol on stdin and stdout.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/uci"
)

func main() {
	depth := flag.Int("depth", 0, "default search depth (overrides -difficulty)")
	difficulty := flag.String("difficulty", "medium", "easy, medium or hard")
	mate := flag.Bool("mate", false, "score checkmate and stalemate")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg := engine.DefaultConfig()
	cfg.MateAware = *mate
	cfg.Logger = log
	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -difficulty")
	}
	cfg.Depth = engine.DifficultySettings[d].Depth
	if *depth > 0 {
		cfg.Depth = *depth
	}

	protocol := uci.New(engine.New(cfg), os.Stdin, os.Stdout, log)
	if err := protocol.Run(); err != nil {
		log.Fatal().Err(err).Msg("read commands")
	}
}
