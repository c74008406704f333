// Command negachess-perft counts move-generation leaf nodes for a position
// and optionally checks them against a reference generator.
//
//	negachess-perft -depth 4 -verify "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
//
// With -scores it prints the search score of every root move instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/diag"
	"github.com/hailam/negachess/internal/engine"
)

func main() {
	depth := flag.Int("depth", 3, "perft or search depth")
	verify := flag.Bool("verify", false, "compare against the reference generator")
	scores := flag.Bool("scores", false, "print root move scores instead of perft")
	workers := flag.Int("workers", 0, "goroutines for -scores (0 = one per CPU)")
	mate := flag.Bool("mate", false, "score checkmate and stalemate in -scores")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	fen := board.StartFEN
	if flag.NArg() > 0 {
		fen = strings.Join(flag.Args(), " ")
	}

	if *scores {
		cfg := engine.DefaultConfig()
		cfg.Workers = *workers
		cfg.MateAware = *mate
		cfg.Logger = log
		list, err := engine.New(cfg).RootSearchScoresParallel(context.Background(), fen, *depth)
		if err != nil {
			log.Fatal().Err(err).Str("fen", fen).Msg("root scores")
		}
		for _, s := range list {
			fmt.Printf("%-6s %6d\n", s.UCI, s.Score)
		}
		return
	}

	run := diag.Perft
	if *verify {
		run = diag.Verify
	}
	r, err := run(fen, *depth)
	if err != nil {
		log.Fatal().Err(err).Str("fen", fen).Msg("perft")
	}

	for _, m := range r.Moves() {
		fmt.Printf("%s: %d\n", m, r.Divide[m])
	}
	fmt.Printf("\nNodes: %d\n", r.Nodes)
	log.Info().Int("depth", r.Depth).Uint64("nodes", r.Nodes).Dur("elapsed", r.Elapsed).Msg("perft complete")

	if len(r.Mismatches) > 0 {
		for _, m := range r.Mismatches {
			log.Error().Str("move", m.Move).Uint64("ours", m.Ours).Uint64("reference", m.Reference).Msg("mismatch")
		}
		os.Exit(2)
	}
	if *verify {
		log.Info().Msg("reference agrees")
	}
}
