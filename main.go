// NegaChess - play chess against a negamax engine in the terminal
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/console"
	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/storage"
)

func main() {
	dbDir := flag.String("db", "", "database directory (default: platform data dir)")
	noDB := flag.Bool("nodb", false, "do not persist anything")
	mate := flag.Bool("mate", false, "score checkmate and stalemate")
	verbose := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var store *storage.Storage
	if !*noDB {
		var err error
		if *dbDir != "" {
			store, err = storage.Open(*dbDir)
		} else {
			store, err = storage.NewStorage()
		}
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, continuing without it")
			store = nil
		} else {
			defer store.Close()
		}
	}

	cfg := engine.DefaultConfig()
	cfg.MateAware = *mate
	cfg.Logger = log

	c := console.New(engine.New(cfg), store, os.Stdin, os.Stdout, log)
	if err := c.Run(); err != nil {
		log.Error().Err(err).Msg("read commands")
	}
}
