// Package console is a line-oriented front end for playing against the
// engine. Preferences, statistics and saved games are kept in storage when
// one is provided.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/game"
	"github.com/hailam/negachess/internal/storage"
)

const helpText = `commands:
  <move>             play a move in UCI (e2e4) or SAN (Nf3)
  go                 let the engine move now
  undo               take back one ply
  moves | fen | d | pgn
  analyze [depth]    score every legal move
  new [fen]          start a new game
  depth <n> | difficulty easy|medium|hard | color white|black|none
  save <name> | load <name> | delete <name> | games
  stats | help | quit`

// Console runs a game session over a reader and writer.
type Console struct {
	eng     *engine.Engine
	session *game.Session
	store   *storage.Storage // may be nil
	prefs   *storage.UserPreferences
	log     zerolog.Logger

	in  io.Reader
	out io.Writer

	started  time.Time
	recorded bool
}

// New creates a console. store may be nil, in which case nothing is
// persisted.
func New(eng *engine.Engine, store *storage.Storage, in io.Reader, out io.Writer, log zerolog.Logger) *Console {
	c := &Console{
		eng:   eng,
		store: store,
		log:   log.With().Str("component", "console").Logger(),
		in:    in,
		out:   out,
	}
	c.loadPreferences()
	c.session = game.NewSession(eng,
		game.WithDepth(c.depth()),
		game.WithEngineColor(toBoardColor(c.prefs.EngineColor)),
		game.WithLogger(log),
	)
	c.started = time.Now()
	return c
}

// Session returns the game being played.
func (c *Console) Session() *game.Session {
	return c.session
}

// loadPreferences loads user preferences from storage.
func (c *Console) loadPreferences() {
	if c.store == nil {
		c.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	c.prefs, err = c.store.LoadPreferences()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load preferences")
		c.prefs = storage.DefaultPreferences()
	}
}

// savePreferences saves current preferences to storage.
func (c *Console) savePreferences() {
	if c.store == nil {
		return
	}
	if err := c.store.SavePreferences(c.prefs); err != nil {
		c.log.Warn().Err(err).Msg("failed to save preferences")
	}
}

func (c *Console) depth() int {
	if c.prefs.SearchDepth > 0 {
		return c.prefs.SearchDepth
	}
	return engine.DifficultySettings[engine.Difficulty(c.prefs.Difficulty)].Depth
}

func toBoardColor(pc storage.PlayerColor) board.Color {
	switch pc {
	case storage.ColorWhite:
		return board.White
	case storage.ColorBlack:
		return board.Black
	}
	return board.NoColor
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Run reads commands until "quit" or end of input.
func (c *Console) Run() error {
	c.greet()
	c.engineTurn()

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := c.Execute(fields[0], fields[1:]); err != nil {
			c.printf("error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *Console) greet() {
	if c.store == nil {
		c.printf("Welcome!\n")
		return
	}
	first, err := c.store.IsFirstLaunch()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to check first launch")
	}
	if first {
		c.printf("Welcome, %s! Type \"help\" for commands.\n", c.prefs.Username)
		if err := c.store.MarkFirstLaunchComplete(); err != nil {
			c.log.Warn().Err(err).Msg("failed to mark first launch complete")
		}
		return
	}
	c.printf("Welcome back, %s.\n", c.prefs.Username)
}

// Execute runs a single command.
func (c *Console) Execute(cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		c.printf("%s\n", helpText)
	case "go":
		return c.engineMove()
	case "undo":
		if !c.session.Undo() {
			return errors.New("nothing to undo")
		}
		c.recorded = false
		c.printf("%s\n", c.session.FEN())
	case "moves":
		c.printf("%s\n", strings.Join(c.session.LegalMoves(), " "))
	case "fen":
		c.printf("%s\n", c.session.FEN())
	case "d":
		pos, err := board.ParseFEN(c.session.FEN())
		if err != nil {
			return err
		}
		c.printf("%s", pos.String())
	case "pgn":
		c.printf("%s\n", c.session.PGN())
	case "analyze":
		return c.analyze(args)
	case "new":
		return c.newGame(args)
	case "depth":
		return c.setDepth(args)
	case "difficulty":
		return c.setDifficulty(args)
	case "color":
		return c.setColor(args)
	case "save":
		return c.save(args)
	case "load":
		return c.load(args)
	case "delete":
		return c.deleteGame(args)
	case "games":
		return c.listGames()
	case "stats":
		return c.stats()
	default:
		return c.userMove(cmd)
	}
	return nil
}

func (c *Console) userMove(s string) error {
	err := c.session.Play(s)
	if errors.Is(err, game.ErrIllegalMove) {
		if sanErr := c.session.PlaySAN(s); sanErr == nil {
			err = nil
		}
	}
	if err != nil {
		return err
	}
	c.afterMove()
	c.engineTurn()
	return nil
}

func (c *Console) engineTurn() {
	if !c.session.EngineToMove() {
		return
	}
	if err := c.engineMove(); err != nil {
		c.printf("error: %v\n", err)
	}
}

func (c *Console) engineMove() error {
	move, err := c.session.EngineMove()
	if err != nil {
		return err
	}
	san := c.session.SANMoves()
	c.printf("engine plays %s (%s)\n", san[len(san)-1], move)
	c.afterMove()
	return nil
}

// afterMove reports the end of the game and records the result once.
func (c *Console) afterMove() {
	status := c.session.Status()
	if status == game.Ongoing {
		return
	}
	c.printf("%s: %s\n", status, c.session.Result())
	if c.recorded || c.store == nil || c.prefs.EngineColor == storage.ColorNone {
		return
	}

	result := storage.GameResult{
		Draw:       status == game.Stalemate,
		Difficulty: c.prefs.Difficulty,
		Duration:   time.Since(c.started),
	}
	if status == game.Checkmate {
		// The side to move is the side that was mated.
		result.Won = c.session.SideToMove() == toBoardColor(c.prefs.EngineColor)
	}
	if err := c.store.RecordResult(result); err != nil {
		c.log.Warn().Err(err).Msg("failed to record result")
		return
	}
	c.recorded = true
}

func (c *Console) analyze(args []string) error {
	depth := c.session.Depth()
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("depth: %w", err)
		}
		depth = d
	}
	for _, s := range c.session.Analyze(depth) {
		c.printf("%-6s %s\n", s.UCI, engine.ScoreToString(s.Score))
	}
	return nil
}

func (c *Console) newGame(args []string) error {
	if len(args) > 0 {
		if err := c.session.LoadFEN(strings.Join(args, " ")); err != nil {
			return err
		}
	} else {
		c.session.Reset()
	}
	c.started = time.Now()
	c.recorded = false
	c.printf("%s\n", c.session.FEN())
	c.engineTurn()
	return nil
}

func (c *Console) setDepth(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: depth <n>")
	}
	d, err := strconv.Atoi(args[0])
	if err != nil || d < 1 {
		return fmt.Errorf("invalid depth %q", args[0])
	}
	c.prefs.SearchDepth = d
	c.session.SetDepth(d)
	c.savePreferences()
	return nil
}

func (c *Console) setDifficulty(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: difficulty easy|medium|hard")
	}
	d, err := engine.ParseDifficulty(args[0])
	if err != nil {
		return err
	}
	c.prefs.Difficulty = storage.Difficulty(d)
	c.prefs.SearchDepth = 0
	c.session.SetDepth(c.depth())
	c.savePreferences()
	return nil
}

func (c *Console) setColor(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: color white|black|none")
	}
	switch strings.ToLower(args[0]) {
	case "white":
		c.prefs.EngineColor = storage.ColorWhite
	case "black":
		c.prefs.EngineColor = storage.ColorBlack
	case "none":
		c.prefs.EngineColor = storage.ColorNone
	default:
		return fmt.Errorf("unknown color %q", args[0])
	}
	c.session.SetEngineColor(toBoardColor(c.prefs.EngineColor))
	c.savePreferences()
	c.engineTurn()
	return nil
}

func (c *Console) requireStore() error {
	if c.store == nil {
		return errors.New("no storage available")
	}
	return nil
}

func (c *Console) save(args []string) error {
	if err := c.requireStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: save <name>")
	}
	rec := c.session.Snapshot()
	err := c.store.SaveGame(&storage.SavedGame{
		Name:     args[0],
		StartFEN: rec.StartFEN,
		Moves:    rec.Moves,
		PGN:      rec.PGN,
		Result:   rec.Result,
		SavedAt:  rec.SavedAt,
	})
	if err != nil {
		return err
	}
	c.printf("saved %s\n", args[0])
	return nil
}

func (c *Console) load(args []string) error {
	if err := c.requireStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: load <name>")
	}
	g, err := c.store.LoadGame(args[0])
	if err != nil {
		return err
	}
	err = c.session.Restore(game.Record{
		StartFEN: g.StartFEN,
		Moves:    g.Moves,
		PGN:      g.PGN,
		Result:   g.Result,
		SavedAt:  g.SavedAt,
	})
	if err != nil {
		return err
	}
	c.started = time.Now()
	c.recorded = c.session.Status() != game.Ongoing
	c.printf("%s\n%s\n", c.session.PGN(), c.session.FEN())
	return nil
}

func (c *Console) deleteGame(args []string) error {
	if err := c.requireStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delete <name>")
	}
	return c.store.DeleteGame(args[0])
}

func (c *Console) listGames() error {
	if err := c.requireStore(); err != nil {
		return err
	}
	names, err := c.store.ListGames()
	if err != nil {
		return err
	}
	for _, n := range names {
		c.printf("%s\n", n)
	}
	return nil
}

func (c *Console) stats() error {
	if err := c.requireStore(); err != nil {
		return err
	}
	s, err := c.store.LoadStats()
	if err != nil {
		return err
	}
	c.printf("played %d  won %d  lost %d  drawn %d  win rate %.0f%%  best streak %d\n",
		s.GamesPlayed, s.Wins, s.Losses, s.Draws, s.GetWinRate(), s.LongestWinStrk)
	return nil
}
