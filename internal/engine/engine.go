package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/negachess/internal/board"
)

var (
	// ErrNoMoves is returned when the side to move has no legal moves.
	ErrNoMoves = errors.New("no legal moves")
	// ErrStopped is returned when a search was stopped before completing.
	ErrStopped = errors.New("search stopped")
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int // Fixed search depth in plies
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2},
	Medium: {Depth: 3},
	Hard:   {Depth: 4},
}

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Config holds engine settings.
type Config struct {
	// Depth is the default depth used by callers that do not pass one.
	Depth int
	// MateAware scores checkmate and stalemate instead of evaluating
	// material at positions without legal moves.
	MateAware bool
	// Workers bounds RootSearchScoresParallel. Values below 1 mean one
	// worker per CPU.
	Workers int
	Logger  zerolog.Logger
}

// DefaultConfig returns the configuration for Medium difficulty.
func DefaultConfig() Config {
	return Config{
		Depth:   DifficultySettings[Medium].Depth,
		Workers: runtime.NumCPU(),
		Logger:  zerolog.Nop(),
	}
}

// Engine is the chess AI engine. It keeps no state between searches and is
// safe for concurrent use.
type Engine struct {
	cfg Config
	log zerolog.Logger

	// Callbacks
	OnInfo func(SearchInfo)
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.Depth < 1 {
		cfg.Depth = DifficultySettings[Medium].Depth
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "engine").Logger(),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Depth returns the default search depth.
func (e *Engine) Depth() int {
	return e.cfg.Depth
}

// SetDifficulty sets the default depth from a difficulty level.
func (e *Engine) SetDifficulty(d Difficulty) {
	if limits, ok := DifficultySettings[d]; ok {
		e.cfg.Depth = limits.Depth
	}
}

func (e *Engine) parse(fen string) (board.Position, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		e.log.Debug().Err(err).Str("fen", fen).Msg("rejected position")
	}
	return pos, err
}

// LegalMovesUCI returns the legal moves of fen in generator order, or an
// empty slice if fen does not parse.
func (e *Engine) LegalMovesUCI(fen string) []string {
	pos, err := e.parse(fen)
	if err != nil {
		return []string{}
	}
	return pos.LegalMoves().Strings()
}

// ChooseMove returns the best move for fen at depth in UCI notation, or ""
// when fen does not parse or the side to move has no legal moves.
func (e *Engine) ChooseMove(fen string, depth int) string {
	move, err := e.ChooseMoveContext(context.Background(), fen, depth)
	if err != nil {
		e.log.Debug().Err(err).Str("fen", fen).Int("depth", depth).Msg("no move chosen")
		return ""
	}
	return move
}

// ChooseMoveContext is ChooseMove with cancellation and error reporting.
func (e *Engine) ChooseMoveContext(ctx context.Context, fen string, depth int) (string, error) {
	pos, err := e.parse(fen)
	if err != nil {
		return "", err
	}
	depth = clampDepth(depth)

	start := time.Now()
	s := NewSearcher(e.cfg.MateAware)
	move, score, err := s.SearchRoot(ctx, &pos, depth)
	if err != nil {
		return "", err
	}
	if move == board.NoMove {
		return "", ErrNoMoves
	}

	info := SearchInfo{
		Depth: depth,
		Score: score,
		Nodes: s.Nodes(),
		Time:  time.Since(start),
		Move:  move,
	}
	e.log.Debug().
		Str("move", move.String()).
		Int("score", score).
		Int("depth", depth).
		Uint64("nodes", info.Nodes).
		Dur("elapsed", info.Time).
		Msg("search complete")
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return move.String(), nil
}

// RootSearchScores returns every legal root move of fen with its exact score
// at depth, in generator order. It returns an empty slice when fen does not
// parse.
func (e *Engine) RootSearchScores(fen string, depth int) []MoveScore {
	scores, err := e.RootSearchScoresContext(context.Background(), fen, depth)
	if err != nil {
		e.log.Debug().Err(err).Str("fen", fen).Int("depth", depth).Msg("root scores unavailable")
		return []MoveScore{}
	}
	return scores
}

// RootSearchScoresContext is RootSearchScores with cancellation and error
// reporting.
func (e *Engine) RootSearchScoresContext(ctx context.Context, fen string, depth int) ([]MoveScore, error) {
	pos, err := e.parse(fen)
	if err != nil {
		return nil, err
	}
	depth = clampDepth(depth)

	moves := pos.LegalMoves()
	scores := make([]MoveScore, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		score, err := NewSearcher(e.cfg.MateAware).ScoreMove(ctx, &pos, m, depth)
		if err != nil {
			return nil, err
		}
		scores = append(scores, MoveScore{UCI: m.String(), Score: score})
	}
	return scores, nil
}

// RootSearchScoresParallel computes the same result as
// RootSearchScoresContext, searching root moves concurrently. Each subtree is
// still searched by a single goroutine.
func (e *Engine) RootSearchScoresParallel(ctx context.Context, fen string, depth int) ([]MoveScore, error) {
	pos, err := e.parse(fen)
	if err != nil {
		return nil, err
	}
	depth = clampDepth(depth)

	moves := pos.LegalMoves()
	scores := make([]MoveScore, moves.Len())
	var nodes atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i := 0; i < moves.Len(); i++ {
		i, m := i, moves.Get(i)
		g.Go(func() error {
			s := NewSearcher(e.cfg.MateAware)
			score, err := s.ScoreMove(gctx, &pos, m, depth)
			if err != nil {
				return fmt.Errorf("score %s: %w", m, err)
			}
			nodes.Add(s.Nodes())
			scores[i] = MoveScore{UCI: m.String(), Score: score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.Debug().
		Int("moves", len(scores)).
		Int("workers", e.cfg.Workers).
		Uint64("nodes", nodes.Load()).
		Msg("parallel root scores complete")
	return scores, nil
}

// ApplyMove plays uci on fen and returns the resulting FEN, or "" when fen
// does not parse or uci is not one of its legal moves.
func (e *Engine) ApplyMove(fen, uci string) string {
	pos, err := e.parse(fen)
	if err != nil {
		return ""
	}
	m, err := pos.FindMove(uci)
	if err != nil {
		e.log.Debug().Err(err).Msg("move rejected")
		return ""
	}
	next := pos.Apply(m)
	return next.FEN()
}

// Perft counts leaf nodes of the legal move tree below fen.
func (e *Engine) Perft(fen string, depth int) (uint64, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	return pos.Perft(depth), nil
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth >= MaxPly {
		return MaxPly - 1
	}
	return depth
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + strconv.Itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + strconv.Itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
