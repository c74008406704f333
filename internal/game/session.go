// Package game drives a chess game through the engine API. It keeps the
// position history as FEN strings and owns no chess rules of its own beyond
// notation.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoMove      = errors.New("engine found no move")
	ErrGameOver    = errors.New("game is over")
)

// Engine is the subset of the engine API a session needs.
type Engine interface {
	LegalMovesUCI(fen string) []string
	ChooseMove(fen string, depth int) string
	RootSearchScores(fen string, depth int) []engine.MoveScore
	ApplyMove(fen, uci string) string
}

// Status describes whether the game can continue.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Record is a serialisable snapshot of a session.
type Record struct {
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	PGN      string    `json:"pgn"`
	Result   string    `json:"result"`
	SavedAt  time.Time `json:"saved_at"`
}

// Session is a single game in progress. It is not safe for concurrent use.
type Session struct {
	eng         Engine
	depth       int
	engineColor board.Color
	log         zerolog.Logger

	startFEN string
	history  []string // FEN after each ply, history[0] is the start
	moves    []string // UCI
	san      []string
}

// Option configures a Session.
type Option func(*Session)

// WithDepth sets the depth used for engine moves.
func WithDepth(depth int) Option {
	return func(s *Session) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithEngineColor sets the side the engine plays. board.NoColor means the
// engine only moves when asked.
func WithEngineColor(c board.Color) Option {
	return func(s *Session) {
		s.engineColor = c
	}
}

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// NewSession starts a game from the standard position.
func NewSession(eng Engine, opts ...Option) *Session {
	s := &Session{
		eng:         eng,
		depth:       engine.DifficultySettings[engine.Medium].Depth,
		engineColor: board.White,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "game").Logger()
	s.Reset()
	return s
}

// Reset returns to the standard starting position and clears the history.
func (s *Session) Reset() {
	s.start(board.StartFEN)
}

func (s *Session) start(fen string) {
	s.startFEN = fen
	s.history = []string{fen}
	s.moves = nil
	s.san = nil
}

// LoadFEN starts a new game from fen.
func (s *Session) LoadFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.start(pos.FEN())
	s.log.Debug().Str("fen", s.startFEN).Msg("position loaded")
	return nil
}

// FEN returns the current position.
func (s *Session) FEN() string {
	return s.history[len(s.history)-1]
}

func (s *Session) position() board.Position {
	pos, err := board.ParseFEN(s.FEN())
	if err != nil {
		// History only ever holds FENs produced by ParseFEN or the engine.
		panic(fmt.Sprintf("game: corrupt history entry %q: %v", s.FEN(), err))
	}
	return pos
}

// SideToMove returns the color to move.
func (s *Session) SideToMove() board.Color {
	pos := s.position()
	return pos.SideToMove()
}

// FullMoveNumber returns the current full-move number.
func (s *Session) FullMoveNumber() int {
	pos := s.position()
	return pos.FullMoveNumber()
}

// Depth returns the engine search depth.
func (s *Session) Depth() int {
	return s.depth
}

// SetDepth changes the engine search depth.
func (s *Session) SetDepth(depth int) {
	if depth > 0 {
		s.depth = depth
	}
}

// EngineColor returns the side played by the engine.
func (s *Session) EngineColor() board.Color {
	return s.engineColor
}

// SetEngineColor changes the side played by the engine.
func (s *Session) SetEngineColor(c board.Color) {
	s.engineColor = c
}

// EngineToMove reports whether the engine should play the next move.
func (s *Session) EngineToMove() bool {
	return s.engineColor != board.NoColor && s.SideToMove() == s.engineColor && s.Status() == Ongoing
}

// LegalMoves returns the legal moves of the current position in UCI.
func (s *Session) LegalMoves() []string {
	return s.eng.LegalMovesUCI(s.FEN())
}

// Play plays a move given in UCI. A move without a promotion letter selects
// the first legal move it prefixes, which is the queen promotion.
func (s *Session) Play(uci string) error {
	uci = strings.TrimSpace(uci)
	if len(uci) < 4 {
		return fmt.Errorf("%w: %q", ErrIllegalMove, uci)
	}

	found := ""
	for _, m := range s.LegalMoves() {
		if strings.HasPrefix(m, uci) {
			found = m
			break
		}
	}
	if found == "" {
		if s.Status() != Ongoing {
			return ErrGameOver
		}
		return fmt.Errorf("%w: %s", ErrIllegalMove, uci)
	}
	return s.push(found)
}

// PlaySAN plays a move given in Standard Algebraic Notation.
func (s *Session) PlaySAN(san string) error {
	pos := s.position()
	m, err := pos.ParseSAN(san)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return s.push(m.String())
}

func (s *Session) push(uci string) error {
	fen := s.FEN()
	pos := s.position()
	m, err := pos.FindMove(uci)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	next := s.eng.ApplyMove(fen, uci)
	if next == "" {
		return fmt.Errorf("%w: %s rejected by engine", ErrIllegalMove, uci)
	}

	s.san = append(s.san, pos.SAN(m))
	s.moves = append(s.moves, uci)
	s.history = append(s.history, next)

	s.log.Debug().Str("move", uci).Str("san", s.san[len(s.san)-1]).Str("fen", next).Msg("move played")
	return nil
}

// EngineMove asks the engine for a move in the current position and plays it.
func (s *Session) EngineMove() (string, error) {
	if s.Status() != Ongoing {
		return "", ErrGameOver
	}
	start := time.Now()
	uci := s.eng.ChooseMove(s.FEN(), s.depth)
	if uci == "" {
		return "", ErrNoMove
	}
	if err := s.push(uci); err != nil {
		return "", err
	}
	s.log.Info().Str("move", uci).Int("depth", s.depth).Dur("elapsed", time.Since(start)).Msg("engine moved")
	return uci, nil
}

// Analyze returns the root move scores of the current position.
func (s *Session) Analyze(depth int) []engine.MoveScore {
	if depth < 1 {
		depth = s.depth
	}
	return s.eng.RootSearchScores(s.FEN(), depth)
}

// Undo takes back the last ply. It returns false at the start of the game.
func (s *Session) Undo() bool {
	if len(s.history) < 2 {
		return false
	}
	s.history = s.history[:len(s.history)-1]
	s.moves = s.moves[:len(s.moves)-1]
	s.san = s.san[:len(s.san)-1]
	return true
}

// History returns the FEN of every position reached, starting position first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Moves returns the moves played, in UCI.
func (s *Session) Moves() []string {
	return append([]string(nil), s.moves...)
}

// SANMoves returns the moves played, in SAN.
func (s *Session) SANMoves() []string {
	return append([]string(nil), s.san...)
}

// Status reports checkmate or stalemate in the current position. Other draw
// rules are not tracked.
func (s *Session) Status() Status {
	pos := s.position()
	switch {
	case pos.IsCheckmate():
		return Checkmate
	case pos.IsStalemate():
		return Stalemate
	}
	return Ongoing
}

// Result returns the PGN result token.
func (s *Session) Result() string {
	switch s.Status() {
	case Checkmate:
		if s.SideToMove() == board.White {
			return "0-1"
		}
		return "1-0"
	case Stalemate:
		return "1/2-1/2"
	}
	return "*"
}

// PGN returns the movetext of the game with move numbers, followed by the
// result token.
func (s *Session) PGN() string {
	start, err := board.ParseFEN(s.startFEN)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	num := start.FullMoveNumber()
	black := start.SideToMove() == board.Black
	for i, san := range s.san {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case !black:
			fmt.Fprintf(&sb, "%d. ", num)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", num)
		}
		sb.WriteString(san)
		if black {
			num++
		}
		black = !black
	}
	if len(s.san) > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(s.Result())
	return sb.String()
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() Record {
	return Record{
		StartFEN: s.startFEN,
		Moves:    s.Moves(),
		PGN:      s.PGN(),
		Result:   s.Result(),
		SavedAt:  time.Now(),
	}
}

// Restore replays a record. On error the session is left unchanged.
func (s *Session) Restore(rec Record) error {
	saved := *s
	if err := s.LoadFEN(rec.StartFEN); err != nil {
		return err
	}
	for i, uci := range rec.Moves {
		if err := s.push(uci); err != nil {
			*s = saved
			return fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return nil
}
