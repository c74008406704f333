// Package uci implements a subset of the Universal Chess Interface protocol
// on top of the engine package.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position board.Position
	log      zerolog.Logger

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serialises writes to out

	// Search state
	cancel     context.CancelFunc
	searchDone chan struct{}
}

// New creates a new UCI protocol handler reading commands from in and
// writing responses to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer, log zerolog.Logger) *UCI {
	u := &UCI{
		engine:   eng,
		position: board.NewPosition(),
		log:      log.With().Str("component", "uci").Logger(),
		in:       in,
		out:      out,
	}
	eng.OnInfo = u.sendInfo
	return u
}

// Run processes commands until "quit" or end of input. At end of input a
// running search is allowed to finish; "quit" stops it.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return nil
		// Debug commands
		case "d":
			u.println(u.position.String())
		case "perft":
			u.handlePerft(args)
		case "scores":
			u.handleScores(args)
		default:
			u.log.Debug().Str("command", cmd).Msg("unknown command")
		}
	}

	u.wait()
	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name NegaChess")
	u.println("id author NegaChess Team")
	u.println("uciok")
}

// handleNewGame resets the position for a new game.
func (u *UCI) handleNewGame() {
	u.handleStop()
	u.position = board.NewPosition()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	pos, err := parsePosition(args)
	if err != nil {
		u.log.Warn().Err(err).Strs("args", args).Msg("position rejected")
		u.printf("info string %v\n", err)
		return
	}
	u.position = pos
}

func parsePosition(args []string) (board.Position, error) {
	if len(args) == 0 {
		return board.Position{}, errors.New("position: missing argument")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		p, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return board.Position{}, err
		}
		pos = p
	default:
		return board.Position{}, fmt.Errorf("position: unknown argument %q", args[0])
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := pos.FindMove(s)
			if err != nil {
				return board.Position{}, err
			}
			pos = pos.Apply(m)
		}
	}
	return pos, nil
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth    int
	Infinite bool
}

// parseGoOptions parses "go" command arguments. Time controls are accepted
// and ignored; searches are always to a fixed depth.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "infinite":
			opts.Infinite = true
		case "wtime", "btime", "winc", "binc", "movetime", "movestogo", "nodes":
			i++
		}
	}

	return opts
}

// handleGo starts a search in the background. The result is reported with a
// "bestmove" line.
func (u *UCI) handleGo(args []string) {
	u.handleStop()

	opts := parseGoOptions(args)
	depth := opts.Depth
	if depth <= 0 {
		depth = u.engine.Depth()
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.searchDone = make(chan struct{})

	pos := u.position
	fen := pos.FEN()

	go func() {
		defer close(u.searchDone)
		defer cancel()

		move, err := u.engine.ChooseMoveContext(ctx, fen, depth)
		if err == nil {
			u.printf("bestmove %s\n", move)
			return
		}

		// Stopped or no legal moves: fall back to the first legal move.
		u.log.Debug().Err(err).Str("fen", fen).Msg("search ended without a move")
		legal := pos.LegalMoves()
		if legal.Len() > 0 {
			u.printf("bestmove %s\n", legal.Get(0))
			return
		}
		u.println("bestmove 0000")
	}()
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// Score
	if info.Score > engine.MateScore-engine.MaxPly {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -engine.MateScore+engine.MaxPly {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	parts = append(parts, "pv "+info.Move.String())

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleStop stops the current search and waits for its bestmove.
func (u *UCI) handleStop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.wait()
}

func (u *UCI) wait() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
		u.cancel = nil
	}
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	divide := u.position.Divide(depth)
	elapsed := time.Since(start)

	var nodes uint64
	legal := u.position.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i).String()
		u.printf("%s: %d\n", m, divide[m])
		nodes += divide[m]
	}

	u.println()
	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %.0f\n", nps)
	}
}

// handleScores prints every root move with its score at the given depth.
func (u *UCI) handleScores(args []string) {
	depth := u.engine.Depth()
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	scores, err := u.engine.RootSearchScoresParallel(context.Background(), u.position.FEN(), depth)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}
	for _, s := range scores {
		u.printf("info string move %s score cp %d\n", s.UCI, s.Score)
	}
}
