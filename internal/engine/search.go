package engine

import (
	"context"
	"sync/atomic"

	"github.com/hailam/negachess/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// MoveScore pairs a root move in UCI notation with its search score.
type MoveScore struct {
	UCI   string `json:"move"`
	Score int    `json:"score"`
}

// Searcher performs a single fixed-depth alpha-beta search. It is not safe
// for concurrent use; parallel callers each take their own.
type Searcher struct {
	mateAware bool
	nodes     uint64
	stopFlag  atomic.Bool
}

// NewSearcher creates a new searcher.
func NewSearcher(mateAware bool) *Searcher {
	return &Searcher{mateAware: mateAware}
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// watch stops the searcher when ctx is done. The returned function releases
// the watcher.
func (s *Searcher) watch(ctx context.Context) func() bool {
	if ctx.Err() != nil {
		s.Stop()
	}
	return context.AfterFunc(ctx, s.Stop)
}

// SearchRoot returns the first legal move reaching the best score. The root
// raises alpha as it goes, so later moves are only proven not to be better.
func (s *Searcher) SearchRoot(ctx context.Context, pos *board.Position, depth int) (board.Move, int, error) {
	release := s.watch(ctx)
	defer release()

	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return board.NoMove, s.leafScore(pos, 0), nil
	}

	bestMove := board.NoMove
	bestScore := -Infinity
	alpha, beta := -Infinity, Infinity

	for i := 0; i < moves.Len(); i++ {
		if s.IsStopped() {
			return board.NoMove, 0, stopErr(ctx)
		}
		m := moves.Get(i)
		child := pos.Apply(m)
		score := -s.negamax(&child, depth-1, 1, -beta, -alpha)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	if s.IsStopped() {
		return board.NoMove, 0, stopErr(ctx)
	}
	return bestMove, bestScore, nil
}

// ScoreMove returns the exact score of playing m from pos, searched with a
// full window.
func (s *Searcher) ScoreMove(ctx context.Context, pos *board.Position, m board.Move, depth int) (int, error) {
	release := s.watch(ctx)
	defer release()

	child := pos.Apply(m)
	score := -s.negamax(&child, depth-1, 1, -Infinity, Infinity)
	if s.IsStopped() {
		return 0, stopErr(ctx)
	}
	return score, nil
}

// negamax returns the score of pos from the side to move's point of view.
func (s *Searcher) negamax(pos *board.Position, depth, ply, alpha, beta int) int {
	s.nodes++

	if depth <= 0 {
		return Evaluate(pos)
	}

	moves := pos.LegalMoves()
	if moves.Len() == 0 {
		return s.leafScore(pos, ply)
	}

	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		if s.IsStopped() {
			return best
		}
		child := pos.Apply(moves.Get(i))
		score := -s.negamax(&child, depth-1, ply+1, -beta, -alpha)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// leafScore scores a position without legal moves. Unless mate scoring is
// enabled, checkmate and stalemate are both treated as ordinary leaves.
func (s *Searcher) leafScore(pos *board.Position, ply int) int {
	if !s.mateAware {
		return Evaluate(pos)
	}
	if pos.InCheck() {
		return -MateScore + ply
	}
	return 0
}

func stopErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStopped
}
