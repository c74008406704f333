// Package engine implements the fixed-depth negamax search and the engine
// API consumed by the game controller and the UCI front-end.
package engine

import (
	"github.com/hailam/negachess/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 0
)

// Evaluate returns the material balance in centipawns from the point of view
// of the side to move.
func Evaluate(pos *board.Position) int {
	score := EvaluateMaterial(pos)
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}

// EvaluateMaterial returns the material balance, white minus black.
func EvaluateMaterial(pos *board.Position) int {
	return pos.Material()
}
