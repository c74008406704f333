// Package board implements the chess rules: bitboard positions, FEN, move
// generation, legality filtering and the position transition function.
package board

import "fmt"

// Square indexes the board rank by rank from a1 (0) to h8 (63).
type Square uint8

// Back-rank squares name the castling geometry; anything else is built
// with NewSquare or ParseSquare.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0, 1, 2, 3, 4, 5, 6, 7
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 56, 57, 58, 59, 60, 61, 62, 63

	E2 Square = 12
	E4 Square = 28

	NoSquare Square = 64
)

func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

func (sq Square) File() int { return int(sq % 8) }
func (sq Square) Rank() int { return int(sq / 8) }

// RelativeRank counts ranks from c's own back rank, so a pawn about to
// promote is on relative rank 6 for either side.
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return 7 - sq.Rank()
	}
	return sq.Rank()
}

// String is the coordinate name ("e4"). NoSquare prints as "-", matching
// the empty en passant field of a FEN.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare is the inverse of String for on-board squares.
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8' {
		return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
	}
	return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
}
