package board

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the board package. Details are wrapped with %w.
var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move")
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side still holds the right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// Position is a complete chess position. It is a value: the zero value is an
// empty board, ParseFEN and Apply are the only ways to obtain a populated one,
// and no method modifies the receiver.
type Position struct {
	pieces      [2][6]Bitboard // [Color][PieceType]
	occupied    [2]Bitboard
	allOccupied Bitboard

	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
}

// NewPosition returns the standard starting position.
func NewPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Pieces returns the bitboard of one piece type of one color.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupied returns all squares holding a piece of color c.
func (p *Position) Occupied(c Color) Bitboard {
	return p.occupied[c]
}

// AllOccupied returns all occupied squares.
func (p *Position) AllOccupied() Bitboard {
	return p.allOccupied
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// CastlingRights returns the castling flags still held.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfMoveClock returns the half-move clock carried from the FEN.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the full-move number.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// KingSquare returns the square of the king of color c, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[c][King].LSB()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.allOccupied&bb == 0 {
		return NoPiece
	}

	c := White
	if p.occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.allOccupied&SquareBB(sq) == 0
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare(p.sideToMove)
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, p.sideToMove.Other())
}

// Material returns the material balance in centipawns (positive favors white).
func (p *Position) Material() int {
	score := 0
	for pt := Pawn; pt < King; pt++ {
		score += p.pieces[White][pt].PopCount() * PieceValue[pt]
		score -= p.pieces[Black][pt].PopCount() * PieceValue[pt]
	}
	return score
}

// PieceCount returns the number of pieces of color c, king included.
func (p *Position) PieceCount(c Color) int {
	return p.occupied[c].PopCount()
}

// updateOccupied recalculates occupancy bitboards from piece bitboards.
func (p *Position) updateOccupied() {
	p.occupied[White] = Empty
	p.occupied[Black] = Empty
	for pt := Pawn; pt <= King; pt++ {
		p.occupied[White] |= p.pieces[White][pt]
		p.occupied[Black] |= p.pieces[Black][pt]
	}
	p.allOccupied = p.occupied[White] | p.occupied[Black]
}

// validate checks the king-count invariant.
func (p *Position) validate() error {
	if n := p.pieces[White][King].PopCount(); n != 1 {
		return fmt.Errorf("white must have exactly one king, found %d", n)
	}
	if n := p.pieces[Black][King].PopCount(); n != 1 {
		return fmt.Errorf("black must have exactly one king, found %d", n)
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	return sb.String()
}
