package board

import "strings"

// Color is a side. NoColor marks "neither", e.g. an empty square or a
// session where the engine plays no side.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoColor"
}

// PieceType is a kind of piece without its color. The order is the one
// move generation visits pieces in.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// PieceValue is the material value of each piece type in centipawns.
// The king carries no material weight.
var PieceValue = [NoPieceType + 1]int{100, 320, 330, 500, 900, 0, 0}

// pieceLetters holds the FEN letter of every Piece, white first.
const pieceLetters = "PNBRQKpnbrqk"

// Char is the lowercase letter used for promotions in UCI notation.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceLetters[int(NoPieceType)+int(pt)]
}

// Piece is a colored piece: the white pieces 0-5 followed by the black
// pieces 6-11, each in PieceType order.
type Piece uint8

const NoPiece Piece = 12

func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*Piece(NoPieceType) + Piece(pt)
}

// PieceFromChar maps a FEN letter to its piece, or NoPiece.
func PieceFromChar(ch byte) Piece {
	if i := strings.IndexByte(pieceLetters, ch); i >= 0 {
		return Piece(i)
	}
	return NoPiece
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % Piece(NoPieceType))
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / Piece(NoPieceType))
}

// String is the FEN letter, or "." for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return pieceLetters[p : p+1]
}
