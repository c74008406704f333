package board

import "fmt"

// Move encodes a chess move:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-14: promotion piece type (0 = none, otherwise Knight..Queen)
// bits 15-18: flags
type Move uint32

// Move flags
const (
	FlagCapture    Move = 1 << 15
	FlagEnPassant  Move = 1 << 16
	FlagCastling   Move = 1 << 17
	FlagDoublePush Move = 1 << 18
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a quiet move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewCapture creates a capture move.
func NewCapture(from, to Square) Move {
	return NewMove(from, to) | FlagCapture
}

// NewPromotion creates a promotion, optionally capturing.
func NewPromotion(from, to Square, promo PieceType, capture bool) Move {
	m := NewMove(from, to) | Move(promo)<<12
	if capture {
		m |= FlagCapture
	}
	return m
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | FlagCapture | FlagEnPassant
}

// NewCastling creates a castling move, expressed as the king's movement.
func NewCastling(from, to Square) Move {
	return NewMove(from, to) | FlagCastling
}

// NewDoublePush creates a two-square pawn advance.
func NewDoublePush(from, to Square) Move {
	return NewMove(from, to) | FlagDoublePush
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	pt := PieceType((m >> 12) & 7)
	if pt == Pawn {
		return NoPieceType
	}
	return pt
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return (m>>12)&7 != 0
}

// IsCapture returns true if this move captures a piece (en passant included).
func (m Move) IsCapture() bool {
	return m&FlagCapture != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&FlagEnPassant != 0
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m&FlagCastling != 0
}

// IsDoublePush returns true if this is a two-square pawn advance.
func (m Move) IsDoublePush() bool {
	return m&FlagDoublePush != 0
}

// String returns the UCI form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseUCI checks the syntax of a UCI move string and splits it into its
// squares and optional promotion piece. It does not consult any position.
func ParseUCI(s string) (from, to Square, promo PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	promo = NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoSquare, NoSquare, NoPieceType, fmt.Errorf("%w: bad promotion piece %q", ErrInvalidMove, s[4])
		}
	}
	return from, to, promo, nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Strings returns the UCI text of every move, in list order.
func (ml *MoveList) Strings() []string {
	out := make([]string, ml.count)
	for i := 0; i < ml.count; i++ {
		out[i] = ml.moves[i].String()
	}
	return out
}
