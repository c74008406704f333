package board

import "sync"

// attackTables holds the step-piece attack sets. They depend only on the
// square index, so one copy serves every goroutine once built.
type attackTables struct {
	knight [64]Bitboard
	king   [64]Bitboard
	pawn   [2][64]Bitboard // [Color][Square] capture targets
}

var tables = sync.OnceValue(buildAttackTables)

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookRays    = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopRays  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func buildAttackTables() *attackTables {
	t := &attackTables{}
	for sq := A1; sq <= H8; sq++ {
		t.knight[sq] = stepAttacks(sq, &knightSteps)
		t.king[sq] = stepAttacks(sq, &kingSteps)

		bb := SquareBB(sq)
		t.pawn[White][sq] = bb.NorthEast() | bb.NorthWest()
		t.pawn[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
	return t
}

func stepAttacks(sq Square, steps *[8][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range steps {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			attacks |= SquareBB(NewSquare(f, r))
		}
	}
	return attacks
}

// rayAttacks marches along each ray until it leaves the board or hits an
// occupied square, which is included.
func rayAttacks(sq Square, occupied Bitboard, rays *[4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range rays {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			bb := SquareBB(NewSquare(f, r))
			attacks |= bb
			if occupied&bb != 0 {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return tables().knight[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return tables().king[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return tables().pawn[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, &bishopRays)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, &rookRays)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// pieceAttacks returns the attack set of a non-pawn piece standing on sq.
func pieceAttacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return KingAttacks(sq)
	}
	return Empty
}

// AttackersByColor returns a bitboard of pieces of the given color attacking a square.
func (p *Position) AttackersByColor(sq Square, c Color) Bitboard {
	occupied := p.allOccupied
	pieces := &p.pieces[c]
	return (PawnAttacks(sq, c.Other()) & pieces[Pawn]) |
		(KnightAttacks(sq) & pieces[Knight]) |
		(KingAttacks(sq) & pieces[King]) |
		(BishopAttacks(sq, occupied) & (pieces[Bishop] | pieces[Queen])) |
		(RookAttacks(sq, occupied) & (pieces[Rook] | pieces[Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
// Castling safety and the legality filter both rely on it.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor) != 0
}
