package board

// rookCastleSquares maps a castling king destination to the rook's home and
// target squares.
var rookCastleSquares = map[Square][2]Square{
	G1: {H1, F1},
	C1: {A1, D1},
	G8: {H8, F8},
	C8: {A8, D8},
}

// castlingRightsMask[sq] is the set of rights that survive a piece leaving or
// landing on sq.
var castlingRightsMask = func() [64]CastlingRights {
	var mask [64]CastlingRights
	for sq := range mask {
		mask[sq] = AllCastling
	}
	mask[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	mask[H1] &^= WhiteKingSideCastle
	mask[A1] &^= WhiteQueenSideCastle
	mask[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	mask[H8] &^= BlackKingSideCastle
	mask[A8] &^= BlackQueenSideCastle
	return mask
}()

// Apply returns the position reached by playing m. The receiver is not
// modified. m is assumed to be pseudo-legal for p; Apply does not validate it.
func (p *Position) Apply(m Move) Position {
	next := *p
	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	fromBB, toBB := SquareBB(from), SquareBB(to)

	moved := p.PieceAt(from)
	pt := moved.Type()
	if pt == NoPieceType {
		return next
	}

	captured := false
	if m.IsEnPassant() {
		victim := Square(int(to) - 8)
		if us == Black {
			victim = Square(int(to) + 8)
		}
		next.pieces[them][Pawn] &^= SquareBB(victim)
		captured = true
	} else if p.occupied[them]&toBB != 0 {
		for t := Pawn; t <= King; t++ {
			next.pieces[them][t] &^= toBB
		}
		captured = true
	}

	next.pieces[us][pt] &^= fromBB
	if promo := m.Promotion(); promo != NoPieceType && pt == Pawn {
		next.pieces[us][promo] |= toBB
	} else {
		next.pieces[us][pt] |= toBB
	}

	if m.IsCastling() {
		if rook, ok := rookCastleSquares[to]; ok {
			next.pieces[us][Rook] &^= SquareBB(rook[0])
			next.pieces[us][Rook] |= SquareBB(rook[1])
		}
	}

	next.updateOccupied()

	next.sideToMove = them
	if us == Black {
		next.fullMoveNumber++
	}
	if pt == Pawn || captured {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock++
	}

	next.enPassant = NoSquare
	if m.IsDoublePush() || (pt == Pawn && abs(int(to)-int(from)) == 16) {
		next.enPassant = Square((int(from) + int(to)) / 2)
	}

	next.castlingRights &= castlingRightsMask[from] & castlingRightsMask[to]

	return next
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
