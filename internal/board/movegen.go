package board

// Generation order matters to callers: the search walks moves exactly as they
// are emitted and keeps the first move reaching the best score. Pieces are
// visited pawns, knights, bishops, rooks, queens, king, each in ascending
// square order, and every piece emits its targets in ascending square order
// with captures and quiet moves mixed. A pawn emits its push, its double push,
// then its captures (en passant included). Castling comes last.

var (
	promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}
	pawnStartRank  = [2]Bitboard{Rank2, Rank7}
	promotionRank  = [2]Bitboard{Rank8, Rank1}
)

// PseudoLegalMoves generates all pseudo-legal moves. Moves may leave the
// mover's king attacked; see LegalMoves.
func (p *Position) PseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	us := p.sideToMove
	p.generatePawnMoves(ml, us)
	for pt := Knight; pt <= King; pt++ {
		p.generatePieceMoves(ml, pt, us)
	}
	p.generateCastlingMoves(ml, us)
	return ml
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color) {
	empty := ^p.allOccupied
	push := Bitboard.North
	if us == Black {
		push = Bitboard.South
	}
	ep := p.enPassantTarget(us)
	targets := p.occupied[us.Other()] | ep

	pawns := p.pieces[us][Pawn]
	for pawns != 0 {
		from := pawns.PopLSB()
		fromBB := SquareBB(from)

		if one := push(fromBB) & empty; one != 0 {
			to := one.LSB()
			if one&promotionRank[us] != 0 {
				addPromotions(ml, from, to, false)
			} else {
				ml.Add(NewMove(from, to))
			}
			if two := push(one) & empty; two != 0 && fromBB&pawnStartRank[us] != 0 {
				ml.Add(NewDoublePush(from, two.LSB()))
			}
		}

		captures := PawnAttacks(from, us) & targets
		for captures != 0 {
			to := captures.PopLSB()
			switch {
			case ep.IsSet(to):
				ml.Add(NewEnPassant(from, to))
			case SquareBB(to)&promotionRank[us] != 0:
				addPromotions(ml, from, to, true)
			default:
				ml.Add(NewCapture(from, to))
			}
		}
	}
}

// generatePieceMoves adds the moves of every piece of type pt, which must
// not be a pawn.
func (p *Position) generatePieceMoves(ml *MoveList, pt PieceType, us Color) {
	enemies := p.occupied[us.Other()]

	pieces := p.pieces[us][pt]
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := pieceAttacks(pt, from, p.allOccupied) &^ p.occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			if enemies.IsSet(to) {
				ml.Add(NewCapture(from, to))
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}
}

// enPassantTarget returns the en passant square as a bitboard when a capture
// onto it is possible: it must be empty, sit on the sixth rank from the
// mover's side, and have an enemy pawn directly behind it.
func (p *Position) enPassantTarget(us Color) Bitboard {
	ep := p.enPassant
	if ep == NoSquare || !p.IsEmpty(ep) || ep.RelativeRank(us) != 5 {
		return Empty
	}

	victim := SquareBB(ep).South()
	if us == Black {
		victim = SquareBB(ep).North()
	}
	if p.pieces[us.Other()][Pawn]&victim == 0 {
		return Empty
	}
	return SquareBB(ep)
}

// addPromotions adds all four promotion moves, queen first.
func addPromotions(ml *MoveList, from, to Square, capture bool) {
	for _, pt := range promotionOrder {
		ml.Add(NewPromotion(from, to, pt, capture))
	}
}

// castlingPath describes one castling move: the squares that must be empty
// and the squares the king touches, which must not be attacked.
type castlingPath struct {
	right    CastlingRights
	king     Square
	rook     Square
	kingTo   Square
	between  Bitboard
	kingPath [3]Square
}

var castlingPaths = [2][2]castlingPath{
	White: {
		{WhiteKingSideCastle, E1, H1, G1, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}},
		{WhiteQueenSideCastle, E1, A1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingSideCastle, E8, H8, G8, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}},
		{BlackQueenSideCastle, E8, A8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}},
	},
}

// generateCastlingMoves generates castling moves, kingside first.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	for _, cp := range castlingPaths[us] {
		if p.castlingRights&cp.right == 0 {
			continue
		}
		if p.pieces[us][King]&SquareBB(cp.king) == 0 || p.pieces[us][Rook]&SquareBB(cp.rook) == 0 {
			continue
		}
		if p.allOccupied&cp.between != 0 {
			continue
		}
		safe := true
		for _, sq := range cp.kingPath {
			if p.IsSquareAttacked(sq, them) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(NewCastling(cp.king, cp.kingTo))
		}
	}
}
