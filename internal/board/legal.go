package board

import "fmt"

// IsLegal reports whether a pseudo-legal move leaves the mover's king safe.
// A move landing on the enemy king is never legal.
func (p *Position) IsLegal(m Move) bool {
	us := p.sideToMove
	if p.pieces[us.Other()][King]&SquareBB(m.To()) != 0 {
		return false
	}

	next := p.Apply(m)
	ksq := next.KingSquare(us)
	if ksq == NoSquare {
		return false
	}
	return !next.IsSquareAttacked(ksq, us.Other())
}

// LegalMoves generates all legal moves for the position, in generator order.
func (p *Position) LegalMoves() *MoveList {
	pseudo := p.PseudoLegalMoves()
	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		if m := pseudo.Get(i); p.IsLegal(m) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.PseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		if p.IsLegal(pseudo.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// FindMove resolves UCI text against the legal moves of the position. The
// promotion letter must match exactly.
func (p *Position) FindMove(uci string) (Move, error) {
	from, to, promo, err := ParseUCI(uci)
	if err != nil {
		return NoMove, err
	}

	legal := p.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s is not legal in %s", ErrInvalidMove, uci, p.FEN())
}
