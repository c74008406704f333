package board

import (
	"fmt"
	"strings"
)

// SAN converts a legal move to Standard Algebraic Notation.
func (p *Position) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(p.disambiguation(m, pt))
		}

		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	next := p.Apply(m)
	if next.IsCheckmate() {
		sb.WriteByte('#')
	} else if next.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func (p *Position) disambiguation(m Move, pt PieceType) string {
	from := m.From()
	to := m.To()
	pieces := p.pieces[p.sideToMove][pt]

	var candidates []Square
	legal := p.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		other := legal.Get(i)
		if other.To() != to || other.From() == from {
			continue
		}
		if pieces.IsSet(other.From()) {
			candidates = append(candidates, other.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN resolves a SAN string against the legal moves of the position.
func (p *Position) ParseSAN(s string) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	legal := p.LegalMoves()

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) == 3
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			if m.IsCastling() && (m.To() > m.From()) == kingSide {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%w: castling %q not available", ErrInvalidMove, s)
	}

	orig := s
	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, orig)
		}
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: bad promotion in %q", ErrInvalidMove, orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		}
		if pt != Pawn {
			s = s[1:]
		}
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, orig, err)
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			fileHint = int(c - 'a')
		case c >= '1' && c <= '8':
			rankHint = int(c - '1')
		}
	}

	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.To() != dest || m.IsCastling() {
			continue
		}
		from := m.From()
		if p.PieceAt(from).Type() != pt {
			continue
		}
		if fileHint >= 0 && from.File() != fileHint {
			continue
		}
		if rankHint >= 0 && from.Rank() != rankHint {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.Promotion() != promo {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: %q is not legal in %s", ErrInvalidMove, orig, p.FEN())
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos Position, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = pos.SAN(m)
		pos = pos.Apply(m)
	}
	return result
}
