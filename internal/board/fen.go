package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position.
//
// Only the board and side-to-move fields are required; castling, en passant,
// half-move clock and full-move number default to "-", "-", 0 and 1. Any side
// token other than "w" selects black, and unknown castling letters are
// ignored. The position must contain exactly one king of each color.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return Position{}, fmt.Errorf("%w: need at least 2 fields, got %d", ErrInvalidFEN, len(parts))
	}

	pos := Position{
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}

	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, err
	}

	if parts[1] == "w" {
		pos.sideToMove = White
	} else {
		pos.sideToMove = Black
	}

	if len(parts) > 2 {
		pos.castlingRights = parseCastlingRights(parts[2])
	}

	if len(parts) > 3 && parts[3] != "-" {
		if sq, err := ParseSquare(parts[3]); err == nil {
			pos.enPassant = sq
		}
	}

	if len(parts) > 4 {
		if hmc, err := strconv.Atoi(parts[4]); err == nil {
			pos.halfMoveClock = hmc
		}
	}
	if len(parts) > 5 {
		if fmn, err := strconv.Atoi(parts[5]); err == nil {
			pos.fullMoveNumber = fmn
		}
	}

	pos.updateOccupied()
	if err := pos.validate(); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	return pos, nil
}

// parsePiecePlacement reads the board field, rank 8 first. Each rank must
// describe exactly eight files.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: %d ranks in piece placement, want 8", ErrInvalidFEN, len(ranks))
	}

	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d has more than 8 files", ErrInvalidFEN, rank+1)
			}
			pos.pieces[piece.Color()][piece.Type()] |= SquareBB(NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d spans %d files, want 8", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

func parseCastlingRights(castling string) CastlingRights {
	var cr CastlingRights
	for i := 0; i < len(castling); i++ {
		switch castling[i] {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		}
	}
	return cr
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}
