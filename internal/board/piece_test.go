package board

import "testing"

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		ch    byte
		pt    PieceType
		color Color
	}{
		{'P', Pawn, White},
		{'N', Knight, White},
		{'K', King, White},
		{'b', Bishop, Black},
		{'r', Rook, Black},
		{'q', Queen, Black},
	}

	for _, tc := range tests {
		t.Run(string(tc.ch), func(t *testing.T) {
			p := PieceFromChar(tc.ch)
			if p != NewPiece(tc.pt, tc.color) {
				t.Fatalf("PieceFromChar(%c) = %d, want %d", tc.ch, p, NewPiece(tc.pt, tc.color))
			}
			if p.Type() != tc.pt || p.Color() != tc.color {
				t.Errorf("piece %v has type %d color %v", p, p.Type(), p.Color())
			}
			if p.String() != string(tc.ch) {
				t.Errorf("String = %q, want %q", p.String(), string(tc.ch))
			}
		})
	}

	for _, ch := range []byte{'x', '.', '1', 0} {
		if p := PieceFromChar(ch); p != NoPiece {
			t.Errorf("PieceFromChar(%q) = %v, want NoPiece", ch, p)
		}
	}
	if got := NewPiece(King, NoColor); got != NoPiece {
		t.Errorf("NewPiece(King, NoColor) = %v", got)
	}
	if got := Queen.Char(); got != 'q' {
		t.Errorf("Queen.Char() = %c", got)
	}
}

func TestSquareGeometry(t *testing.T) {
	tests := []struct {
		sq         Square
		name       string
		file, rank int
		blackRank  int
	}{
		{A1, "a1", 0, 0, 7},
		{E4, "e4", 4, 3, 4},
		{NewSquare(3, 5), "d6", 3, 5, 2},
		{H8, "h8", 7, 7, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.sq.String() != tc.name {
				t.Errorf("String = %q", tc.sq.String())
			}
			if tc.sq.File() != tc.file || tc.sq.Rank() != tc.rank {
				t.Errorf("file %d rank %d, want %d %d", tc.sq.File(), tc.sq.Rank(), tc.file, tc.rank)
			}
			if got := tc.sq.RelativeRank(White); got != tc.rank {
				t.Errorf("RelativeRank(White) = %d", got)
			}
			if got := tc.sq.RelativeRank(Black); got != tc.blackRank {
				t.Errorf("RelativeRank(Black) = %d", got)
			}
		})
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare prints %q", NoSquare.String())
	}
}
