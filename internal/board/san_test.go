package board

import (
	"errors"
	"slices"
	"testing"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5d6", "exd6"},
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
		{"4k3/8/8/R7/8/8/4K3/R7 w - - 0 1", "a1a3", "R1a3"},
		{"6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8#"},
		{"4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"4k3/8/8/N7/8/8/8/N3K3 w - - 0 1", "a1b3", "N1b3"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			m, err := pos.FindMove(tc.move)
			if err != nil {
				t.Fatalf("FindMove(%s): %v", tc.move, err)
			}
			if got := pos.SAN(m); got != tc.want {
				t.Errorf("SAN(%s) = %q, want %q", tc.move, got, tc.want)
			}

			parsed, err := pos.ParseSAN(tc.want)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.want, err)
			}
			if parsed != m {
				t.Errorf("ParseSAN(%q) = %v, want %v", tc.want, parsed, m)
			}
		})
	}
}

func TestParseSANErrors(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"", "e5", "Ke2", "O-O", "Nf6", "e8=K"} {
		if _, err := pos.ParseSAN(s); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseSAN(%q) error = %v, want ErrInvalidMove", s, err)
		}
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	var moves []Move
	cur := pos
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		m, err := cur.FindMove(uci)
		if err != nil {
			t.Fatalf("FindMove(%s): %v", uci, err)
		}
		moves = append(moves, m)
		cur = cur.Apply(m)
	}

	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	if got := MovesToSAN(pos, moves); !slices.Equal(got, want) {
		t.Errorf("MovesToSAN = %v, want %v", got, want)
	}
}
