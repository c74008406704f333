package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
		"4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q) error: %v", fen, err)
			}
			if got := pos.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFENDefaults(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if pos.CastlingRights() != NoCastling {
		t.Errorf("castling = %v, want none", pos.CastlingRights())
	}
	if pos.EnPassant() != NoSquare {
		t.Errorf("en passant = %v, want none", pos.EnPassant())
	}
	if pos.HalfMoveClock() != 0 || pos.FullMoveNumber() != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", pos.HalfMoveClock(), pos.FullMoveNumber())
	}
	if got, want := pos.FEN(), "4k3/8/8/8/8/8/8/4K3 w - - 0 1"; got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestParseFENPermissiveFields(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"side token other than w is black", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "4k3/8/8/8/8/8/8/4K3 b - - 0 1"},
		{"unknown castling letters ignored", "r3k2r/8/8/8/8/8/8/R3K2R w KzQ - 0 1", "r3k2r/8/8/8/8/8/8/R3K2R w KQ - 0 1"},
		{"invalid en passant ignored", "4k3/8/8/8/8/8/8/4K3 w - z9 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"unparsable clocks use defaults", "4k3/8/8/8/8/8/8/4K3 w - - x y", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN error: %v", err)
			}
			if got := pos.FEN(); got != tc.want {
				t.Errorf("FEN() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"single field", "4k3/8/8/8/8/8/8/4K3"},
		{"no black king", "8/8/8/3p4/4P3/8/8/4K3 w - - 0 1"},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
		{"unknown piece letter", "4k3/8/8/8/8/8/8/4X3 w - - 0 1"},
		{"nine ranks", "4k3/8/8/8/8/8/8/4K3/p w - - 0 1"},
		{"seven ranks", "4k3/8/8/8/8/8/4K3 w - - 0 1"},
		{"rank overflows into the next", "k7/PPPPPPPPP/8/8/8/8/8/K7 w - - 0 1"},
		{"digits overflow a rank", "4k3/8/8/8/8/54/8/4K3 w - - 0 1"},
		{"short rank", "4k/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"empty rank", "4k3//8/8/8/8/8/4K3 w - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want error", tc.fen)
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("error %v does not wrap ErrInvalidFEN", err)
			}
		})
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
		ok   bool
	}{
		{"a1", A1, true},
		{"h8", H8, true},
		{"e4", E4, true},
		{"i1", NoSquare, false},
		{"a9", NoSquare, false},
		{"e", NoSquare, false},
	}

	for _, tc := range tests {
		got, err := ParseSquare(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseSquare(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error %v does not wrap ErrInvalidSquare", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
