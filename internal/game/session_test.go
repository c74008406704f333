package game

import (
	"errors"
	"slices"
	"testing"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
)

func newTestSession(opts ...Option) *Session {
	return NewSession(engine.New(engine.DefaultConfig()), opts...)
}

// silentEngine wraps a real engine but never chooses a move.
type silentEngine struct {
	*engine.Engine
}

func (silentEngine) ChooseMove(string, int) string { return "" }

func TestNewSession(t *testing.T) {
	s := newTestSession()

	if s.FEN() != board.StartFEN {
		t.Errorf("FEN = %q, want start position", s.FEN())
	}
	if s.SideToMove() != board.White {
		t.Errorf("SideToMove = %v, want White", s.SideToMove())
	}
	if s.FullMoveNumber() != 1 {
		t.Errorf("FullMoveNumber = %d, want 1", s.FullMoveNumber())
	}
	if got := len(s.LegalMoves()); got != 20 {
		t.Errorf("LegalMoves has %d moves, want 20", got)
	}
	if s.Status() != Ongoing {
		t.Errorf("Status = %v, want ongoing", s.Status())
	}
}

func TestPlayAndUndo(t *testing.T) {
	s := newTestSession()

	for _, m := range []string{"e2e4", "e7e5", "g1f3"} {
		if err := s.Play(m); err != nil {
			t.Fatalf("Play(%s): %v", m, err)
		}
	}

	if got, want := s.Moves(), []string{"e2e4", "e7e5", "g1f3"}; !slices.Equal(got, want) {
		t.Errorf("Moves = %v, want %v", got, want)
	}
	if got := len(s.History()); got != 4 {
		t.Errorf("History has %d entries, want 4", got)
	}
	if s.SideToMove() != board.Black || s.FullMoveNumber() != 2 {
		t.Errorf("after 3 plies: side %v move %d", s.SideToMove(), s.FullMoveNumber())
	}
	if got, want := s.PGN(), "1. e4 e5 2. Nf3 *"; got != want {
		t.Errorf("PGN = %q, want %q", got, want)
	}

	for i := 0; i < 3; i++ {
		if !s.Undo() {
			t.Fatalf("Undo %d returned false", i+1)
		}
	}
	if s.Undo() {
		t.Error("Undo at start of game returned true")
	}
	if s.FEN() != board.StartFEN || len(s.Moves()) != 0 {
		t.Errorf("after undo: FEN %q moves %v", s.FEN(), s.Moves())
	}
}

func TestPlayIllegal(t *testing.T) {
	s := newTestSession()

	for _, m := range []string{"", "e2", "e2e5", "e7e5", "xxxx"} {
		if err := s.Play(m); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Play(%q) error = %v, want ErrIllegalMove", m, err)
		}
	}
	if len(s.History()) != 1 {
		t.Errorf("illegal moves changed history: %v", s.History())
	}
}

func TestPlayPromotionDefaultsToQueen(t *testing.T) {
	s := newTestSession()
	if err := s.LoadFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}

	if err := s.Play("a7a8"); err != nil {
		t.Fatalf("Play(a7a8): %v", err)
	}
	if got := s.Moves(); !slices.Equal(got, []string{"a7a8q"}) {
		t.Errorf("Moves = %v, want [a7a8q]", got)
	}
	if got, want := s.SANMoves(), []string{"a8=Q+"}; !slices.Equal(got, want) {
		t.Errorf("SANMoves = %v, want %v", got, want)
	}
}

func TestPlaySAN(t *testing.T) {
	s := newTestSession()

	for _, san := range []string{"e4", "e5", "Nf3", "Nc6"} {
		if err := s.PlaySAN(san); err != nil {
			t.Fatalf("PlaySAN(%s): %v", san, err)
		}
	}
	if got, want := s.Moves(), []string{"e2e4", "e7e5", "g1f3", "b8c6"}; !slices.Equal(got, want) {
		t.Errorf("Moves = %v, want %v", got, want)
	}
	if err := s.PlaySAN("Qh5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("PlaySAN(Qh5) error = %v, want ErrIllegalMove", err)
	}
}

func TestEngineMove(t *testing.T) {
	s := newTestSession(WithDepth(2))
	if err := s.LoadFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}

	if !s.EngineToMove() {
		t.Error("EngineToMove = false with engine playing white")
	}
	move, err := s.EngineMove()
	if err != nil {
		t.Fatalf("EngineMove: %v", err)
	}
	if move != "e4d5" {
		t.Errorf("EngineMove = %s, want e4d5", move)
	}
	if s.EngineToMove() {
		t.Error("EngineToMove = true with black to move")
	}
}

func TestEngineMoveNoMove(t *testing.T) {
	s := NewSession(silentEngine{engine.New(engine.DefaultConfig())})
	if _, err := s.EngineMove(); !errors.Is(err, ErrNoMove) {
		t.Errorf("EngineMove error = %v, want ErrNoMove", err)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		fen    string
		status Status
		result string
	}{
		{board.StartFEN, Ongoing, "*"},
		{"R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Checkmate, "1-0"},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate, "1/2-1/2"},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			s := newTestSession()
			if err := s.LoadFEN(tc.fen); err != nil {
				t.Fatal(err)
			}
			if got := s.Status(); got != tc.status {
				t.Errorf("Status = %v, want %v", got, tc.status)
			}
			if got := s.Result(); got != tc.result {
				t.Errorf("Result = %q, want %q", got, tc.result)
			}
			if tc.status != Ongoing {
				if _, err := s.EngineMove(); !errors.Is(err, ErrGameOver) {
					t.Errorf("EngineMove error = %v, want ErrGameOver", err)
				}
				if err := s.Play("h8g8"); !errors.Is(err, ErrGameOver) {
					t.Errorf("Play error = %v, want ErrGameOver", err)
				}
			}
		})
	}
}

func TestLoadFENInvalid(t *testing.T) {
	s := newTestSession()
	_ = s.Play("e2e4")

	if err := s.LoadFEN("8/8/8/3p4/4P3/8/8/4K3 w - - 0 1"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("LoadFEN error = %v, want ErrInvalidFEN", err)
	}
	if len(s.Moves()) != 1 {
		t.Error("failed LoadFEN reset the game")
	}
}

func TestPGNFromBlack(t *testing.T) {
	s := newTestSession()
	if err := s.LoadFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"); err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"e7e5", "g1f3"} {
		if err := s.Play(m); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := s.PGN(), "1... e5 2. Nf3 *"; got != want {
		t.Errorf("PGN = %q, want %q", got, want)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestSession()
	for _, m := range []string{"e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6", "h5f7"} {
		if err := s.Play(m); err != nil {
			t.Fatalf("Play(%s): %v", m, err)
		}
	}
	rec := s.Snapshot()
	if rec.Result != "1-0" {
		t.Errorf("Result = %q, want 1-0", rec.Result)
	}
	if want := "1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0"; rec.PGN != want {
		t.Errorf("PGN = %q, want %q", rec.PGN, want)
	}

	restored := newTestSession()
	if err := restored.Restore(rec); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.FEN() != s.FEN() {
		t.Errorf("restored FEN = %q, want %q", restored.FEN(), s.FEN())
	}
	if !slices.Equal(restored.History(), s.History()) {
		t.Error("restored history differs")
	}

	bad := rec
	bad.Moves = append(slices.Clone(rec.Moves[:2]), "e1e3")
	if err := restored.Restore(bad); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Restore(bad) error = %v, want ErrIllegalMove", err)
	}
	if restored.FEN() != s.FEN() {
		t.Error("failed Restore modified the session")
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestSession()
	if err := s.LoadFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	scores := s.Analyze(2)
	if len(scores) != len(s.LegalMoves()) {
		t.Fatalf("Analyze returned %d scores for %d moves", len(scores), len(s.LegalMoves()))
	}
	for _, sc := range scores {
		if sc.UCI == "e4d5" && sc.Score != 100 {
			t.Errorf("e4d5 score = %d, want 100", sc.Score)
		}
	}
}
