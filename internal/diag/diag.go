// Package diag runs perft and compares move generation against an
// independent reference generator.
package diag

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/negachess/internal/board"
)

// Mismatch is a root move whose subtree count differs from the reference.
// A count of zero on one side means that side did not generate the move.
type Mismatch struct {
	Move      string
	Ours      uint64
	Reference uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: ours %d, reference %d", m.Move, m.Ours, m.Reference)
}

// Report is the result of a perft run.
type Report struct {
	// FEN is the position as parsed, with every field filled in.
	FEN     string
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	Divide  map[string]uint64
	// Mismatches is only filled in by Verify.
	Mismatches []Mismatch
}

// Moves returns the root moves of the report in lexical order.
func (r *Report) Moves() []string {
	return slices.Sorted(maps.Keys(r.Divide))
}

// Perft counts the move tree below fen to depth, split by root move.
func Perft(fen string, depth int) (*Report, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	divide := pos.Divide(depth)
	r := &Report{
		FEN:     pos.FEN(),
		Depth:   depth,
		Elapsed: time.Since(start),
		Divide:  divide,
	}
	if depth <= 0 {
		r.Nodes = 1
	}
	for _, n := range divide {
		r.Nodes += n
	}
	return r, nil
}

// Verify runs Perft and compares every root move against the reference
// generator.
func Verify(fen string, depth int) (*Report, error) {
	r, err := Perft(fen, depth)
	if err != nil {
		return nil, err
	}
	ref := ReferenceDivide(r.FEN, depth)

	for _, m := range slices.Sorted(maps.Keys(union(r.Divide, ref))) {
		ours, theirs := r.Divide[m], ref[m]
		if ours != theirs {
			r.Mismatches = append(r.Mismatches, Mismatch{Move: m, Ours: ours, Reference: theirs})
		}
	}
	return r, nil
}

// ReferenceDivide computes the divide counts with dragontoothmg. fen must
// carry all six fields; Verify passes the normalized form.
func ReferenceDivide(fen string, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	b := dragontoothmg.ParseFen(fen)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		result[m.String()] = referencePerft(&b, depth-1)
		unapply()
	}
	return result
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func union(a, b map[string]uint64) map[string]uint64 {
	out := maps.Clone(a)
	for k, v := range b {
		out[k] += v
	}
	return out
}
