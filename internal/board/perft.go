package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		next := p.Apply(moves.Get(i))
		nodes += next.Perft(depth - 1)
	}
	return nodes
}

// Divide returns the perft count below each legal root move, keyed by UCI.
func (p *Position) Divide(depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	moves := p.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next := p.Apply(m)
		result[m.String()] = next.Perft(depth - 1)
	}
	return result
}
