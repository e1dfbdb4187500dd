package engine

// IsWon reports whether all four foundations are complete (Ace through
// King of each suit). Hosts poll this after every successful move.
func (g *GameState) IsWon() bool {
	for _, f := range g.Foundations {
		if f.Top != RankKing {
			return false
		}
	}
	return true
}

// HasLegalMoves reports whether any legal move exists from the current
// state. In a won state every pile outside the foundations is empty, so
// this is always false once IsWon holds.
func (g *GameState) HasLegalMoves() bool {
	cfg := g.Variant.Config()

	if cfg.HasStock {
		if g.CanMove(Location{Kind: PileStock}, Location{Kind: PileWaste}) {
			return true
		}
		if g.CanMove(Location{Kind: PileWaste}, Location{Kind: PileStock}) {
			return true
		}
		if len(g.ValidDestinations(Location{Kind: PileWaste})) > 0 {
			return true
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		if len(g.ValidDestinations(Location{Kind: PileFreeCell, Index: i})) > 0 {
			return true
		}
	}
	for i := uint8(0); i < cfg.Columns; i++ {
		// Single-card moves do not subsume supermoves: with no spare cells
		// or columns, a run can sometimes move whole when its top card has
		// nowhere to go alone. Check every movable run length.
		limit := g.Tableau[i].FaceUp
		for n := uint8(1); n <= limit; n++ {
			from := Location{Kind: PileTableau, Index: i, Count: n}
			if len(g.ValidDestinations(from)) > 0 {
				return true
			}
		}
	}
	return false
}
