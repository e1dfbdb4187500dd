package engine

// FindSafeAutoMove returns the next card that can be sent to its foundation
// without risking a card a later manual move might still need: only cards
// ranking at most two above the lowest foundation top qualify.
//
// The two-rank safety margin is inherited behavior from long-standing
// solitaire implementations. It is a heuristic, not a proven-safe rule;
// keep it as documented behavior rather than an invariant.
func (g *GameState) FindSafeAutoMove() (Move, bool) {
	cfg := g.Variant.Config()
	tops := g.foundationTops()
	minTop := tops[0]
	for _, t := range tops[1:] {
		if t < minTop {
			minTop = t
		}
	}
	limit := minTop + 2

	try := func(card Card, from Location) (Move, bool) {
		if card == EmptyCard || card.Rank() > limit {
			return Move{}, false
		}
		for i := 0; i < NumFoundations; i++ {
			to := Location{Kind: PileFoundation, Index: uint8(i)}
			if g.CanMove(from, to) {
				return Move{From: from, To: to}, true
			}
		}
		return Move{}, false
	}

	for i := uint8(0); i < cfg.FreeCells; i++ {
		if m, ok := try(g.FreeCells[i], Location{Kind: PileFreeCell, Index: i}); ok {
			return m, true
		}
	}
	if cfg.HasStock {
		if m, ok := try(g.WasteTop(), Location{Kind: PileWaste}); ok {
			return m, true
		}
	}
	for i := uint8(0); i < cfg.Columns; i++ {
		if m, ok := try(g.Tableau[i].Top(), Location{Kind: PileTableau, Index: i}); ok {
			return m, true
		}
	}
	return Move{}, false
}

// LowestPlayableCards returns, per suit, the next card its foundation
// needs (rank one above the current top). Completed suits are skipped.
// Used for hint highlighting only, never for move validation.
func (g *GameState) LowestPlayableCards() []Card {
	tops := g.foundationTops()
	out := make([]Card, 0, NumFoundations)
	for suit := uint8(0); suit < 4; suit++ {
		if tops[suit] < RankKing {
			out = append(out, NewCard(suit, tops[suit]+1))
		}
	}
	return out
}
