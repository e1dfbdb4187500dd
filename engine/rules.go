package engine

// Rule predicates. Every function here is a pure boolean query: malformed
// locations, out-of-range indices and empty piles all answer false, never
// panic. Hosts are expected to simply not offer an action the predicates
// refuse.

// alternatingColor reports whether a and b have opposite colors.
func alternatingColor(a, b Card) bool { return a.IsRed() != b.IsRed() }

// sameSuit reports whether a and b share a suit.
func sameSuit(a, b Card) bool { return a.Suit() == b.Suit() }

// descendingByOne reports whether a ranks exactly one below b.
func descendingByOne(a, b Card) bool { return a.Rank()+1 == b.Rank() }

// isValidRun reports whether cards (bottom first) form a tableau run:
// every adjacent pair descending by one with alternating colors.
func isValidRun(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if !descendingByOne(cards[i], cards[i-1]) || !alternatingColor(cards[i], cards[i-1]) {
			return false
		}
	}
	return true
}

// CanStackOnTableau reports whether card may be placed on top of the given
// tableau column under the state's variant rules.
func (g *GameState) CanStackOnTableau(card Card, col int) bool {
	cfg := g.Variant.Config()
	if col < 0 || col >= int(cfg.Columns) {
		return false
	}
	c := &g.Tableau[col]
	if c.Len == 0 {
		return cfg.EmptyColumnRank == 0 || card.Rank() == cfg.EmptyColumnRank
	}
	if c.FaceUp == 0 {
		// Face-down top card (Klondike) never accepts a card.
		return false
	}
	top := c.Cards[c.Len-1]
	return descendingByOne(card, top) && alternatingColor(card, top)
}

// CanStackOnFoundation reports whether card may be placed on the given
// foundation pile: an Ace on an empty pile, otherwise same suit one rank up.
func (g *GameState) CanStackOnFoundation(card Card, idx int) bool {
	if idx < 0 || idx >= NumFoundations {
		return false
	}
	f := g.Foundations[idx]
	if f.Top == 0 {
		return card.Rank() == RankAce
	}
	return card.Suit() == f.Suit && card.Rank() == f.Top+1
}

// MaxMovableCount is the FreeCell supermove capacity:
// (empty free cells + 1) doubled once per empty tableau column, with the
// destination excluded when it is itself an empty column.
func MaxMovableCount(freeCellsEmpty, emptyColumns int, destIsEmptyColumn bool) int {
	cols := emptyColumns
	if destIsEmptyColumn && cols > 0 {
		cols--
	}
	n := freeCellsEmpty + 1
	for i := 0; i < cols; i++ {
		n *= 2
	}
	return n
}

// MaxMovable returns the longest run the current state allows to move in a
// single action onto the given destination. Variants without the supermove
// formula allow any face-up run to move whole.
func (g *GameState) MaxMovable(to Location) int {
	cfg := g.Variant.Config()
	if !cfg.SupermoveFormula {
		return MaxColumnLen
	}
	destEmpty := to.Kind == PileTableau &&
		int(to.Index) < int(cfg.Columns) &&
		g.Tableau[to.Index].Len == 0
	return MaxMovableCount(g.emptyFreeCells(), g.emptyColumns(), destEmpty)
}

// CanMove reports whether moving from → to is legal in the current state.
// This is the single legality entry point; ApplyMove re-validates with it.
func (g *GameState) CanMove(from, to Location) bool {
	cfg := g.Variant.Config()

	switch from.Kind {
	case PileStock:
		// Drawing flips stock cards onto the waste.
		return cfg.HasStock && to.Kind == PileWaste && g.StockLen > 0

	case PileWaste:
		if !cfg.HasStock || g.WasteLen == 0 {
			return false
		}
		if to.Kind == PileStock {
			// Recycling rebuilds an exhausted stock from the waste.
			return cfg.AllowWasteRedeal && g.StockLen == 0
		}
		if from.count() != 1 {
			return false
		}
		return g.canPlaceSingle(g.WasteTop(), to)

	case PileFreeCell:
		if from.Index >= cfg.FreeCells || g.FreeCells[from.Index] == EmptyCard {
			return false
		}
		if from.count() != 1 {
			return false
		}
		return g.canPlaceSingle(g.FreeCells[from.Index], to)

	case PileTableau:
		return g.canMoveFromTableau(from, to)
	}

	// Foundations and unknown kinds are never sources.
	return false
}

// canPlaceSingle checks a single-card destination (tableau, foundation or
// free cell).
func (g *GameState) canPlaceSingle(card Card, to Location) bool {
	cfg := g.Variant.Config()
	switch to.Kind {
	case PileTableau:
		return g.CanStackOnTableau(card, int(to.Index))
	case PileFoundation:
		return g.CanStackOnFoundation(card, int(to.Index))
	case PileFreeCell:
		return to.Index < cfg.FreeCells && g.FreeCells[to.Index] == EmptyCard
	}
	return false
}

func (g *GameState) canMoveFromTableau(from, to Location) bool {
	cfg := g.Variant.Config()
	if from.Index >= cfg.Columns {
		return false
	}
	col := &g.Tableau[from.Index]
	n := from.count()
	if n > col.Len || n > col.FaceUp {
		return false
	}
	run := col.Cards[col.Len-n : col.Len]
	if !isValidRun(run) {
		return false
	}
	bottom := run[0]

	switch to.Kind {
	case PileTableau:
		if to.Index == from.Index || to.Index >= cfg.Columns {
			return false
		}
		if int(n) > g.MaxMovable(to) {
			return false
		}
		return g.CanStackOnTableau(bottom, int(to.Index))
	case PileFoundation:
		return n == 1 && g.CanStackOnFoundation(bottom, int(to.Index))
	case PileFreeCell:
		return n == 1 && to.Index < cfg.FreeCells && g.FreeCells[to.Index] == EmptyCard
	}
	return false
}

// ValidDestinations returns every legal destination for the given source,
// foundations first (so hosts can prefer them), then tableau columns, then
// free cells, then the stock/waste specials.
func (g *GameState) ValidDestinations(from Location) []Location {
	cfg := g.Variant.Config()
	var out []Location
	for i := 0; i < NumFoundations; i++ {
		to := Location{Kind: PileFoundation, Index: uint8(i)}
		if g.CanMove(from, to) {
			out = append(out, to)
		}
	}
	for i := uint8(0); i < cfg.Columns; i++ {
		to := Location{Kind: PileTableau, Index: i}
		if g.CanMove(from, to) {
			out = append(out, to)
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		to := Location{Kind: PileFreeCell, Index: i}
		if g.CanMove(from, to) {
			out = append(out, to)
		}
	}
	if to := (Location{Kind: PileWaste}); g.CanMove(from, to) {
		out = append(out, to)
	}
	if to := (Location{Kind: PileStock}); g.CanMove(from, to) {
		out = append(out, to)
	}
	return out
}
