package engine

// PileKind tags which pile a Location refers to.
type PileKind uint8

const (
	PileTableau PileKind = iota
	PileFreeCell
	PileFoundation
	PileStock
	PileWaste
)

func (k PileKind) String() string {
	switch k {
	case PileTableau:
		return "tableau"
	case PileFreeCell:
		return "freeCell"
	case PileFoundation:
		return "foundation"
	case PileStock:
		return "stock"
	case PileWaste:
		return "waste"
	}
	return "unknown"
}

// Location references a pile. For tableau sources, Count is how many cards
// from the top of the column move together; 0 is treated as 1.
type Location struct {
	Kind  PileKind
	Index uint8
	Count uint8
}

func (l Location) count() uint8 {
	if l.Count == 0 {
		return 1
	}
	return l.Count
}

// Move pairs a source and destination Location.
type Move struct {
	From Location
	To   Location
}

// Column is one tableau pile, bottom card first. FaceUp counts the trailing
// face-up cards; it equals Len in FreeCell and only ever grows through
// explicit reveals in Klondike.
type Column struct {
	Cards  [MaxColumnLen]Card
	Len    uint8
	FaceUp uint8
}

// Top returns the column's top card, or EmptyCard.
func (c *Column) Top() Card {
	if c.Len == 0 {
		return EmptyCard
	}
	return c.Cards[c.Len-1]
}

// Foundation is one suit pile. The ascending-run invariant means the pile is
// fully described by its suit and top rank; Top 0 is an empty foundation.
type Foundation struct {
	Suit uint8
	Top  uint8
}

// GameState is the complete, self-contained state of one solitaire game.
// It is a flat value type with no pointers or slices, so plain assignment is
// a deep copy. That is what makes ApplyMove's never-mutate contract and
// host-side undo cheap.
type GameState struct {
	Variant     Variant
	Tableau     [MaxColumns]Column
	FreeCells   [NumFreeCells]Card
	Foundations [NumFoundations]Foundation
	Stock       [MaxStockLen]Card // top of the stock is the last element
	StockLen    uint8
	Waste       [MaxStockLen]Card
	WasteLen    uint8
	Seed        int64
	MoveCount   uint32
}

// Snapshot is a complete value-copy of GameState. The engine keeps no
// history; hosts stack Snapshots for undo/redo.
type Snapshot GameState

// Save returns a snapshot of the current state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }

// WasteTop returns the top card of the waste pile, or EmptyCard.
func (g *GameState) WasteTop() Card {
	if g.WasteLen == 0 {
		return EmptyCard
	}
	return g.Waste[g.WasteLen-1]
}

// emptyFreeCells counts unoccupied free cell slots.
func (g *GameState) emptyFreeCells() int {
	cfg := g.Variant.Config()
	n := 0
	for i := uint8(0); i < cfg.FreeCells; i++ {
		if g.FreeCells[i] == EmptyCard {
			n++
		}
	}
	return n
}

// emptyColumns counts empty tableau columns.
func (g *GameState) emptyColumns() int {
	cfg := g.Variant.Config()
	n := 0
	for i := uint8(0); i < cfg.Columns; i++ {
		if g.Tableau[i].Len == 0 {
			n++
		}
	}
	return n
}

// foundationTops returns the top rank per suit (0 when that suit has no
// foundation started yet).
func (g *GameState) foundationTops() [4]uint8 {
	var tops [4]uint8
	for _, f := range g.Foundations {
		if f.Top > 0 {
			tops[f.Suit] = f.Top
		}
	}
	return tops
}
