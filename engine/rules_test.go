package engine

import "testing"

func TestRunPrimitives(t *testing.T) {
	sevenH := mustCard(t, "7H")
	eightS := mustCard(t, "8S")
	eightH := mustCard(t, "8H")

	if !descendingByOne(sevenH, eightS) {
		t.Error("7H should rank one below 8S")
	}
	if descendingByOne(eightS, sevenH) {
		t.Error("8S does not rank one below 7H")
	}
	if !alternatingColor(sevenH, eightS) {
		t.Error("7H/8S should alternate colors")
	}
	if alternatingColor(sevenH, eightH) {
		t.Error("7H/8H are both red")
	}
	if !sameSuit(sevenH, eightH) {
		t.Error("7H/8H share a suit")
	}
}

func TestIsValidRun(t *testing.T) {
	run := []Card{mustCard(t, "9S"), mustCard(t, "8H"), mustCard(t, "7S")}
	if !isValidRun(run) {
		t.Error("9S 8H 7S should be a valid run")
	}
	broken := []Card{mustCard(t, "9S"), mustCard(t, "8S")}
	if isValidRun(broken) {
		t.Error("9S 8S is same-color, not a valid run")
	}
	gap := []Card{mustCard(t, "9S"), mustCard(t, "7H")}
	if isValidRun(gap) {
		t.Error("9S 7H skips a rank, not a valid run")
	}
}

// TestStackOnTableauFreeCell covers the red-on-black descending rule and
// the any-card-on-empty-column rule.
func TestStackOnTableauFreeCell(t *testing.T) {
	g := emptyState(VariantFreeCell)
	pushFaceUp(&g, 0, mustCard(t, "8S"))
	pushFaceUp(&g, 1, mustCard(t, "8H"))

	if !g.CanStackOnTableau(mustCard(t, "7H"), 0) {
		t.Error("7H on 8S should stack")
	}
	if g.CanStackOnTableau(mustCard(t, "7H"), 1) {
		t.Error("7H on 8H is same color, must not stack")
	}
	if g.CanStackOnTableau(mustCard(t, "6H"), 0) {
		t.Error("6H on 8S skips a rank, must not stack")
	}
	// Any card may start an empty FreeCell column.
	if !g.CanStackOnTableau(mustCard(t, "4D"), 2) {
		t.Error("any card should be allowed on an empty FreeCell column")
	}
	if g.CanStackOnTableau(mustCard(t, "4D"), 99) {
		t.Error("out-of-range column must answer false")
	}
}

func TestStackOnTableauKlondike(t *testing.T) {
	g := emptyState(VariantKlondike)
	// Empty columns accept Kings only.
	if g.CanStackOnTableau(mustCard(t, "QD"), 0) {
		t.Error("QD on an empty Klondike column must not stack")
	}
	if !g.CanStackOnTableau(mustCard(t, "KD"), 0) {
		t.Error("KD should start an empty Klondike column")
	}
	// A face-down top card accepts nothing.
	pushFaceDown(&g, 1, mustCard(t, "8S"))
	if g.CanStackOnTableau(mustCard(t, "7H"), 1) {
		t.Error("face-down 8S must not accept 7H")
	}
}

// TestStackOnFoundation covers the Ace-first and same-suit ascending rules.
func TestStackOnFoundation(t *testing.T) {
	g := emptyState(VariantFreeCell)

	if !g.CanStackOnFoundation(mustCard(t, "AS"), 0) {
		t.Error("AS should start an empty foundation")
	}
	if g.CanStackOnFoundation(mustCard(t, "2S"), 0) {
		t.Error("2S must not start an empty foundation")
	}

	g.Foundations[0] = Foundation{Suit: SuitSpades, Top: RankAce}
	if !g.CanStackOnFoundation(mustCard(t, "2S"), 0) {
		t.Error("2S should stack on the spade Ace")
	}
	if g.CanStackOnFoundation(mustCard(t, "2H"), 0) {
		t.Error("2H is the wrong suit for the spade foundation")
	}
	if g.CanStackOnFoundation(mustCard(t, "3S"), 0) {
		t.Error("3S skips the 2S")
	}
	if g.CanStackOnFoundation(mustCard(t, "2S"), -1) {
		t.Error("negative foundation index must answer false")
	}
}

// TestMaxMovableCount checks the supermove capacity formula, including the
// destination-exclusion rule for empty columns.
func TestMaxMovableCount(t *testing.T) {
	cases := []struct {
		free, empty int
		destEmpty   bool
		want        int
	}{
		{0, 0, false, 1},
		{4, 0, false, 5},
		{2, 1, false, 6},
		{2, 1, true, 3},
		{1, 2, false, 8},
		{1, 2, true, 4},
	}
	for _, tc := range cases {
		got := MaxMovableCount(tc.free, tc.empty, tc.destEmpty)
		if got != tc.want {
			t.Errorf("MaxMovableCount(%d, %d, %v) = %d, want %d",
				tc.free, tc.empty, tc.destEmpty, got, tc.want)
		}
	}
}

// supermoveState builds a FreeCell position with a 4-card run on column 0,
// a matching target on column 1, every other column occupied, and all four
// free cells full.
func supermoveState(t *testing.T) GameState {
	g := emptyState(VariantFreeCell)
	pushFaceUp(&g, 0,
		mustCard(t, "TH"), mustCard(t, "9S"), mustCard(t, "8H"), mustCard(t, "7S"))
	pushFaceUp(&g, 1, mustCard(t, "TD"))
	for col := 2; col < 8; col++ {
		pushFaceUp(&g, col, NewCard(SuitClubs, uint8(col+2)))
	}
	g.FreeCells = [NumFreeCells]Card{
		mustCard(t, "2C"), mustCard(t, "2D"), mustCard(t, "2H"), mustCard(t, "2S"),
	}
	return g
}

// TestSupermoveBound verifies that a valid run longer than the capacity
// formula allows is rejected, and becomes legal as cells free up.
func TestSupermoveBound(t *testing.T) {
	g := supermoveState(t)
	from := Location{Kind: PileTableau, Index: 0, Count: 3}
	to := Location{Kind: PileTableau, Index: 1}

	// 0 empty cells, 0 empty columns: capacity 1.
	if g.CanMove(from, to) {
		t.Error("3-card run must not move with capacity 1")
	}

	g.FreeCells[0] = EmptyCard // capacity 2
	if g.CanMove(from, to) {
		t.Error("3-card run must not move with capacity 2")
	}

	g.FreeCells[1] = EmptyCard // capacity 3
	if !g.CanMove(from, to) {
		t.Error("3-card run should move with capacity 3")
	}
}

// TestSupermoveToEmptyColumnExcludesDestination verifies the destination
// column does not count toward its own capacity.
func TestSupermoveToEmptyColumnExcludesDestination(t *testing.T) {
	g := supermoveState(t)
	g.Tableau[2] = Column{} // one empty column, the destination
	g.FreeCells[0] = EmptyCard
	g.FreeCells[1] = EmptyCard

	from := Location{Kind: PileTableau, Index: 0, Count: 3}
	to := Location{Kind: PileTableau, Index: 2}
	// 2 free cells, 1 empty column which is the destination: capacity
	// (2+1) × 2^0 = 3.
	if !g.CanMove(from, to) {
		t.Error("3-card run should fit capacity 3 onto the empty column")
	}

	from.Count = 4
	if g.CanMove(from, to) {
		t.Error("4-card request must be rejected at capacity 3")
	}
}

// TestKlondikeRunMovesWhole verifies Klondike moves any face-up run without
// the FreeCell capacity bound.
func TestKlondikeRunMovesWhole(t *testing.T) {
	g := emptyState(VariantKlondike)
	pushFaceDown(&g, 0, mustCard(t, "2C"))
	pushFaceUp(&g, 0,
		mustCard(t, "QS"), mustCard(t, "JH"), mustCard(t, "TS"), mustCard(t, "9H"))
	pushFaceUp(&g, 1, mustCard(t, "KD"))

	from := Location{Kind: PileTableau, Index: 0, Count: 4}
	to := Location{Kind: PileTableau, Index: 1}
	if !g.CanMove(from, to) {
		t.Error("4-card face-up run should move onto KD")
	}

	// The face-down card underneath may not travel with the run.
	from.Count = 5
	if g.CanMove(from, to) {
		t.Error("run including a face-down card must be rejected")
	}
}

func TestCanMoveRejectsFoundationSource(t *testing.T) {
	g := emptyState(VariantFreeCell)
	g.Foundations[0] = Foundation{Suit: SuitSpades, Top: RankFive}
	from := Location{Kind: PileFoundation, Index: 0}
	if len(g.ValidDestinations(from)) != 0 {
		t.Error("foundations must never be move sources")
	}
}

func TestValidDestinationsPrefersFoundation(t *testing.T) {
	g := emptyState(VariantFreeCell)
	pushFaceUp(&g, 0, mustCard(t, "AS"))
	dests := g.ValidDestinations(Location{Kind: PileTableau, Index: 0, Count: 1})
	if len(dests) == 0 {
		t.Fatal("AS should have destinations")
	}
	if dests[0].Kind != PileFoundation {
		t.Errorf("first destination kind = %s, want foundation", dests[0].Kind)
	}
}
