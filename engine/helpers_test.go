package engine

import "testing"

// emptyState returns a GameState of the given variant with all piles empty.
func emptyState(v Variant) GameState {
	var g GameState
	g.Variant = v
	for i := range g.FreeCells {
		g.FreeCells[i] = EmptyCard
	}
	return g
}

// pushFaceUp appends cards face-up to a tableau column.
func pushFaceUp(g *GameState, col int, cards ...Card) {
	c := &g.Tableau[col]
	for _, card := range cards {
		c.Cards[c.Len] = card
		c.Len++
		c.FaceUp++
	}
}

// pushFaceDown appends cards face-down to a tableau column (Klondike).
func pushFaceDown(g *GameState, col int, cards ...Card) {
	c := &g.Tableau[col]
	for _, card := range cards {
		c.Cards[c.Len] = card
		c.Len++
	}
}

// mustCard parses a card id or fails the test.
func mustCard(t *testing.T, id string) Card {
	t.Helper()
	c, err := ParseCard(id)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", id, err)
	}
	return c
}

// cardMultiset counts every card in every pile, with foundation piles
// expanded into their implied Ace..top runs.
func cardMultiset(g *GameState) map[Card]int {
	cfg := g.Variant.Config()
	m := make(map[Card]int)
	for i := uint8(0); i < cfg.Columns; i++ {
		for k := uint8(0); k < g.Tableau[i].Len; k++ {
			m[g.Tableau[i].Cards[k]]++
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		if g.FreeCells[i] != EmptyCard {
			m[g.FreeCells[i]]++
		}
	}
	for _, f := range g.Foundations {
		for r := RankAce; r <= f.Top; r++ {
			m[NewCard(f.Suit, r)]++
		}
	}
	for i := uint8(0); i < g.StockLen; i++ {
		m[g.Stock[i]]++
	}
	for i := uint8(0); i < g.WasteLen; i++ {
		m[g.Waste[i]]++
	}
	return m
}

// assertConserved fails unless the state holds each of the 52 cards
// exactly once.
func assertConserved(t *testing.T, g *GameState) {
	t.Helper()
	m := cardMultiset(g)
	if len(m) != DeckSize {
		t.Fatalf("state holds %d distinct cards, want %d", len(m), DeckSize)
	}
	for c, n := range m {
		if n != 1 {
			t.Fatalf("card %s appears %d times", c, n)
		}
	}
}
