package engine

import "fmt"

// Deal distributes a shuffled deck into the variant's initial layout.
// Deterministic: the deck is consumed front-to-back, one column at a time,
// then any remainder becomes the face-down stock.
func Deal(deck [DeckSize]Card, v Variant) (GameState, error) {
	if err := ValidateDeck(deck); err != nil {
		return GameState{}, err
	}
	cfg := v.Config()
	if cfg.Columns == 0 {
		return GameState{}, fmt.Errorf("engine: unknown variant %d", v)
	}

	var g GameState
	g.Variant = v
	for i := range g.FreeCells {
		g.FreeCells[i] = EmptyCard
	}

	idx := 0
	for col := uint8(0); col < cfg.Columns; col++ {
		n := cfg.DealCounts[col]
		for k := uint8(0); k < n; k++ {
			g.Tableau[col].Cards[k] = deck[idx]
			idx++
		}
		g.Tableau[col].Len = n
		if cfg.DealAllFaceUp {
			g.Tableau[col].FaceUp = n
		} else {
			g.Tableau[col].FaceUp = 1
		}
	}

	if cfg.HasStock {
		for idx < DeckSize {
			g.Stock[g.StockLen] = deck[idx]
			g.StockLen++
			idx++
		}
	}
	return g, nil
}

// NewGame shuffles and deals in one step and stamps the seed into the
// resulting state.
func NewGame(seed int64, v Variant) (GameState, error) {
	deck, err := Shuffle(seed)
	if err != nil {
		return GameState{}, err
	}
	g, err := Deal(deck, v)
	if err != nil {
		return GameState{}, err
	}
	g.Seed = seed
	return g, nil
}
