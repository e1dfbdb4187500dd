package engine

import (
	"errors"
	"testing"
)

// TestDealFreeCellLayout checks the canonical FreeCell opening: 52 cards
// across 8 face-up columns sized 7,7,7,7,6,6,6,6, cells and foundations
// empty.
func TestDealFreeCellLayout(t *testing.T) {
	g, err := NewGame(12345, VariantFreeCell)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	wantSizes := []uint8{7, 7, 7, 7, 6, 6, 6, 6}
	for i, want := range wantSizes {
		if g.Tableau[i].Len != want {
			t.Errorf("column %d: len = %d, want %d", i, g.Tableau[i].Len, want)
		}
		if g.Tableau[i].FaceUp != want {
			t.Errorf("column %d: faceUp = %d, want %d", i, g.Tableau[i].FaceUp, want)
		}
	}
	for i, c := range g.FreeCells {
		if c != EmptyCard {
			t.Errorf("free cell %d holds %s, want empty", i, c)
		}
	}
	for i, f := range g.Foundations {
		if f.Top != 0 {
			t.Errorf("foundation %d top = %d, want 0", i, f.Top)
		}
	}
	if g.StockLen != 0 || g.WasteLen != 0 {
		t.Errorf("stock/waste = %d/%d, want 0/0", g.StockLen, g.WasteLen)
	}
	if g.Seed != 12345 {
		t.Errorf("seed = %d, want 12345", g.Seed)
	}
	assertConserved(t, &g)
}

// TestDealKlondikeLayout checks the canonical Klondike opening: columns
// sized 1..7 with exactly the last card face-up, 24 cards face-down in the
// stock.
func TestDealKlondikeLayout(t *testing.T) {
	g, err := NewGame(12345, VariantKlondike)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for i := 0; i < 7; i++ {
		want := uint8(i + 1)
		if g.Tableau[i].Len != want {
			t.Errorf("column %d: len = %d, want %d", i, g.Tableau[i].Len, want)
		}
		if g.Tableau[i].FaceUp != 1 {
			t.Errorf("column %d: faceUp = %d, want 1", i, g.Tableau[i].FaceUp)
		}
	}
	if g.StockLen != 24 {
		t.Errorf("stock len = %d, want 24", g.StockLen)
	}
	if g.WasteLen != 0 {
		t.Errorf("waste len = %d, want 0", g.WasteLen)
	}
	assertConserved(t, &g)
}

// TestDealDeterministic verifies that the same seed yields the identical
// initial state for both variants.
func TestDealDeterministic(t *testing.T) {
	for _, v := range []Variant{VariantFreeCell, VariantKlondike} {
		a, err := NewGame(777, v)
		if err != nil {
			t.Fatalf("NewGame(%s): %v", v, err)
		}
		b, err := NewGame(777, v)
		if err != nil {
			t.Fatalf("NewGame(%s): %v", v, err)
		}
		if a != b {
			t.Errorf("%s: two deals from the same seed differ", v)
		}
	}
}

func TestDealRejectsBadDeck(t *testing.T) {
	deck := NewOrderedDeck()
	deck[0] = deck[1]
	if _, err := Deal(deck, VariantFreeCell); !errors.Is(err, ErrInvalidDeck) {
		t.Errorf("Deal err = %v, want ErrInvalidDeck", err)
	}
}

func TestDealRejectsUnknownVariant(t *testing.T) {
	if _, err := Deal(NewOrderedDeck(), Variant(99)); err == nil {
		t.Error("Deal with unknown variant succeeded, want error")
	}
}

func TestNewGameRejectsUnsafeSeed(t *testing.T) {
	if _, err := NewGame(1<<60, VariantFreeCell); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("NewGame err = %v, want ErrInvalidSeed", err)
	}
}
