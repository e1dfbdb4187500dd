package game

import (
	"fmt"

	"patience/engine"
)

// hiddenCard is what clients see in place of a face-down card.
const hiddenCard = "##"

// LocationView is the wire form of an engine.Location.
type LocationView struct {
	Pile  string `json:"pile"`
	Index int    `json:"index"`
	Count int    `json:"count,omitempty"`
}

var pileKinds = map[string]engine.PileKind{
	"tableau":    engine.PileTableau,
	"freeCell":   engine.PileFreeCell,
	"foundation": engine.PileFoundation,
	"stock":      engine.PileStock,
	"waste":      engine.PileWaste,
}

// ToEngine converts the wire form into an engine Location.
func (lv LocationView) ToEngine() (engine.Location, error) {
	kind, ok := pileKinds[lv.Pile]
	if !ok {
		return engine.Location{}, fmt.Errorf("game: unknown pile kind %q", lv.Pile)
	}
	if lv.Index < 0 || lv.Index > 255 || lv.Count < 0 || lv.Count > 255 {
		return engine.Location{}, fmt.Errorf("game: location out of range")
	}
	return engine.Location{Kind: kind, Index: uint8(lv.Index), Count: uint8(lv.Count)}, nil
}

func locationView(l engine.Location) LocationView {
	return LocationView{Pile: l.Kind.String(), Index: int(l.Index), Count: int(l.Count)}
}

// MoveView is the wire form of a move, with the moving card's id attached
// for client-side animation.
type MoveView struct {
	From LocationView `json:"from"`
	To   LocationView `json:"to"`
	Card string       `json:"card,omitempty"`
}

// ColumnView is one tableau column as shown to the client: face-down cards
// are masked.
type ColumnView struct {
	Cards  []string `json:"cards"`
	FaceUp int      `json:"faceUp"`
}

// FoundationView is one foundation pile summary.
type FoundationView struct {
	Suit string `json:"suit,omitempty"`
	Top  string `json:"top,omitempty"`
}

// StateView is the full client-facing projection of a session's state.
// Solitaire has no opponents to hide from; only face-down cards are masked.
type StateView struct {
	GameID      string           `json:"gameId"`
	Variant     string           `json:"variant"`
	Seed        int64            `json:"seed"`
	MoveCount   uint32           `json:"moveCount"`
	Tableau     []ColumnView     `json:"tableau"`
	FreeCells   []string         `json:"freeCells,omitempty"`
	Foundations []FoundationView `json:"foundations"`
	StockSize   int              `json:"stockSize"`
	Waste       []string         `json:"waste,omitempty"`
	Won         bool             `json:"won"`
	Encoded     string           `json:"encoded,omitempty"`
}

var suitNames = [4]string{"clubs", "diamonds", "hearts", "spades"}

// buildStateView projects an engine state for clients. encoded may be empty
// when the codec failed; the view is still usable without it.
func buildStateView(gameID string, g *engine.GameState, encoded string) StateView {
	cfg := g.Variant.Config()
	view := StateView{
		GameID:    gameID,
		Variant:   g.Variant.String(),
		Seed:      g.Seed,
		MoveCount: g.MoveCount,
		StockSize: int(g.StockLen),
		Won:       g.IsWon(),
		Encoded:   encoded,
	}

	view.Tableau = make([]ColumnView, cfg.Columns)
	for i := uint8(0); i < cfg.Columns; i++ {
		col := &g.Tableau[i]
		cv := ColumnView{Cards: make([]string, col.Len), FaceUp: int(col.FaceUp)}
		faceDown := col.Len - col.FaceUp
		for k := uint8(0); k < col.Len; k++ {
			if k < faceDown {
				cv.Cards[k] = hiddenCard
			} else {
				cv.Cards[k] = col.Cards[k].String()
			}
		}
		view.Tableau[i] = cv
	}

	for i := uint8(0); i < cfg.FreeCells; i++ {
		view.FreeCells = append(view.FreeCells, g.FreeCells[i].String())
	}

	view.Foundations = make([]FoundationView, engine.NumFoundations)
	for i, f := range g.Foundations {
		if f.Top == 0 {
			continue
		}
		view.Foundations[i] = FoundationView{
			Suit: suitNames[f.Suit],
			Top:  engine.NewCard(f.Suit, f.Top).String(),
		}
	}

	for i := uint8(0); i < g.WasteLen; i++ {
		view.Waste = append(view.Waste, g.Waste[i].String())
	}
	return view
}
