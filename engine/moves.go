package engine

import (
	"errors"
	"fmt"
)

// ErrMoveRejected is the sentinel every move rejection wraps. Callers are
// expected to filter illegal moves through CanMove before calling ApplyMove,
// so matching this error usually indicates host-side bookkeeping drift
// rather than user input.
var ErrMoveRejected = errors.New("engine: move rejected")

// MoveError is the typed negative result of ApplyMove.
type MoveError struct {
	From, To Location
	Reason   string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("engine: move %s[%d] -> %s[%d] rejected: %s",
		e.From.Kind, e.From.Index, e.To.Kind, e.To.Index, e.Reason)
}

func (e *MoveError) Unwrap() error { return ErrMoveRejected }

func reject(from, to Location, reason string) error {
	return &MoveError{From: from, To: to, Reason: reason}
}

// ApplyMove applies a single validated move and returns the resulting
// state. The receiver is taken by value: the caller's state is never
// mutated, and the returned value is a fresh snapshot with the move applied
// and MoveCount incremented.
//
// Legality is re-checked via CanMove regardless of what the caller already
// verified.
func (g GameState) ApplyMove(from, to Location) (GameState, error) {
	if !g.CanMove(from, to) {
		return g, reject(from, to, "not legal in this state")
	}

	switch {
	case from.Kind == PileStock:
		g.drawFromStock()
	case from.Kind == PileWaste && to.Kind == PileStock:
		g.recycleWaste()
	default:
		g.relocate(from, to)
	}

	g.MoveCount++
	return g, nil
}

// drawFromStock flips DrawCount cards from the stock onto the waste.
func (g *GameState) drawFromStock() {
	n := g.Variant.Config().DrawCount
	if n > g.StockLen {
		n = g.StockLen
	}
	for i := uint8(0); i < n; i++ {
		g.StockLen--
		g.Waste[g.WasteLen] = g.Stock[g.StockLen]
		g.WasteLen++
	}
}

// recycleWaste pours the waste back into the stock. Popping top-to-bottom
// reverses the pile, so the next draw cycle repeats the original order.
func (g *GameState) recycleWaste() {
	for g.WasteLen > 0 {
		g.WasteLen--
		g.Stock[g.StockLen] = g.Waste[g.WasteLen]
		g.StockLen++
	}
}

// relocate moves the referenced card(s) from source pile to destination
// pile. Only called with a CanMove-validated pair.
func (g *GameState) relocate(from, to Location) {
	var buf [MaxColumnLen]Card
	n := from.count()

	switch from.Kind {
	case PileTableau:
		col := &g.Tableau[from.Index]
		copy(buf[:n], col.Cards[col.Len-n:col.Len])
		col.Len -= n
		col.FaceUp -= n
		if col.Len > 0 && col.FaceUp == 0 {
			// Reveal the exposed face-down card. This is the one implicit
			// state change beyond the literal move.
			col.FaceUp = 1
		}
	case PileFreeCell:
		buf[0] = g.FreeCells[from.Index]
		g.FreeCells[from.Index] = EmptyCard
		n = 1
	case PileWaste:
		g.WasteLen--
		buf[0] = g.Waste[g.WasteLen]
		n = 1
	}

	switch to.Kind {
	case PileTableau:
		col := &g.Tableau[to.Index]
		copy(col.Cards[col.Len:col.Len+n], buf[:n])
		col.Len += n
		col.FaceUp += n
	case PileFreeCell:
		g.FreeCells[to.Index] = buf[0]
	case PileFoundation:
		f := &g.Foundations[to.Index]
		if f.Top == 0 {
			f.Suit = buf[0].Suit()
		}
		f.Top = buf[0].Rank()
	}
}
