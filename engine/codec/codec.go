// Package codec serializes engine.GameState into a compact URL-safe string
// for share links and QR transport.
//
// Format (version 1), Base64url without padding over an MSB-first bit
// stream:
//
//	8 bits  version (0x01)
//	8 bits  game type (engine.Variant)
//	8 bits  variant-config byte (0 for the built-in rule tables)
//	64 bits seed (two's complement)
//	32 bits move count
//	per tableau column: 5 bits length, 5 bits face-up count, then one
//	  6-bit code per card (2 suit bits + 4 rank bits)
//	per free cell: 1 occupancy bit, then a 6-bit card code if occupied
//	per foundation: 2 bits suit, 4 bits top rank
//	if the variant has a stock: 5 bits stock length + card codes,
//	  5 bits waste length + card codes
//
// Every field of GameState round-trips losslessly, including face-up
// counts, the seed and the move counter.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"

	"patience/engine"
)

const version = 0x01

var (
	// ErrUnknownVersion is returned for payloads written by a newer format.
	ErrUnknownVersion = errors.New("codec: unknown format version")
	// ErrCorrupt is returned for truncated or internally inconsistent
	// payloads.
	ErrCorrupt = errors.New("codec: corrupt payload")
)

// Encode packs the state into its URL-safe string form.
func Encode(g engine.GameState) (string, error) {
	cfg := g.Variant.Config()
	if cfg.Columns == 0 {
		return "", fmt.Errorf("codec: unknown variant %d", g.Variant)
	}

	var w bitWriter
	w.write(version, 8)
	w.write(uint64(g.Variant), 8)
	w.write(0, 8) // config byte, reserved
	w.write(uint64(g.Seed), 64)
	w.write(uint64(g.MoveCount), 32)

	for i := uint8(0); i < cfg.Columns; i++ {
		col := &g.Tableau[i]
		if col.Len > engine.MaxColumnLen || col.FaceUp > col.Len {
			return "", fmt.Errorf("codec: column %d out of bounds", i)
		}
		w.write(uint64(col.Len), 5)
		w.write(uint64(col.FaceUp), 5)
		for k := uint8(0); k < col.Len; k++ {
			w.write(uint64(col.Cards[k]), 6)
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		if g.FreeCells[i] == engine.EmptyCard {
			w.write(0, 1)
			continue
		}
		w.write(1, 1)
		w.write(uint64(g.FreeCells[i]), 6)
	}
	for _, f := range g.Foundations {
		w.write(uint64(f.Suit), 2)
		w.write(uint64(f.Top), 4)
	}
	if cfg.HasStock {
		if g.StockLen > engine.MaxStockLen || g.WasteLen > engine.MaxStockLen {
			return "", fmt.Errorf("codec: stock/waste out of bounds")
		}
		w.write(uint64(g.StockLen), 5)
		for i := uint8(0); i < g.StockLen; i++ {
			w.write(uint64(g.Stock[i]), 6)
		}
		w.write(uint64(g.WasteLen), 5)
		for i := uint8(0); i < g.WasteLen; i++ {
			w.write(uint64(g.Waste[i]), 6)
		}
	}

	return base64.RawURLEncoding.EncodeToString(w.buf), nil
}

// Decode unpacks a string produced by Encode. The result is validated
// structurally (bounds, card codes, card conservation) before being
// returned, so a hand-crafted payload cannot smuggle in an impossible
// state.
func Decode(s string) (engine.GameState, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return engine.GameState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	r := bitReader{buf: raw}

	ver, ok := r.read(8)
	if !ok {
		return engine.GameState{}, ErrCorrupt
	}
	if ver != version {
		return engine.GameState{}, ErrUnknownVersion
	}
	vtag, ok := r.read(8)
	if !ok {
		return engine.GameState{}, ErrCorrupt
	}
	variant := engine.Variant(vtag)
	cfg := variant.Config()
	if cfg.Columns == 0 {
		return engine.GameState{}, fmt.Errorf("%w: unknown variant %d", ErrCorrupt, vtag)
	}
	if _, ok := r.read(8); !ok { // config byte
		return engine.GameState{}, ErrCorrupt
	}

	var g engine.GameState
	g.Variant = variant
	for i := range g.FreeCells {
		g.FreeCells[i] = engine.EmptyCard
	}

	seed, ok := r.read(64)
	if !ok {
		return engine.GameState{}, ErrCorrupt
	}
	g.Seed = int64(seed)
	mc, ok := r.read(32)
	if !ok {
		return engine.GameState{}, ErrCorrupt
	}
	g.MoveCount = uint32(mc)

	for i := uint8(0); i < cfg.Columns; i++ {
		length, ok1 := r.read(5)
		faceUp, ok2 := r.read(5)
		if !ok1 || !ok2 || length > engine.MaxColumnLen || faceUp > length {
			return engine.GameState{}, ErrCorrupt
		}
		g.Tableau[i].Len = uint8(length)
		g.Tableau[i].FaceUp = uint8(faceUp)
		for k := uint8(0); k < uint8(length); k++ {
			c, err := readCard(&r)
			if err != nil {
				return engine.GameState{}, err
			}
			g.Tableau[i].Cards[k] = c
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		occupied, ok := r.read(1)
		if !ok {
			return engine.GameState{}, ErrCorrupt
		}
		if occupied == 1 {
			c, err := readCard(&r)
			if err != nil {
				return engine.GameState{}, err
			}
			g.FreeCells[i] = c
		}
	}
	for i := range g.Foundations {
		suit, ok1 := r.read(2)
		top, ok2 := r.read(4)
		if !ok1 || !ok2 || top > uint64(engine.RankKing) {
			return engine.GameState{}, ErrCorrupt
		}
		g.Foundations[i] = engine.Foundation{Suit: uint8(suit), Top: uint8(top)}
	}
	if cfg.HasStock {
		n, ok := r.read(5)
		if !ok || n > engine.MaxStockLen {
			return engine.GameState{}, ErrCorrupt
		}
		g.StockLen = uint8(n)
		for i := uint8(0); i < g.StockLen; i++ {
			c, err := readCard(&r)
			if err != nil {
				return engine.GameState{}, err
			}
			g.Stock[i] = c
		}
		n, ok = r.read(5)
		if !ok || n > engine.MaxStockLen {
			return engine.GameState{}, ErrCorrupt
		}
		g.WasteLen = uint8(n)
		for i := uint8(0); i < g.WasteLen; i++ {
			c, err := readCard(&r)
			if err != nil {
				return engine.GameState{}, err
			}
			g.Waste[i] = c
		}
	}

	if err := validateConservation(&g); err != nil {
		return engine.GameState{}, err
	}
	return g, nil
}

func readCard(r *bitReader) (engine.Card, error) {
	v, ok := r.read(6)
	if !ok {
		return engine.EmptyCard, ErrCorrupt
	}
	c := engine.Card(v)
	if c.Rank() < engine.RankAce || c.Rank() > engine.RankKing {
		return engine.EmptyCard, fmt.Errorf("%w: invalid card code %d", ErrCorrupt, v)
	}
	return c, nil
}

// validateConservation checks that the decoded piles plus the implied
// foundation runs account for each of the 52 cards exactly once.
func validateConservation(g *engine.GameState) error {
	cfg := g.Variant.Config()
	var seen [4][14]bool
	mark := func(c engine.Card) error {
		s, rk := c.Suit(), c.Rank()
		if seen[s][rk] {
			return fmt.Errorf("%w: duplicate card %s", ErrCorrupt, c)
		}
		seen[s][rk] = true
		return nil
	}
	for i := uint8(0); i < cfg.Columns; i++ {
		for k := uint8(0); k < g.Tableau[i].Len; k++ {
			if err := mark(g.Tableau[i].Cards[k]); err != nil {
				return err
			}
		}
	}
	for i := uint8(0); i < cfg.FreeCells; i++ {
		if g.FreeCells[i] != engine.EmptyCard {
			if err := mark(g.FreeCells[i]); err != nil {
				return err
			}
		}
	}
	for _, f := range g.Foundations {
		for rk := engine.RankAce; rk <= f.Top; rk++ {
			if err := mark(engine.NewCard(f.Suit, rk)); err != nil {
				return err
			}
		}
	}
	for i := uint8(0); i < g.StockLen; i++ {
		if err := mark(g.Stock[i]); err != nil {
			return err
		}
	}
	for i := uint8(0); i < g.WasteLen; i++ {
		if err := mark(g.Waste[i]); err != nil {
			return err
		}
	}

	total := 0
	for s := 0; s < 4; s++ {
		for rk := 1; rk <= 13; rk++ {
			if seen[s][rk] {
				total++
			}
		}
	}
	if total != engine.DeckSize {
		return fmt.Errorf("%w: %d of %d cards accounted for", ErrCorrupt, total, engine.DeckSize)
	}
	return nil
}
