package engine

import "errors"

// DeckSize is the number of cards in a standard deck: 13 ranks × 4 suits.
const DeckSize = 52

// ErrInvalidDeck is returned by Deal when its input is not exactly the 52
// unique cards. It indicates a programming error upstream, not a condition
// a host should surface to users.
var ErrInvalidDeck = errors.New("engine: deck is not the 52 unique cards")

// NewOrderedDeck returns the canonical unshuffled deck: suits in
// Clubs/Diamonds/Hearts/Spades order, Ace through King within each suit.
func NewOrderedDeck() [DeckSize]Card {
	var deck [DeckSize]Card
	idx := 0
	for suit := SuitClubs; suit <= SuitSpades; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			deck[idx] = NewCard(suit, rank)
			idx++
		}
	}
	return deck
}

// Shuffle returns the deterministic permutation of the ordered deck for the
// given seed: a Fisher–Yates pass driven by xorshift64. The same seed always
// yields the identical ordering, which is what makes deals replayable and
// shareable by seed alone.
func Shuffle(seed int64) ([DeckSize]Card, error) {
	if !validSeed(seed) {
		return [DeckSize]Card{}, ErrInvalidSeed
	}
	deck := NewOrderedDeck()
	r := newRNG(seed)
	for i := DeckSize - 1; i > 0; i-- {
		j := r.intN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck, nil
}

// ValidateDeck checks that deck holds each of the 52 cards exactly once.
func ValidateDeck(deck [DeckSize]Card) error {
	var seen [4][14]bool
	for _, c := range deck {
		s, r := c.Suit(), c.Rank()
		if s > SuitSpades || r < RankAce || r > RankKing {
			return ErrInvalidDeck
		}
		if seen[s][r] {
			return ErrInvalidDeck
		}
		seen[s][r] = true
	}
	return nil
}
