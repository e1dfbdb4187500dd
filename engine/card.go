// Package engine implements deterministic solitaire game state for the
// FreeCell and Klondike variants: seeded shuffles, initial deals, move
// legality, move application and win detection.
//
// Every operation is a pure, synchronous function over small value types.
// The package performs no I/O, holds no state across calls, and needs no
// synchronization; hosts own history and serialize their own calls.
package engine

import "fmt"

// Suit constants, packed into the upper bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitHearts   uint8 = 2
	SuitSpades   uint8 = 3
)

// Rank constants, packed into the lower 4 bits of Card. Ace is low;
// foundations build Ace through King.
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// Card is a packed uint8: upper bits = suit (0–3), lower 4 bits = rank
// (1–13). Identity is value equality on the byte.
type Card uint8

// EmptyCard represents the absence of a card (an empty free cell slot).
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsRed returns true for Diamonds and Hearts.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitDiamonds || s == SuitHearts
}

var rankLetters = " A23456789TJQK"
var suitLetters = "CDHS"

// String returns the card's stable two-character id, e.g. "7H", "TC", "KS".
// This id is what hosts show clients and what the share codec round-trips.
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	r, s := c.Rank(), c.Suit()
	if r < RankAce || r > RankKing || s > SuitSpades {
		return "??"
	}
	return string([]byte{rankLetters[r], suitLetters[s]})
}

// ParseCard parses a two-character card id as produced by String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return EmptyCard, fmt.Errorf("engine: malformed card id %q", s)
	}
	var rank, suit uint8 = 0xFF, 0xFF
	for r := RankAce; r <= RankKing; r++ {
		if rankLetters[r] == s[0] {
			rank = r
			break
		}
	}
	for i := 0; i < len(suitLetters); i++ {
		if suitLetters[i] == s[1] {
			suit = uint8(i)
			break
		}
	}
	if rank == 0xFF || suit == 0xFF {
		return EmptyCard, fmt.Errorf("engine: malformed card id %q", s)
	}
	return NewCard(suit, rank), nil
}
