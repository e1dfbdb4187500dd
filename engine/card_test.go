package engine

import "testing"

func TestCardPacking(t *testing.T) {
	c := NewCard(SuitHearts, RankSeven)
	if c.Suit() != SuitHearts {
		t.Errorf("Suit() = %d, want %d", c.Suit(), SuitHearts)
	}
	if c.Rank() != RankSeven {
		t.Errorf("Rank() = %d, want %d", c.Rank(), RankSeven)
	}
}

func TestCardColor(t *testing.T) {
	cases := []struct {
		suit uint8
		red  bool
	}{
		{SuitClubs, false},
		{SuitDiamonds, true},
		{SuitHearts, true},
		{SuitSpades, false},
	}
	for _, tc := range cases {
		c := NewCard(tc.suit, RankFive)
		if c.IsRed() != tc.red {
			t.Errorf("suit %d: IsRed() = %v, want %v", tc.suit, c.IsRed(), tc.red)
		}
	}
}

func TestCardString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{NewCard(SuitHearts, RankSeven), "7H"},
		{NewCard(SuitClubs, RankTen), "TC"},
		{NewCard(SuitSpades, RankKing), "KS"},
		{NewCard(SuitDiamonds, RankAce), "AD"},
		{EmptyCard, "--"},
	}
	for _, tc := range cases {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	for suit := SuitClubs; suit <= SuitSpades; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			c := NewCard(suit, rank)
			parsed, err := ParseCard(c.String())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", c.String(), err)
			}
			if parsed != c {
				t.Errorf("ParseCard(%q) = %v, want %v", c.String(), parsed, c)
			}
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "7", "7X", "ZH", "10H", "--"} {
		if _, err := ParseCard(s); err == nil {
			t.Errorf("ParseCard(%q) succeeded, want error", s)
		}
	}
}
