package engine

import (
	"math/rand"
	"testing"
)

func mustCard(t *testing.T, code string) Card {
	t.Helper()
	c, err := ParseCard(code)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", code, err)
	}
	return c
}

func at(code string, kind PileKind, index int, faceUp bool) CardPlacement {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return CardPlacement{Card: c, Position: Position{Kind: kind, Index: index}, FaceUp: faceUp}
}

// buildState completes placements to a full deck. Unlisted cards go face
// down at the bottom of filler so they never become a pile top by accident.
func buildState(filler Position, placements ...CardPlacement) GameState {
	used := make(map[Card]bool, len(placements))
	for _, p := range placements {
		used[p.Card] = true
	}

	var all []CardPlacement
	for _, c := range NewDeck() {
		if !used[c] {
			all = append(all, CardPlacement{Card: c, Position: filler})
		}
	}
	all = append(all, placements...)
	return NewState(all)
}

// wonState has every card on its foundation in order
func wonState() GameState {
	var all []CardPlacement
	for _, c := range NewDeck() {
		all = append(all, CardPlacement{Card: c, Position: Position{Kind: Foundation, Index: int(c.Suit)}, FaceUp: true})
	}
	return NewState(all)
}

// nearWonState is wonState with the King of diamonds still on tableau 0
func nearWonState() GameState {
	var all []CardPlacement
	for _, c := range NewDeck() {
		if c == (Card{Rank: King, Suit: Diamond}) {
			all = append(all, CardPlacement{Card: c, Position: Position{Kind: Tableau, Index: 0}, FaceUp: true})
			continue
		}
		all = append(all, CardPlacement{Card: c, Position: Position{Kind: Foundation, Index: int(c.Suit)}, FaceUp: true})
	}
	return NewState(all)
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func codes(pile []CardPlacement) []string {
	out := make([]string, len(pile))
	for i, p := range pile {
		out[i] = p.Card.Code()
	}
	return out
}
