package engine

import "io"

// RandomSource drives shuffling and game id generation. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	io.Reader
}

// NewDeck returns the 52 canonical cards, suit-major in foundation order
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle returns a uniformly permuted copy of cards (Fisher-Yates)
func Shuffle(cards []Card, rng RandomSource) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
