package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// faceUpDealIndices are the deal positions that close each tableau column
var faceUpDealIndices = [TableauCount]int{0, 2, 5, 9, 14, 20, 27}

// tableauColumnForDealIndex maps a deal position (0..27) to its column
func tableauColumnForDealIndex(i int) int {
	for col, last := range faceUpDealIndices {
		if i <= last {
			return col
		}
	}
	return -1
}

// NewGame shuffles a fresh deck with rng and deals it
func NewGame(rng RandomSource) GameState {
	if rng == nil {
		panic(ErrNilRandom)
	}

	gameID, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		panic(fmt.Sprintf("engine: game id: %v", err))
	}

	state, err := Deal(Shuffle(NewDeck(), rng), gameID)
	if err != nil {
		// A freshly built deck is always valid
		panic(err)
	}
	return state
}

// Deal lays out a shuffled deck: 28 cards over seven tableau columns of
// sizes 1..7 (last card of each face up) and 24 face-down StockClosed cards.
// Card ids are derived from gameID and stay fixed for the life of the game.
func Deal(deck []Card, gameID uuid.UUID) (GameState, error) {
	if err := validateDeck(deck); err != nil {
		return GameState{}, err
	}

	placements := make([]CardPlacement, 0, DeckSize)
	for i, card := range deck {
		p := CardPlacement{
			ID:   placementID(gameID, card),
			Card: card,
		}
		if i < TableauCardCount {
			col := tableauColumnForDealIndex(i)
			p.Position = Position{Kind: Tableau, Index: col}
			p.FaceUp = faceUpDealIndices[col] == i
		} else {
			p.Position = Position{Kind: StockClosed}
		}
		placements = append(placements, p)
	}

	return GameState{Placements: placements}, nil
}

// NewState builds a state from explicit placements, assigning ids to any
// placement without one. It does not check invariants.
func NewState(placements []CardPlacement) GameState {
	out := make([]CardPlacement, len(placements))
	copy(out, placements)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = placementID(uuid.Nil, out[i].Card)
		}
	}
	return GameState{Placements: out}
}

func placementID(gameID uuid.UUID, card Card) string {
	return uuid.NewSHA1(gameID, []byte(card.Code())).String()
}

func validateDeck(deck []Card) error {
	if len(deck) != DeckSize {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidDeck, DeckSize, len(deck))
	}

	seen := make(map[Card]bool, DeckSize)
	for i, card := range deck {
		if !card.Valid() {
			return fmt.Errorf("%w: card %d has rank %d suit %d", ErrInvalidDeck, i, int(card.Rank), int(card.Suit))
		}
		if seen[card] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidDeck, card.Code())
		}
		seen[card] = true
	}
	return nil
}
