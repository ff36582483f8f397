package engine

import "fmt"

// CheckInvariants verifies the structural rules every reachable state obeys:
// 52 distinct valid cards with distinct ids, valid positions, foundations
// holding an ascending same-suit prefix from the Ace, tableau piles with
// face-down cards only below face-up ones, and stock orientation by pile.
func CheckInvariants(gs GameState) error {
	if len(gs.Placements) != DeckSize {
		return fmt.Errorf("%w: %d placements, want %d", ErrInvariant, len(gs.Placements), DeckSize)
	}

	cards := make(map[Card]bool, DeckSize)
	ids := make(map[string]bool, DeckSize)
	for _, p := range gs.Placements {
		if !p.Card.Valid() {
			return fmt.Errorf("%w: invalid card %d/%d", ErrInvariant, int(p.Card.Rank), int(p.Card.Suit))
		}
		if cards[p.Card] {
			return fmt.Errorf("%w: card %s placed twice", ErrInvariant, p.Card.Code())
		}
		cards[p.Card] = true

		if p.ID == "" || ids[p.ID] {
			return fmt.Errorf("%w: card %s has missing or duplicate id %q", ErrInvariant, p.Card.Code(), p.ID)
		}
		ids[p.ID] = true

		if err := checkPosition(p); err != nil {
			return err
		}
	}

	for _, suit := range Suits {
		for i, p := range gs.Pile(Foundation, int(suit)) {
			if p.Card.Suit != suit || int(p.Card.Rank) != i+1 {
				return fmt.Errorf("%w: foundation %s holds %s at height %d", ErrInvariant, suit, p.Card.Code(), i+1)
			}
		}
	}

	for col := 0; col < TableauCount; col++ {
		seenFaceUp := false
		for _, p := range gs.Pile(Tableau, col) {
			if p.FaceUp {
				seenFaceUp = true
			} else if seenFaceUp {
				return fmt.Errorf("%w: face-down %s above a face-up card in tableau %d", ErrInvariant, p.Card.Code(), col)
			}
		}
	}

	if gs.HoveredPile != nil && !validColumn(*gs.HoveredPile) {
		return fmt.Errorf("%w: hovered pile %d out of range", ErrInvariant, *gs.HoveredPile)
	}

	return nil
}

func checkPosition(p CardPlacement) error {
	switch p.Position.Kind {
	case Tableau:
		if !validColumn(p.Position.Index) {
			return fmt.Errorf("%w: %s in tableau %d", ErrInvariant, p.Card.Code(), p.Position.Index)
		}
	case Foundation:
		if p.Position.Index < 0 || p.Position.Index >= FoundationCount {
			return fmt.Errorf("%w: %s in foundation %d", ErrInvariant, p.Card.Code(), p.Position.Index)
		}
		if !p.FaceUp {
			return fmt.Errorf("%w: face-down %s on a foundation", ErrInvariant, p.Card.Code())
		}
	case StockClosed:
		if p.FaceUp {
			return fmt.Errorf("%w: face-up %s in closed stock", ErrInvariant, p.Card.Code())
		}
	case StockOpen:
		if !p.FaceUp {
			return fmt.Errorf("%w: face-down %s in open stock", ErrInvariant, p.Card.Code())
		}
	default:
		return fmt.Errorf("%w: %s has unknown pile %q", ErrInvariant, p.Card.Code(), p.Position.Kind)
	}
	return nil
}
