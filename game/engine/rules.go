package engine

// MovingStack returns the cards that travel with card when it is dragged:
// the card itself plus, when it sits on a tableau pile, every face-up card
// stacked above it in their current order. The bundled cards are not
// required to form a valid run.
func (gs GameState) MovingStack(card Card) []CardPlacement {
	idx, source, ok := gs.Find(card)
	if !ok {
		return nil
	}

	stack := []CardPlacement{source}
	if source.Position.Kind != Tableau {
		return stack
	}
	for _, p := range gs.Placements[idx+1:] {
		if p.Position == source.Position && p.FaceUp {
			stack = append(stack, p)
		}
	}
	return stack
}

// CanDropOnTableau checks the destination rule for a moving stack: an empty
// column takes only a King; otherwise the column's top card must be of the
// opposite color and exactly one rank higher than the stack's bottom card.
func (gs GameState) CanDropOnTableau(stack []CardPlacement, column int) bool {
	if len(stack) == 0 || !validColumn(column) {
		return false
	}
	bottom := stack[0].Card

	top, ok := gs.Top(Tableau, column)
	if !ok {
		return bottom.Rank == King
	}
	return top.FaceUp &&
		top.Card.Color() != bottom.Color() &&
		top.Card.Rank == bottom.Rank+1
}

// CanDropOnFoundation checks whether card is the next card for the foundation at index
func (gs GameState) CanDropOnFoundation(card Card, index int) bool {
	if index < 0 || index >= FoundationCount || !card.Valid() {
		return false
	}
	return int(card.Suit) == index && int(card.Rank) == gs.Count(Foundation, index)+1
}

// CanAutoFoundation checks the foundation rule against the card's own suit
func (gs GameState) CanAutoFoundation(card Card) bool {
	return gs.CanDropOnFoundation(card, int(card.Suit))
}

// CanFlipStockClosedTop reports whether StockClosed has a card to flip
func (gs GameState) CanFlipStockClosedTop() bool {
	return gs.Count(StockClosed, 0) > 0
}

// CanRecycleStock reports whether StockOpen can be turned back over
func (gs GameState) CanRecycleStock() bool {
	return gs.Count(StockClosed, 0) == 0 && gs.Count(StockOpen, 0) > 0
}

// CanDraw reports whether DrawStockCard has any effect
func (gs GameState) CanDraw() bool {
	return gs.CanFlipStockClosedTop() || gs.CanRecycleStock()
}

// CanRevealStockCard reports whether card is the top StockClosed card
func (gs GameState) CanRevealStockCard(card Card) bool {
	top, ok := gs.Top(StockClosed, 0)
	return ok && top.Card == card
}

// CanRevealTableauTop reports whether card is a face-down tableau top
func (gs GameState) CanRevealTableauTop(card Card) bool {
	_, p, ok := gs.Find(card)
	if !ok || p.Position.Kind != Tableau || p.FaceUp {
		return false
	}
	return gs.IsTop(p)
}

// CanMoveToTableau checks both ends of a tableau move. Only face-up tableau
// cards and the top StockOpen card can be picked up; foundation cards stay put.
func (gs GameState) CanMoveToTableau(card Card, column int) bool {
	_, source, ok := gs.Find(card)
	if !ok || !validColumn(column) {
		return false
	}

	switch source.Position.Kind {
	case Tableau:
		if !source.FaceUp || source.Position.Index == column {
			return false
		}
	case StockOpen:
		if !gs.IsTop(source) {
			return false
		}
	default:
		return false
	}

	return gs.CanDropOnTableau(gs.MovingStack(card), column)
}

// CanMoveToFoundation checks that card is exposed and next on its foundation
func (gs GameState) CanMoveToFoundation(card Card) bool {
	_, source, ok := gs.Find(card)
	if !ok {
		return false
	}

	switch source.Position.Kind {
	case Tableau:
		if !source.FaceUp || !gs.IsTop(source) {
			return false
		}
	case StockOpen:
		if !gs.IsTop(source) {
			return false
		}
	default:
		return false
	}

	return gs.CanAutoFoundation(card)
}

// Legal answers whether in may be applied to gs. Undo is always legal here;
// whether there is anything to undo is up to the history owner.
func Legal(gs GameState, in Intent) bool {
	switch in := in.(type) {
	case RevealStockCard:
		return gs.CanRevealStockCard(in.Card)
	case DrawStockCard:
		return gs.CanDraw()
	case RecycleStock:
		return gs.CanRecycleStock()
	case MoveToFoundation:
		return gs.CanMoveToFoundation(in.Card)
	case MoveToTableau:
		return gs.CanMoveToTableau(in.Card, in.Column)
	case RevealTableauTop:
		return gs.CanRevealTableauTop(in.Card)
	case SelectHoveredPile:
		return validColumn(in.Column)
	case ClearHoveredPile, Undo:
		return true
	}
	return false
}

func validColumn(column int) bool {
	return column >= 0 && column < TableauCount
}
