package engine

// Apply returns the state that results from applying in to gs. It does not
// re-check legality: callers consult Legal first. Intents naming a card that
// is not on the table, or a column outside 0..6, leave the state unchanged.
// gs is never modified; every transition builds a new placement slice.
func Apply(gs GameState, in Intent) GameState {
	switch in := in.(type) {
	case RevealStockCard:
		return gs.moveCard(in.Card, Position{Kind: StockOpen}, true)

	case DrawStockCard:
		top, ok := gs.Top(StockClosed, 0)
		if !ok {
			return gs.recycleStock()
		}
		return gs.moveCard(top.Card, Position{Kind: StockOpen}, true)

	case RecycleStock:
		return gs.recycleStock()

	case MoveToFoundation:
		return gs.moveCard(in.Card, Position{Kind: Foundation, Index: int(in.Card.Suit)}, true)

	case MoveToTableau:
		if !validColumn(in.Column) {
			return gs
		}
		return gs.moveStack(gs.MovingStack(in.Card), Position{Kind: Tableau, Index: in.Column})

	case RevealTableauTop:
		idx, _, ok := gs.Find(in.Card)
		if !ok {
			return gs
		}
		next := gs.copyPlacements()
		next[idx].FaceUp = true
		return GameState{Placements: next, HoveredPile: gs.HoveredPile}

	case SelectHoveredPile:
		if !validColumn(in.Column) {
			return gs
		}
		column := in.Column
		return GameState{Placements: gs.Placements, HoveredPile: &column}

	case ClearHoveredPile:
		return GameState{Placements: gs.Placements}

	case Undo:
		return gs
	}
	return gs
}

// moveCard removes card from its pile and appends it to dest as the new top
func (gs GameState) moveCard(card Card, dest Position, faceUp bool) GameState {
	idx, p, ok := gs.Find(card)
	if !ok {
		return gs
	}

	next := make([]CardPlacement, 0, len(gs.Placements))
	next = append(next, gs.Placements[:idx]...)
	next = append(next, gs.Placements[idx+1:]...)

	p.Position = dest
	p.FaceUp = faceUp
	next = append(next, p)

	return GameState{Placements: next, HoveredPile: gs.HoveredPile}
}

// moveStack relocates stack to dest, keeping its order and orientation
func (gs GameState) moveStack(stack []CardPlacement, dest Position) GameState {
	if len(stack) == 0 {
		return gs
	}

	moving := make(map[string]bool, len(stack))
	for _, p := range stack {
		moving[p.ID] = true
	}

	next := make([]CardPlacement, 0, len(gs.Placements))
	for _, p := range gs.Placements {
		if !moving[p.ID] {
			next = append(next, p)
		}
	}
	for _, p := range stack {
		p.Position = dest
		next = append(next, p)
	}

	return GameState{Placements: next, HoveredPile: gs.HoveredPile}
}

// recycleStock turns StockOpen back into StockClosed face down, keeping order
func (gs GameState) recycleStock() GameState {
	if gs.Count(StockOpen, 0) == 0 {
		return gs
	}

	next := gs.copyPlacements()
	for i := range next {
		if next[i].Position.Kind == StockOpen {
			next[i].Position = Position{Kind: StockClosed}
			next[i].FaceUp = false
		}
	}
	return GameState{Placements: next, HoveredPile: gs.HoveredPile}
}

func (gs GameState) copyPlacements() []CardPlacement {
	next := make([]CardPlacement, len(gs.Placements))
	copy(next, gs.Placements)
	return next
}
