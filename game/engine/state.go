package engine

// Pile returns the placements of one pile in stack order (bottom first).
// index is ignored for the stock piles.
func (gs GameState) Pile(kind PileKind, index int) []CardPlacement {
	var pile []CardPlacement
	for _, p := range gs.Placements {
		if inPile(p.Position, kind, index) {
			pile = append(pile, p)
		}
	}
	return pile
}

// Top returns the topmost (last inserted) placement of a pile
func (gs GameState) Top(kind PileKind, index int) (CardPlacement, bool) {
	for i := len(gs.Placements) - 1; i >= 0; i-- {
		if inPile(gs.Placements[i].Position, kind, index) {
			return gs.Placements[i], true
		}
	}
	return CardPlacement{}, false
}

// Count returns the number of cards in a pile
func (gs GameState) Count(kind PileKind, index int) int {
	count := 0
	for _, p := range gs.Placements {
		if inPile(p.Position, kind, index) {
			count++
		}
	}
	return count
}

// FoundationCount returns how many cards the foundation of suit holds
func (gs GameState) FoundationCount(suit Suit) int {
	return gs.Count(Foundation, int(suit))
}

// Find locates a card, returning its slice index and placement
func (gs GameState) Find(card Card) (int, CardPlacement, bool) {
	for i, p := range gs.Placements {
		if p.Card == card {
			return i, p, true
		}
	}
	return -1, CardPlacement{}, false
}

// FindByID locates a placement by its id
func (gs GameState) FindByID(id string) (CardPlacement, bool) {
	for _, p := range gs.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return CardPlacement{}, false
}

// IsTop reports whether the placement is the last card of its pile
func (gs GameState) IsTop(p CardPlacement) bool {
	top, ok := gs.Top(p.Position.Kind, p.Position.Index)
	return ok && top.ID == p.ID
}

// Board groups the placements by pile
func (gs GameState) Board() Board {
	b := Board{
		Tableau:     make([][]CardPlacement, TableauCount),
		Foundations: make([][]CardPlacement, FoundationCount),
		StockClosed: []CardPlacement{},
		StockOpen:   []CardPlacement{},
	}
	for i := range b.Tableau {
		b.Tableau[i] = []CardPlacement{}
	}
	for i := range b.Foundations {
		b.Foundations[i] = []CardPlacement{}
	}

	for _, p := range gs.Placements {
		switch p.Position.Kind {
		case Tableau:
			if p.Position.Index >= 0 && p.Position.Index < TableauCount {
				b.Tableau[p.Position.Index] = append(b.Tableau[p.Position.Index], p)
			}
		case Foundation:
			if p.Position.Index >= 0 && p.Position.Index < FoundationCount {
				b.Foundations[p.Position.Index] = append(b.Foundations[p.Position.Index], p)
			}
		case StockClosed:
			b.StockClosed = append(b.StockClosed, p)
		case StockOpen:
			b.StockOpen = append(b.StockOpen, p)
		}
	}

	if gs.HoveredPile != nil {
		hovered := *gs.HoveredPile
		b.HoveredPile = &hovered
	}
	return b
}

// IsWon reports whether every card rests on a foundation
func IsWon(gs GameState) bool {
	if len(gs.Placements) == 0 {
		return false
	}
	for _, p := range gs.Placements {
		if p.Position.Kind != Foundation {
			return false
		}
	}
	return true
}

// StatusOf maps a state to its session status
func StatusOf(gs GameState) Status {
	if IsWon(gs) {
		return StatusWon
	}
	return StatusInProgress
}

func inPile(pos Position, kind PileKind, index int) bool {
	if pos.Kind != kind {
		return false
	}
	if kind == Tableau || kind == Foundation {
		return pos.Index == index
	}
	return true
}
