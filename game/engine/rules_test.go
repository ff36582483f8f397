package engine

import "testing"

func TestCanDropOnTableau(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("9S", Tableau, 1, true),
		at("5D", Tableau, 2, false),
	)

	tests := []struct {
		name   string
		card   string
		column int
		want   bool
	}{
		{"king on empty column", "KH", 0, true},
		{"queen on empty column", "QH", 0, false},
		{"red eight on black nine", "8H", 1, true},
		{"red eight of diamonds on black nine", "8D", 1, true},
		{"black eight on black nine", "8C", 1, false},
		{"red seven on black nine", "7H", 1, false},
		{"red ten on black nine", "10H", 1, false},
		{"onto face-down top", "4S", 2, false},
		{"column out of range", "KH", 7, false},
		{"negative column", "KH", -1, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stack := []CardPlacement{{Card: mustCard(t, test.card)}}
			if got := gs.CanDropOnTableau(stack, test.column); got != test.want {
				t.Errorf("Expected %v, got %v", test.want, got)
			}
		})
	}

	if gs.CanDropOnTableau(nil, 0) {
		t.Error("Expected an empty stack to be rejected")
	}
}

func TestCanDropOnFoundation(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("AH", Foundation, int(Heart), true),
	)

	tests := []struct {
		name  string
		card  string
		index int
		want  bool
	}{
		{"ace on empty spade foundation", "AS", 0, true},
		{"ace on wrong foundation", "AS", 1, false},
		{"two on empty foundation", "2S", 0, false},
		{"two of hearts on ace", "2H", 1, true},
		{"three of hearts on ace", "3H", 1, false},
		{"two of diamonds on hearts", "2D", 1, false},
		{"index out of range", "AC", 4, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := gs.CanDropOnFoundation(mustCard(t, test.card), test.index); got != test.want {
				t.Errorf("Expected %v, got %v", test.want, got)
			}
		})
	}

	if !gs.CanAutoFoundation(mustCard(t, "2H")) {
		t.Error("Expected 2H to auto-move onto its foundation")
	}
	if gs.CanAutoFoundation(mustCard(t, "2S")) {
		t.Error("Expected 2S to be rejected")
	}
}

func TestStockPredicates(t *testing.T) {
	fresh := NewGame(seeded(1))
	if !fresh.CanFlipStockClosedTop() || fresh.CanRecycleStock() || !fresh.CanDraw() {
		t.Error("Fresh deal: expected flip allowed and recycle refused")
	}

	exhausted := buildState(Position{Kind: Tableau, Index: 0},
		at("3C", StockOpen, 0, true),
		at("4C", StockOpen, 0, true),
	)
	if exhausted.CanFlipStockClosedTop() || !exhausted.CanRecycleStock() || !exhausted.CanDraw() {
		t.Error("Empty closed stock: expected recycle allowed and flip refused")
	}

	empty := buildState(Position{Kind: Tableau, Index: 0})
	if empty.CanDraw() || empty.CanRecycleStock() {
		t.Error("No stock at all: expected drawing to be refused")
	}
}

func TestCanRevealStockCard(t *testing.T) {
	gs := NewGame(seeded(3))
	closed := gs.Pile(StockClosed, 0)
	top := closed[len(closed)-1]

	if !gs.CanRevealStockCard(top.Card) {
		t.Error("Expected the top stock card to be revealable")
	}
	if gs.CanRevealStockCard(closed[0].Card) {
		t.Error("Expected a buried stock card to be refused")
	}
}

func TestCanRevealTableauTop(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("5D", Tableau, 2, false),
		at("6D", Tableau, 3, false),
		at("7S", Tableau, 3, true),
	)

	if !gs.CanRevealTableauTop(mustCard(t, "5D")) {
		t.Error("Expected face-down top to be revealable")
	}
	if gs.CanRevealTableauTop(mustCard(t, "6D")) {
		t.Error("Expected a covered card to be refused")
	}
	if gs.CanRevealTableauTop(mustCard(t, "7S")) {
		t.Error("Expected a face-up card to be refused")
	}
}

func TestMovingStackIgnoresRunValidity(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("9C", Tableau, 4, false),
		at("8H", Tableau, 4, true),
		at("2S", Tableau, 4, true),
		at("KD", Tableau, 4, true),
	)

	stack := gs.MovingStack(mustCard(t, "8H"))
	got := codes(stack)
	want := []string{"8H", "2S", "KD"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}

	if n := len(gs.MovingStack(mustCard(t, "KD"))); n != 1 {
		t.Errorf("Expected the top card to move alone, got %d", n)
	}
}

func TestCanMoveToTableau(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("9S", Tableau, 1, true),
		at("8H", Tableau, 2, true),
		at("QS", Tableau, 3, false),
		at("KH", Tableau, 5, true),
		at("KD", Foundation, int(Diamond), true),
		at("8D", StockOpen, 0, true),
		at("KC", StockOpen, 0, true),
	)

	tests := []struct {
		name   string
		card   string
		column int
		want   bool
	}{
		{"face-up tableau card", "8H", 1, true},
		{"onto its own column", "8H", 2, false},
		{"non-king onto empty column", "8H", 0, false},
		{"face-down tableau card", "QS", 5, false},
		{"top open stock card", "KC", 0, true},
		{"buried open stock card", "8D", 1, false},
		{"foundation card", "KD", 0, false},
		{"closed stock card", "QC", 5, false},
		{"column out of range", "8H", 9, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := gs.CanMoveToTableau(mustCard(t, test.card), test.column); got != test.want {
				t.Errorf("Expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestCanMoveToFoundation(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("AS", Tableau, 0, true),
		at("AH", Tableau, 1, true),
		at("5C", Tableau, 1, true),
		at("2S", Tableau, 2, true),
		at("AD", StockOpen, 0, true),
		at("9C", StockOpen, 0, true),
	)

	tests := []struct {
		name string
		card string
		want bool
	}{
		{"exposed ace", "AS", true},
		{"covered ace", "AH", false},
		{"buried open stock ace", "AD", false},
		{"closed stock ace", "AC", false},
		{"two without its ace", "2S", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := gs.CanMoveToFoundation(mustCard(t, test.card)); got != test.want {
				t.Errorf("Expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestLegal(t *testing.T) {
	gs := buildState(Position{Kind: StockClosed},
		at("AS", Tableau, 0, true),
		at("7D", Tableau, 1, false),
	)

	tests := []struct {
		name   string
		intent Intent
		want   bool
	}{
		{"draw", DrawStockCard{}, true},
		{"recycle with closed stock", RecycleStock{}, false},
		{"ace to foundation", MoveToFoundation{Card: mustCard(t, "AS")}, true},
		{"ace to tableau", MoveToTableau{Card: mustCard(t, "AS"), Column: 2}, false},
		{"reveal face-down top", RevealTableauTop{Card: mustCard(t, "7D")}, true},
		{"select pile", SelectHoveredPile{Column: 6}, true},
		{"select missing pile", SelectHoveredPile{Column: 7}, false},
		{"clear hover", ClearHoveredPile{}, true},
		{"undo", Undo{}, true},
		{"nil intent", nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Legal(gs, test.intent); got != test.want {
				t.Errorf("Expected %v, got %v", test.want, got)
			}
		})
	}
}
