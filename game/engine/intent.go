package engine

// Intent is a caller-issued request for a state change. The set of intents
// is closed: only the types in this file implement it.
type Intent interface {
	// Name returns the wire name of the intent
	Name() string
	intent()
}

// Intent names
const (
	IntentRevealStockCard   = "reveal_stock_card"
	IntentDrawStockCard     = "draw_stock_card"
	IntentRecycleStock      = "recycle_stock"
	IntentMoveToFoundation  = "move_to_foundation"
	IntentMoveToTableau     = "move_to_tableau"
	IntentRevealTableauTop  = "reveal_tableau_top"
	IntentSelectHoveredPile = "select_hovered_pile"
	IntentClearHoveredPile  = "clear_hovered_pile"
	IntentUndo              = "undo"
)

// RevealStockCard moves a StockClosed card to StockOpen face up
type RevealStockCard struct {
	Card Card
}

// DrawStockCard flips the top StockClosed card, or recycles when StockClosed is empty
type DrawStockCard struct{}

// RecycleStock returns every StockOpen card to StockClosed face down
type RecycleStock struct{}

// MoveToFoundation places a card on its suit's foundation
type MoveToFoundation struct {
	Card Card
}

// MoveToTableau moves a card, and the face-up cards above it when it comes
// from a tableau pile, onto a tableau column
type MoveToTableau struct {
	Card   Card
	Column int
}

// RevealTableauTop turns the face-down top card of a tableau pile face up
type RevealTableauTop struct {
	Card Card
}

// SelectHoveredPile records the tableau pile under the pointer
type SelectHoveredPile struct {
	Column int
}

// ClearHoveredPile drops the hovered pile
type ClearHoveredPile struct{}

// Undo reverts to the previous state. The reducer treats it as a no-op; the
// driver owning the history performs the reversion.
type Undo struct{}

func (RevealStockCard) Name() string   { return IntentRevealStockCard }
func (DrawStockCard) Name() string     { return IntentDrawStockCard }
func (RecycleStock) Name() string      { return IntentRecycleStock }
func (MoveToFoundation) Name() string  { return IntentMoveToFoundation }
func (MoveToTableau) Name() string     { return IntentMoveToTableau }
func (RevealTableauTop) Name() string  { return IntentRevealTableauTop }
func (SelectHoveredPile) Name() string { return IntentSelectHoveredPile }
func (ClearHoveredPile) Name() string  { return IntentClearHoveredPile }
func (Undo) Name() string              { return IntentUndo }

func (RevealStockCard) intent()   {}
func (DrawStockCard) intent()     {}
func (RecycleStock) intent()      {}
func (MoveToFoundation) intent()  {}
func (MoveToTableau) intent()     {}
func (RevealTableauTop) intent()  {}
func (SelectHoveredPile) intent() {}
func (ClearHoveredPile) intent()  {}
func (Undo) intent()              {}

// IsUIOnly reports whether the intent touches only the UI-assist field
func IsUIOnly(in Intent) bool {
	switch in.(type) {
	case SelectHoveredPile, ClearHoveredPile:
		return true
	}
	return false
}
