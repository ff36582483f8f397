package engine

import "time"

// DefaultDoublePressWindow is the longest gap between two presses that still
// counts as a double press
const DefaultDoublePressWindow = 250 * time.Millisecond

// DoublePress detects two presses of the same key within Window. Every odd
// press arms the detector; the following press fires when it lands inside
// the window and disarms it otherwise.
type DoublePress struct {
	Window time.Duration

	presses int
	armedAt time.Time
}

// Press registers one key press at now and reports whether it completes a double press
func (d *DoublePress) Press(now time.Time) bool {
	window := d.Window
	if window <= 0 {
		window = DefaultDoublePressWindow
	}

	d.presses++
	if d.presses%2 == 1 {
		d.armedAt = now
		return false
	}

	if now.Sub(d.armedAt) < window {
		return true
	}
	d.presses = 0
	return false
}

// Reset forgets any pending press
func (d *DoublePress) Reset() {
	d.presses = 0
	d.armedAt = time.Time{}
}

// AutoFoundationTarget picks the card a keyboard double press sends to its
// foundation. With a hovered tableau pile it is that pile's top face-up card;
// without one it is the top StockOpen card. ok is false when the candidate
// cannot go to its foundation.
func AutoFoundationTarget(gs GameState) (Card, bool) {
	var candidate CardPlacement
	var found bool
	if gs.HoveredPile != nil {
		candidate, found = gs.Top(Tableau, *gs.HoveredPile)
		if found && !candidate.FaceUp {
			found = false
		}
	} else {
		candidate, found = gs.Top(StockOpen, 0)
	}

	if !found || !gs.CanAutoFoundation(candidate.Card) {
		return Card{}, false
	}
	return candidate.Card, true
}
