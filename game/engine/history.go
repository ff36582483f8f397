package engine

// History is the undo stack of states captured before each applied intent.
// A limit of 0 keeps every state; otherwise the oldest entries are dropped.
type History struct {
	states []GameState
	limit  int
}

// NewHistory creates an undo stack holding at most limit states
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Push records the state that preceded a transition
func (h *History) Push(gs GameState) {
	h.states = append(h.states, gs)
	if h.limit > 0 && len(h.states) > h.limit {
		drop := len(h.states) - h.limit
		h.states = append([]GameState(nil), h.states[drop:]...)
	}
}

// Pop removes and returns the most recent state
func (h *History) Pop() (GameState, bool) {
	if len(h.states) == 0 {
		return GameState{}, false
	}
	last := h.states[len(h.states)-1]
	h.states = h.states[:len(h.states)-1]
	return last, true
}

// Len returns the number of undoable steps
func (h *History) Len() int {
	return len(h.states)
}

// Clear empties the stack
func (h *History) Clear() {
	h.states = nil
}
