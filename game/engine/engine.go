package engine

import (
	"log"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() GameState
	SetState(state GameState) error
	Board() Board
	Pile(kind PileKind, index int) []CardPlacement
	Reset() GameState
	IsWon() bool
	Status() Status
	Message() string

	// Intents
	Apply(in Intent) bool
	CanApply(in Intent) bool
	Undo() bool
	CanUndo() bool
	UndoDepth() int

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
	TotalMoves() int
}

// GameEngine implements Engine on top of the legality oracle and the reducer.
// It is not safe for concurrent use; the session layer serializes access.
type GameEngine struct {
	state   GameState
	config  *GameConfig
	rng     RandomSource
	history *History
	moves   []MoveHistoryEntry
	message string

	now func() time.Time
}

// NewEngine creates a new game engine with the provided configuration. A nil
// rng draws deals from a time-seeded source; configs with a seed ignore it.
func NewEngine(config *GameConfig, rng RandomSource) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cfg := config.withDefaults()
	e := &GameEngine{
		config:  &cfg,
		rng:     rng,
		history: NewHistory(cfg.UndoLimit),
		now:     time.Now,
	}
	e.state = e.deal()
	e.message = cfg.Messages.Welcome
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the classic configuration
func NewEngineWithDefaults(rng RandomSource) *GameEngine {
	e, err := NewEngine(DefaultConfig(), rng)
	if err != nil {
		// The built-in config always validates
		panic(err)
	}
	return e
}

func (e *GameEngine) deal() GameState {
	if e.config.Seed != nil {
		return NewGame(rand.New(rand.NewSource(*e.config.Seed)))
	}
	return NewGame(e.rng)
}

// GetState returns the current game state
func (e *GameEngine) GetState() GameState {
	return e.state
}

// SetState replaces the table, e.g. to resume a known position. The state
// must satisfy the invariants; the undo history is cleared.
func (e *GameEngine) SetState(state GameState) error {
	if err := CheckInvariants(state); err != nil {
		return err
	}
	e.state = NewState(state.Placements)
	e.state.HoveredPile = state.HoveredPile
	e.history.Clear()
	return nil
}

// Board returns the current state grouped by pile
func (e *GameEngine) Board() Board {
	return e.state.Board()
}

// Pile returns the cards of one pile, bottom first
func (e *GameEngine) Pile(kind PileKind, index int) []CardPlacement {
	return e.state.Pile(kind, index)
}

// Reset deals a new game. The undo history is cleared while the cumulative
// move log is kept.
func (e *GameEngine) Reset() GameState {
	e.state = e.deal()
	e.history.Clear()
	e.message = e.config.Messages.Welcome
	return e.state
}

// IsWon returns whether every card is on a foundation
func (e *GameEngine) IsWon() bool {
	return IsWon(e.state)
}

// Status returns the externally observable game status
func (e *GameEngine) Status() Status {
	return StatusOf(e.state)
}

// Message returns the text describing the outcome of the last operation
func (e *GameEngine) Message() string {
	return e.message
}

// CanApply reports whether Apply would accept in without changing anything
func (e *GameEngine) CanApply(in Intent) bool {
	if in == nil {
		return false
	}
	if IsUIOnly(in) {
		return Legal(e.state, in)
	}
	if IsWon(e.state) {
		return false
	}
	if _, ok := in.(Undo); ok {
		return e.CanUndo()
	}
	return Legal(e.state, in)
}

// Apply validates in with the oracle and, when legal, reduces the state.
// Rejected intents leave the state untouched and return false.
func (e *GameEngine) Apply(in Intent) bool {
	if in == nil {
		return false
	}

	// Hover changes are UI state: no undo entry, no move log
	if IsUIOnly(in) {
		if !Legal(e.state, in) {
			return false
		}
		e.state = Apply(e.state, in)
		return true
	}

	if _, ok := in.(Undo); ok {
		return e.Undo()
	}

	before := e.state
	card, hasCard := intentCard(before, in)

	if IsWon(before) {
		e.message = e.config.Messages.Victory
		e.record(in.Name(), card, hasCard, before, before, false)
		return false
	}

	if !Legal(before, in) {
		e.message = e.config.Messages.IllegalMove
		e.record(in.Name(), card, hasCard, before, before, false)
		return false
	}

	next := Apply(before, in)
	if e.config.StrictInvariants {
		if err := CheckInvariants(next); err != nil {
			log.Printf("[ENGINE] discarding %s: %v", in.Name(), err)
			e.message = e.config.Messages.IllegalMove
			e.record(in.Name(), card, hasCard, before, before, false)
			return false
		}
	}

	e.history.Push(before)
	e.state = next
	e.record(in.Name(), card, hasCard, before, next, true)

	switch {
	case IsWon(next):
		e.message = e.config.Messages.Victory
	case isRecycle(before, in):
		e.message = e.config.Messages.StockRecycled
	default:
		e.message = ""
	}
	return true
}

// Undo restores the state preceding the last applied intent. The hovered
// pile is UI state and survives the rollback.
func (e *GameEngine) Undo() bool {
	if !e.CanUndo() {
		if IsWon(e.state) {
			e.message = e.config.Messages.Victory
		} else {
			e.message = e.config.Messages.NothingToUndo
		}
		return false
	}

	prev, _ := e.history.Pop()
	prev.HoveredPile = e.state.HoveredPile
	e.record(IntentUndo, Card{}, false, e.state, prev, true)
	e.state = prev
	e.message = e.config.Messages.Undone
	return true
}

// CanUndo reports whether there is an undoable step and the game is still open
func (e *GameEngine) CanUndo() bool {
	return e.history.Len() > 0 && !IsWon(e.state)
}

// UndoDepth returns the number of steps that can be undone
func (e *GameEngine) UndoDepth() int {
	return e.history.Len()
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and deals a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	cfg := config.withDefaults()
	e.config = &cfg
	e.history = NewHistory(cfg.UndoLimit)
	e.state = e.deal()
	e.message = cfg.Messages.Welcome
	return nil
}

// GetMoveHistory returns the complete move log
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(e.moves))
	copy(out, e.moves)
	return out
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.moves) == 0 {
		return nil
	}
	last := e.moves[len(e.moves)-1]
	return &last
}

// TotalMoves returns the number of logged moves across resets
func (e *GameEngine) TotalMoves() int {
	return len(e.moves)
}

func (e *GameEngine) record(action string, card Card, hasCard bool, before, after GameState, success bool) {
	entry := MoveHistoryEntry{
		Action:     action,
		Timestamp:  e.now().Unix(),
		Success:    success,
		MoveNumber: len(e.moves) + 1,
	}
	if hasCard {
		c := card
		entry.Card = &c
		if _, p, ok := before.Find(card); ok {
			from := p.Position
			entry.From = &from
		}
		if success {
			if _, p, ok := after.Find(card); ok {
				to := p.Position
				entry.To = &to
			}
		}
	}
	e.moves = append(e.moves, entry)
}

// intentCard names the card an intent moves, when there is one
func intentCard(gs GameState, in Intent) (Card, bool) {
	switch in := in.(type) {
	case RevealStockCard:
		return in.Card, true
	case MoveToFoundation:
		return in.Card, true
	case MoveToTableau:
		return in.Card, true
	case RevealTableauTop:
		return in.Card, true
	case DrawStockCard:
		if top, ok := gs.Top(StockClosed, 0); ok {
			return top.Card, true
		}
	}
	return Card{}, false
}

func isRecycle(before GameState, in Intent) bool {
	switch in.(type) {
	case RecycleStock:
		return true
	case DrawStockCard:
		return before.Count(StockClosed, 0) == 0
	}
	return false
}
