package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

var (
	ErrUnknownKey      = errors.New("unknown key")
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// Keys understood by PressKey
const (
	KeySpace = " "
	KeyEnter = "Enter"
	KeyUndo  = "z"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Status         engine.Status      `json:"status"`
	GameState      *GameView          `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// GameView is the renderable snapshot of a session's table
type GameView struct {
	SessionID        string        `json:"session_id,omitempty"`
	ConfigName       string        `json:"config_name"`
	Status           engine.Status `json:"status"`
	Won              bool          `json:"won"`
	Message          string        `json:"message"`
	Board            engine.Board  `json:"board"`
	FoundationCounts []int         `json:"foundation_counts"`
	StockClosedCount int           `json:"stock_closed_count"`
	StockOpenCount   int           `json:"stock_open_count"`
	CanDraw          bool          `json:"can_draw"`
	CanUndo          bool          `json:"can_undo"`
	UndoDepth        int           `json:"undo_depth"`
	TotalMoves       int           `json:"total_moves"`
	Version          uint64        `json:"version"`
}

// MoveResult contains the result of an intent or key press
type MoveResult struct {
	Success   bool        `json:"success"`
	Intent    string      `json:"intent,omitempty"`
	GameState *GameView   `json:"game_state"`
	Message   string      `json:"message"`
	Events    []GameEvent `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // intent name, "stock_recycled", "victory", "undo", "reset"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Card      string           `json:"card,omitempty"`
	From      *engine.Position `json:"from,omitempty"`
	To        *engine.Position `json:"to,omitempty"`
}

// IntentRequest is the wire form of an intent
type IntentRequest struct {
	Type   string `json:"type"`
	Card   string `json:"card,omitempty"`
	Column *int   `json:"column,omitempty"`
}

// ToIntent decodes the request into an engine intent
func (r IntentRequest) ToIntent() (engine.Intent, error) {
	name := strings.ToLower(strings.TrimSpace(r.Type))

	switch name {
	case engine.IntentDrawStockCard:
		return engine.DrawStockCard{}, nil
	case engine.IntentRecycleStock:
		return engine.RecycleStock{}, nil
	case engine.IntentClearHoveredPile:
		return engine.ClearHoveredPile{}, nil
	case engine.IntentUndo:
		return engine.Undo{}, nil
	case engine.IntentSelectHoveredPile:
		column, err := r.column()
		if err != nil {
			return nil, err
		}
		return engine.SelectHoveredPile{Column: column}, nil
	}

	if !isCardIntent(name) {
		return nil, fmt.Errorf("%w: %q", engine.ErrUnknownIntent, r.Type)
	}
	card, err := r.card()
	if err != nil {
		return nil, err
	}

	switch name {
	case engine.IntentRevealStockCard:
		return engine.RevealStockCard{Card: card}, nil
	case engine.IntentMoveToFoundation:
		return engine.MoveToFoundation{Card: card}, nil
	case engine.IntentRevealTableauTop:
		return engine.RevealTableauTop{Card: card}, nil
	default:
		column, err := r.column()
		if err != nil {
			return nil, err
		}
		return engine.MoveToTableau{Card: card, Column: column}, nil
	}
}

func (r IntentRequest) card() (engine.Card, error) {
	if r.Card == "" {
		return engine.Card{}, fmt.Errorf("%w: %s requires a card", engine.ErrInvalidCard, r.Type)
	}
	return engine.ParseCard(r.Card)
}

func (r IntentRequest) column() (int, error) {
	if r.Column == nil {
		return 0, fmt.Errorf("%w: %s requires a column", engine.ErrInvalidColumn, r.Type)
	}
	if *r.Column < 0 || *r.Column >= engine.TableauCount {
		return 0, fmt.Errorf("%w: %d", engine.ErrInvalidColumn, *r.Column)
	}
	return *r.Column, nil
}

func isCardIntent(name string) bool {
	switch name {
	case engine.IntentRevealStockCard, engine.IntentMoveToFoundation,
		engine.IntentRevealTableauTop, engine.IntentMoveToTableau:
		return true
	}
	return false
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	UndoLimit   int    `json:"undo_limit"`
	Seeded      bool   `json:"seeded"`
}
