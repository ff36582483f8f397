package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Limits for the keyboard double-press window
const (
	MinDoublePressWindowMS     = 50
	MaxDoublePressWindowMS     = 2000
	DefaultDoublePressWindowMS = 250
)

// GameConfig defines the rules knobs and texts of a game variant
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Seed fixes the deal; nil deals from the engine's random source
	Seed *int64 `json:"seed,omitempty"`

	// UndoLimit caps the undo history, 0 means unbounded
	UndoLimit int `json:"undo_limit"`

	DoublePressWindowMS int  `json:"double_press_window_ms"`
	StrictInvariants    bool `json:"strict_invariants"`

	Messages Messages `json:"messages"`
}

// Messages holds the player-facing texts a config can customize
type Messages struct {
	Welcome       string `json:"welcome"`
	Victory       string `json:"victory"`
	IllegalMove   string `json:"illegal_move"`
	StockRecycled string `json:"stock_recycled"`
	Undone        string `json:"undone"`
	NothingToUndo string `json:"nothing_to_undo"`
}

// DoublePressWindow returns the configured window, defaulting to 250ms
func (c *GameConfig) DoublePressWindow() time.Duration {
	if c == nil || c.DoublePressWindowMS == 0 {
		return DefaultDoublePressWindow
	}
	return time.Duration(c.DoublePressWindowMS) * time.Millisecond
}

// ValidateGameConfig validates a game configuration
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return ErrConfigRequired
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.UndoLimit < 0 || config.UndoLimit > MaxUndoLimit {
		return fmt.Errorf("config validation: undo_limit must be between 0 and %d, got %d", MaxUndoLimit, config.UndoLimit)
	}

	// 0 selects the default window
	if config.DoublePressWindowMS != 0 &&
		(config.DoublePressWindowMS < MinDoublePressWindowMS || config.DoublePressWindowMS > MaxDoublePressWindowMS) {
		return fmt.Errorf("config validation: double_press_window_ms must be between %d and %d, got %d",
			MinDoublePressWindowMS, MaxDoublePressWindowMS, config.DoublePressWindowMS)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.IllegalMove == "" {
		return fmt.Errorf("config validation: messages.illegal_move is required")
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in classic variant
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:                "classic",
		Description:         "Classic Klondike, draw one, unlimited passes through the stock",
		DoublePressWindowMS: DefaultDoublePressWindowMS,
		Messages: Messages{
			Welcome:       "New deal. Build each foundation from Ace to King.",
			Victory:       "All four foundations complete. You win!",
			IllegalMove:   "That move is not allowed",
			StockRecycled: "Stock turned over",
			Undone:        "Move undone",
			NothingToUndo: "Nothing to undo",
		},
	}
}

// withDefaults fills optional messages so the driver never reports an empty text
func (c GameConfig) withDefaults() GameConfig {
	def := DefaultConfig().Messages
	if c.Messages.StockRecycled == "" {
		c.Messages.StockRecycled = def.StockRecycled
	}
	if c.Messages.Undone == "" {
		c.Messages.Undone = def.Undone
	}
	if c.Messages.NothingToUndo == "" {
		c.Messages.NothingToUndo = def.NothingToUndo
	}
	return c
}
