package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:                "Test Config",
		Description:         "A valid test configuration",
		UndoLimit:           50,
		DoublePressWindowMS: 300,
		Messages: Messages{
			Welcome:     "Welcome to the test game!",
			Victory:     "Victory!",
			IllegalMove: "Can't move!",
		},
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	config := createValidConfig()
	err := ValidateGameConfig(config)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got: %v", err)
	}

	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Expected the built-in config to pass validation, got: %v", err)
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	if err := ValidateGameConfig(nil); !errors.Is(err, ErrConfigRequired) {
		t.Errorf("Expected ErrConfigRequired, got %v", err)
	}
}

func TestValidateGameConfig_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		message string
	}{
		{"name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome is required"},
		{"victory", func(c *GameConfig) { c.Messages.Victory = "" }, "messages.victory is required"},
		{"illegal move", func(c *GameConfig) { c.Messages.IllegalMove = "" }, "messages.illegal_move is required"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatalf("Expected error for missing %s", test.name)
			}
			if !strings.Contains(err.Error(), test.message) {
				t.Errorf("Expected %q, got: %v", test.message, err)
			}
		})
	}
}

func TestValidateGameConfig_UndoLimit(t *testing.T) {
	tests := []struct {
		limit int
		valid bool
	}{
		{0, true},
		{1, true},
		{MaxUndoLimit, true},
		{-1, false},
		{MaxUndoLimit + 1, false},
	}

	for _, test := range tests {
		config := createValidConfig()
		config.UndoLimit = test.limit
		err := ValidateGameConfig(config)
		if test.valid && err != nil {
			t.Errorf("undo_limit %d: unexpected error %v", test.limit, err)
		}
		if !test.valid && (err == nil || !strings.Contains(err.Error(), "undo_limit must be between")) {
			t.Errorf("undo_limit %d: expected range error, got %v", test.limit, err)
		}
	}
}

func TestValidateGameConfig_DoublePressWindow(t *testing.T) {
	tests := []struct {
		window int
		valid  bool
	}{
		{0, true},
		{MinDoublePressWindowMS, true},
		{MaxDoublePressWindowMS, true},
		{MinDoublePressWindowMS - 1, false},
		{MaxDoublePressWindowMS + 1, false},
	}

	for _, test := range tests {
		config := createValidConfig()
		config.DoublePressWindowMS = test.window
		err := ValidateGameConfig(config)
		if test.valid && err != nil {
			t.Errorf("window %d: unexpected error %v", test.window, err)
		}
		if !test.valid && err == nil {
			t.Errorf("window %d: expected an error", test.window)
		}
	}
}

func TestDoublePressWindow(t *testing.T) {
	config := createValidConfig()
	if got := config.DoublePressWindow(); got != 300*time.Millisecond {
		t.Errorf("Expected 300ms, got %v", got)
	}

	config.DoublePressWindowMS = 0
	if got := config.DoublePressWindow(); got != DefaultDoublePressWindow {
		t.Errorf("Expected the default window, got %v", got)
	}

	var nilConfig *GameConfig
	if got := nilConfig.DoublePressWindow(); got != DefaultDoublePressWindow {
		t.Errorf("Expected the default window for nil config, got %v", got)
	}
}

func TestConfigDefaultsOptionalMessages(t *testing.T) {
	engine, err := NewEngine(createValidConfig(), seeded(1))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	msgs := engine.GetConfig().Messages
	if msgs.Undone == "" || msgs.NothingToUndo == "" || msgs.StockRecycled == "" {
		t.Errorf("Expected optional messages to be filled, got %+v", msgs)
	}
}

func TestLoadGameConfig(t *testing.T) {
	// Create a temporary config file
	tempFile := filepath.Join(t.TempDir(), "test_config.json")

	configContent := `{
		"name": "Test Config",
		"description": "Test description",
		"seed": 77,
		"undo_limit": 10,
		"double_press_window_ms": 400,
		"strict_invariants": true,
		"messages": {
			"welcome": "Welcome!",
			"victory": "Victory!",
			"illegal_move": "No!",
			"stock_recycled": "Again",
			"undone": "Back",
			"nothing_to_undo": "Nope"
		}
	}`

	err := os.WriteFile(tempFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadGameConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Name != "Test Config" {
		t.Errorf("Expected config name 'Test Config', got '%s'", config.Name)
	}
	if config.Seed == nil || *config.Seed != 77 {
		t.Errorf("Expected seed 77, got %v", config.Seed)
	}
	if config.UndoLimit != 10 || config.DoublePressWindowMS != 400 || !config.StrictInvariants {
		t.Errorf("Unexpected rule fields: %+v", config)
	}
	if config.Messages.NothingToUndo != "Nope" {
		t.Errorf("Expected nothing_to_undo 'Nope', got %q", config.Messages.NothingToUndo)
	}

	// Test loading non-existent file
	_, err = LoadGameConfig("nonexistent.json")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}

	// Invalid configs fail validation
	badFile := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(badFile, []byte(`{"name": "x"}`), 0644); err != nil {
		t.Fatalf("Failed to create bad config file: %v", err)
	}
	if _, err := LoadGameConfig(badFile); err == nil {
		t.Error("Expected validation error for incomplete config")
	}
}
