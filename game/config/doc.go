// Package config provides configuration management for the Klondike server.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery, listing and saving
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - An optional deal seed for reproducible games
//   - The undo depth and the Enter double-press window
//   - Whether transitions are checked against the table invariants
//   - Game messages for various events
//
// The default configuration is classic.json when present, otherwise the
// first valid file, otherwise the built-in classic rules.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("practice")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
