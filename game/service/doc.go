// Package service provides the business logic layer for the Klondike server.
//
// The service package implements:
//   - Multi-session game management
//   - Wire decoding of intents and dispatch through the legality oracle
//   - Undo, reset and keyboard shortcuts with double-press detection
//   - Move history paging
//   - Configuration access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine and key state, guarded by
// the session lock, so intents against one session are applied one at a time
// while different sessions proceed independently.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Apply(ctx, sessionInfo.ID, service.IntentRequest{Type: "draw_stock_card"})
package service
