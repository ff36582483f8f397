// Package api provides HTTP REST API handlers for the Klondike server.
//
// The api package implements:
//   - Session management endpoints
//   - Intent, undo, reset and keyboard endpoints
//   - Move history with pagination
//   - Configuration listing, lookup and saving
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "practice"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N&status=won)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game view
//   - POST /api/sessions/{id}/intents - Apply an intent
//   - POST /api/sessions/{id}/undo - Undo the last applied intent
//   - POST /api/sessions/{id}/reset - Deal a new game
//   - POST /api/sessions/{id}/keys - Press a key ({"key": " " | "Enter" | "z"})
//   - GET /api/sessions/{id}/history - Move log (?page=&limit=&order=)
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a configuration
//
// Intents are sent as JSON:
//
//	{"type": "move_to_tableau", "card": "QH", "column": 3}
//	{"type": "draw_stock_card"}
//
// A refused intent is not an error: the response carries "success": false and
// the configured message.
//
// Usage:
//
//	hub := websocket.NewHub()
//	server := api.NewServer(gameService, hub)
//	go hub.Run()
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with 400 for undecodable intents or keys, 404
// for unknown sessions or configs and 500 otherwise:
//
//	{"error": "error message"}
package api
