// Package websocket provides WebSocket transport for the Klondike server.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting of game views after every state change
//   - Hover and key messages from the UI
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// pair of goroutines that read, write and clean up.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {"type": "hover", "column": 3}, {"type": "unhover"} or
//     {"type": "key", "key": "Enter"}
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Incoming messages are passed to the handler installed with OnMessage; the
// hub itself never touches game state.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12) when
// establishing the connection. Session IDs are matched case-insensitively and
// updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.OnMessage(func(sessionID string, msg websocket.ClientMessage) { ... })
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
