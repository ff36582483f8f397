// Package mcp exposes the Klondike server to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API described in package api, and the JSON response is rendered as
// plain text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: the table, with face-down cards shown as ##
//   - apply_intent: apply any intent by name (type, card, column)
//   - draw, press_key, undo, reset_game: shortcuts for common actions
//   - move_history: paginated move log
//   - list_configs: available configurations
//   - game_instructions: rules and intent reference
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp, handled by HandleMessage on the same server
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
