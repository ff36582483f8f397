package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Klondike Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klondike Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Move all 52 cards onto the four foundations, each built by suit from Ace to King.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the current table
- apply_intent: Apply one intent (move_to_tableau, move_to_foundation, ...)
- draw: Turn the next stock card, or recycle the stock when it is empty
- press_key: Keyboard shortcuts (space, Enter, z)
- undo: Take back the last applied intent
- reset_game: Deal a new game
- move_history: View past moves
- list_configs: List available configurations
- game_instructions: Get complete rules and the intent reference

Cards are written rank then suit: AS, 10H, QD, KC. Face-down cards show as ##.`),
	)

	// Register all tools
	c.registerTools()
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session ID",
			},
		},
		Required: []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionOnlySchema(),
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current table: tableau, foundations, stock and status",
		InputSchema: sessionOnlySchema(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "apply_intent",
		Description: "Apply one intent. Illegal intents are refused without changing the table.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"type": map[string]interface{}{
					"type": "string",
					"enum": []string{
						engine.IntentRevealStockCard,
						engine.IntentDrawStockCard,
						engine.IntentRecycleStock,
						engine.IntentMoveToFoundation,
						engine.IntentMoveToTableau,
						engine.IntentRevealTableauTop,
						engine.IntentSelectHoveredPile,
						engine.IntentClearHoveredPile,
						engine.IntentUndo,
					},
					"description": "Intent to apply",
				},
				"card": map[string]interface{}{
					"type":        "string",
					"description": "Card the intent acts on, e.g. QH or 10S",
				},
				"column": map[string]interface{}{
					"type":        "integer",
					"description": "Tableau column 0-6 for move_to_tableau and select_hovered_pile",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are making this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "type"},
		},
	}, c.handleApplyIntent)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw",
		Description: "Turn the top stock card face up, or turn the waste back over when the stock is empty",
		InputSchema: sessionOnlySchema(),
	}, c.handleDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "press_key",
		Description: "Press a keyboard shortcut: space draws, Enter twice quickly sends the hovered card to a foundation, z undoes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"key": map[string]interface{}{
					"type":        "string",
					"enum":        []string{service.KeySpace, service.KeyEnter, service.KeyUndo},
					"description": "Key to press",
				},
			},
			Required: []string{"session_id", "key"},
		},
	}, c.handlePressKey)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Take back the last applied intent",
		InputSchema: sessionOnlySchema(),
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Deal a new game in the session",
		InputSchema: sessionOnlySchema(),
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameView(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", sessionPath(sessionID, ""), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var view service.GameView
	err := c.apiCall("GET", sessionPath(sessionID, "/state"), nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameView(&view)), nil
}

func (c *Client) handleApplyIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	intentType, _ := args["type"].(string)
	card, _ := args["card"].(string)

	// The intent parameter serves as rubber duck debugging and is not sent
	body := service.IntentRequest{Type: intentType, Card: card}
	if column, ok := args["column"].(float64); ok {
		if column != math.Trunc(column) {
			return mcp.NewToolResultError(fmt.Sprintf("column must be a whole number, got %v", column)), nil
		}
		col := int(column)
		body.Column = &col
	}

	var result service.MoveResult
	err := c.apiCall("POST", sessionPath(sessionID, "/intents"), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.MoveResult
	err := c.apiCall("POST", sessionPath(sessionID, "/intents"), service.IntentRequest{Type: engine.IntentDrawStockCard}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	key, _ := args["key"].(string)

	var result service.MoveResult
	err := c.apiCall("POST", sessionPath(sessionID, "/keys"), map[string]string{"key": key}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.MoveResult
	err := c.apiCall("POST", sessionPath(sessionID, "/undo"), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *service.GameView `json:"state"`
	}

	err := c.apiCall("POST", sessionPath(sessionID, "/reset"), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameView(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", path, nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		undo := "unlimited"
		if config.UndoLimit > 0 {
			undo = fmt.Sprintf("%d", config.UndoLimit)
		}
		deal := "random deal"
		if config.Seeded {
			deal = "fixed deal"
		}
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Undo: %s, %s\n\n",
			config.Name, config.ConfigID, config.Description, undo, deal)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Klondike Solitaire - Complete Instructions

GAME OBJECTIVE:
Build all four foundations by suit, from Ace up to King. The game is won when
all 52 cards are on the foundations.

THE TABLE:
• Tableau: 7 columns (0-6). Column i starts with i+1 cards, only the top one face up.
• Stock: the remaining 24 cards, face down.
• Waste: cards turned from the stock, face up. Only its top card can be played.
• Foundations: one per suit (♠ ♥ ♣ ♦), empty at the start.

RULES:
• Tableau builds down in alternating colors: a red 9 goes on a black 10.
• Only a King may be placed on an empty column.
• Foundations build up by suit: A, 2, 3 ... K.
• A face-up card on the tableau moves together with every card above it.
• Only single top cards go to a foundation; foundation cards never move back.
• A face-down card that is on top of its column can be turned face up.
• When the stock is empty, drawing turns the whole waste back into the stock.

INTENTS (apply_intent):
• draw_stock_card - turn the next stock card (recycles when the stock is empty)
• reveal_stock_card {card} - turn a specific card, which must be the top of the stock
• recycle_stock - turn the waste back over once the stock is empty
• move_to_foundation {card} - move a top card to its suit's foundation
• move_to_tableau {card, column} - move a card (and the cards above it) to a column
• reveal_tableau_top {card} - flip the face-down top card of a column
• select_hovered_pile {column} / clear_hovered_pile - pointer hover, not undoable
• undo - take back the last intent

CARD NOTATION:
Rank then suit letter: A 2 3 4 5 6 7 8 9 10 J Q K with S H C D. Examples: AS, 10H, QD.
In game_state output, face-down cards show as ##.

STRATEGY TIPS:
1. Turn face-down tableau cards as early as possible
2. Prefer moves that empty a column only when a King is ready for it
3. Send Aces and Twos to the foundations immediately
4. Use undo to explore, within the config's undo limit

A refused intent is not an error: the table is unchanged and the response says why.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nStatus: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Status,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameView(session.GameState))
}

func formatPile(pile []engine.CardPlacement) string {
	if len(pile) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(pile))
	for i, p := range pile {
		if p.FaceUp {
			parts[i] = p.Card.Code()
		} else {
			parts[i] = "##"
		}
	}
	return strings.Join(parts, " ")
}

func formatGameView(view *service.GameView) string {
	if view == nil {
		return "No game state available"
	}

	var b strings.Builder
	board := view.Board

	b.WriteString(fmt.Sprintf("Status: %s\n", view.Status))
	if view.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", view.Message))
	}

	b.WriteString("\nFoundations:")
	for i, suit := range engine.Suits {
		top := "--"
		if i < len(board.Foundations) && len(board.Foundations[i]) > 0 {
			top = board.Foundations[i][len(board.Foundations[i])-1].Card.Code()
		}
		b.WriteString(fmt.Sprintf("  %s %s", suit.Symbol(), top))
	}
	b.WriteString("\n")

	waste := "--"
	if n := len(board.StockOpen); n > 0 {
		waste = board.StockOpen[n-1].Card.Code()
	}
	b.WriteString(fmt.Sprintf("Stock: %d face down | Waste: %d (top %s)\n",
		view.StockClosedCount, view.StockOpenCount, waste))

	b.WriteString("\nTableau:\n")
	for col, pile := range board.Tableau {
		marker := " "
		if board.HoveredPile != nil && *board.HoveredPile == col {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s%d: %s\n", marker, col, formatPile(pile)))
	}

	b.WriteString(fmt.Sprintf("\nCan draw: %t | Undo depth: %d | Moves: %d\n",
		view.CanDraw, view.UndoDepth, view.TotalMoves))
	if view.Won {
		b.WriteString("\n🎉 All foundations complete!\n")
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString(fmt.Sprintf("✓ %s applied\n", result.Intent))
	} else {
		b.WriteString(fmt.Sprintf("✗ %s refused\n", result.Intent))
	}
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("%s\n", result.Message))
	}

	for _, ev := range result.Events {
		switch {
		case ev.Card != "" && ev.From != nil && ev.To != nil:
			b.WriteString(fmt.Sprintf("• %s %s: %s -> %s\n", ev.Type, ev.Card, ev.From, ev.To))
		case ev.Message != "":
			b.WriteString(fmt.Sprintf("• %s: %s\n", ev.Type, ev.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameView(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d), Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s", move.MoveNumber, move.Action, status)
		if move.Card != nil {
			line += " " + move.Card.Code()
		}
		if move.From != nil && move.To != nil {
			line += fmt.Sprintf(" %s -> %s", move.From, move.To)
		}
		result += line + "\n"
	}

	return result
}
