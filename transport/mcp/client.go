package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nextstop/game/config"
	"nextstop/game/engine"
	"nextstop/game/service"
)

// Client is a thin MCP client that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates an MCP client that calls the REST API at baseURL.
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

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Next Stop",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Next Stop - MCP Interface

Read-only tools over a running game server. Players mark subway stations
on personal sheets as cards are revealed; the game ends when every train
car window is filled.

AVAILABLE TOOLS:
- list_cities: Available city maps with line/station counts
- list_sessions: All running game sessions
- get_session: One session's summary (players, round, status)
- game_state: Full state of a session (current card, sheets, scores)

Gameplay happens over the websocket protocol; these tools only observe.`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_cities",
		Description: "List available city maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCities)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all running game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the full game state of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)
}

// GetMCPServer returns the underlying MCP server for mounting.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(method, path string, result interface{}) error {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return err
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

// Tool handlers

func (c *Client) handleListCities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Cities []config.CityInfo `json:"cities"`
	}
	if err := c.apiCall("GET", "/api/cities", &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available cities (%d):\n", len(resp.Cities))
	for _, city := range resp.Cities {
		fmt.Fprintf(&b, "- %s: %d lines, %d stations\n", city.City, city.LineCount, city.StationCount)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall("GET", "/api/sessions", &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if resp.Count == 0 {
		return mcp.NewToolResultText("No running sessions."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Running sessions (%d):\n", resp.Count)
	for _, info := range resp.Sessions {
		b.WriteString(formatSessionInfo(info))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.SessionInfo
	if err := c.apiCall("GET", "/api/sessions/"+sessionID, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall("GET", "/api/sessions/"+sessionID+"/state", &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

// Formatters

func formatSessionInfo(info service.SessionInfo) string {
	status := "running"
	if info.GameEnded {
		status = "ended"
	}
	return fmt.Sprintf("- %s | %s | %d player(s) | round %d | %s | created %s\n",
		info.ID, info.City, info.PlayerCount, info.Round, status,
		info.CreatedAt.Format(time.RFC3339))
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Game %s in %s, round %d\n", state.ID, state.City, state.Round)
	if state.GameEnded {
		b.WriteString("Status: ended\n")
	} else {
		b.WriteString("Status: running\n")
	}
	if state.CurrentCard != nil {
		fmt.Fprintf(&b, "Current card: %s\n", state.CurrentCard)
	} else {
		b.WriteString("Current card: none revealed\n")
	}
	fmt.Fprintf(&b, "Deck: %d cards, discard: %d\n", len(state.Deck), len(state.DiscardPile))

	playerIDs := make([]string, 0, len(state.Players))
	for id := range state.Players {
		playerIDs = append(playerIDs, id.String())
	}
	sort.Strings(playerIDs)

	fmt.Fprintf(&b, "Players (%d):\n", len(state.Players))
	for _, idStr := range playerIDs {
		for id, sheet := range state.Players {
			if id.String() != idStr {
				continue
			}
			fmt.Fprintf(&b, "- %s: %d station(s) marked, %d line(s) completed\n",
				idStr, len(sheet.MarkedStations), len(sheet.CompletedLines))
		}
	}
	return b.String()
}
