// Package mcp exposes the server's read-only REST surface as MCP tools.
//
// The client holds no game state: every tool call is proxied to the REST
// API and the JSON response is reformatted into text. Gameplay itself
// stays on the websocket protocol, so the tool set covers observation
// only: list_cities, list_sessions, get_session, and game_state.
//
// Main mounts the MCP server's HTTP message handler at /mcp.
package mcp
