// Package api exposes the read side of the server over REST and mounts
// the websocket endpoint.
//
// Routes:
//
//	GET    /api/health              server liveness and session count
//	GET    /api/cities              available city maps
//	GET    /api/sessions            running sessions, newest first
//	GET    /api/sessions/{id}       one session's summary
//	DELETE /api/sessions/{id}       drop a session from the registry
//	GET    /api/sessions/{id}/state full game state snapshot
//	GET    /ws                      websocket upgrade (gameplay happens here)
//
// All gameplay mutation flows through the websocket protocol; the REST
// surface only observes and administers. Responses are JSON. The router
// is wrapped with CORS and request logging middleware.
package api
