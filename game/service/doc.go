// Package service coordinates one running game and defines the wire
// protocol spoken over the websocket transport.
//
// The service package implements:
//   - The JSON message set exchanged with clients (join, actions, state
//     pushes, results, errors)
//   - The Coordinator, which serializes all access to a GameState and
//     fans events out to connected players
//   - Delivery policy: broadcasts go to every registered outbox,
//     action results and errors go to the acting player only
//
// Delivery is best effort. An Outbox whose buffer is full reports false
// from TrySend and the message is skipped; there is no retry queue. A
// client that falls behind misses pushes but catches up from the next
// full state snapshot.
package service
