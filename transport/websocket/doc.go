// Package websocket is the player-facing transport: one connection per
// player, JSON messages in both directions.
//
// Each connection runs a read pump and a write pump. The read pump decodes
// service.Message envelopes and routes them: join_game goes through the
// session registry's matchmaking, start_game and player_action go to the
// connection's coordinator. Messages that fail to decode are dropped
// without a reply.
//
// The write pump drains a buffered send channel, coalescing queued
// messages into one frame separated by newlines, and keeps the connection
// alive with pings. The channel doubles as the player's Outbox: a full
// buffer makes TrySend report false and the coordinator skips the message.
//
// Disconnecting removes the player's outbox from their game but leaves
// their sheet in place, so the game can still end and the player can
// rejoin.
package websocket
