// Package engine provides the core game logic for the Next Stop server.
//
// The engine package implements the game mechanics including:
//   - The 16-card deck, deterministic shuffling, and draw/reshuffle rules
//   - Per-player sheet state: train-car windows, station marks, line completion
//   - The game state machine: card reveals, action processing, round advance
//   - End-of-game detection and final scoring
//
// Core Types:
//
// Card and Deck model the card catalog. PlayerSheet holds one player's
// progress against a city map. GameState owns the authoritative state of a
// single game and dispatches player actions to the sheets. CityMap is the
// static station/line topology for a city, loaded by the config package and
// passed by reference into every rules call; the engine never mutates it.
//
// Usage:
//
//	game := engine.NewGameState("amsterdam", conductorID)
//	game.AddPlayer(playerID, cityMap)
//
//	card, ok := game.RevealCard()
//	events, err := game.ProcessAction(playerID, engine.Action{
//		Kind:   engine.ActionChooseLine,
//		LineID: "red",
//	}, m)
//
// Game Rules:
//
// Each round the conductor reveals a card and every player applies it to one
// of their lines, filling a train-car window and marking stations along the
// line. Express cards skip over already-marked stations; number cards stop
// there. Transfer cards mark a transfer number worth double its connection
// count at scoring. The game ends once every window on every sheet is
// filled; empty stations cost half a point each, rounded down.
package engine
