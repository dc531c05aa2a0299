// Package session keeps the registry of running games and matches joining
// players onto them.
//
// JoinOrCreate is the single entry point for matchmaking: a joiner lands
// in any same-city game with a free seat, or a fresh game is created with
// them as conductor. Games seat up to SessionCapacity players. Finished
// games linger until RemoveEnded sweeps them, so late REST reads can still
// fetch final state.
package session
