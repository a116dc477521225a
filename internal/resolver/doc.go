// Package resolver provides sample engine.Resolver implementations.
//
//   - Identity keeps the slot order: slot 0 always wins
//   - RandomSwap swaps the first two slots with a fixed probability
//   - Script replays predetermined permutations, one per call
//   - Seeded orders occupants by rating (Stats[0]) and counts games played
//
// All of them keep the engine contract: the result is a permutation of the
// input, so its length and ids are always valid.
package resolver
