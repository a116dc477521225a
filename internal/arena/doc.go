// Package arena provides an ID-stable collection for entities that are
// referenced by small numeric identifiers.
//
// An Arena owns its entities in a dense slice and maps each external
// identifier to the entity's current storage position. Identifiers are
// decoupled from positions: removal swaps the last entity into the vacated
// position and patches that single index entry, so every surviving
// identifier stays valid.
//
// Identifiers are scoped to one arena and are NOT permanently unique. A
// removed identifier is pushed on a free stack and handed out again by the
// next Insert. This is appropriate for the closed world of one tournament
// run, not for long-lived stores.
//
// Arena is not safe for concurrent use.
package arena
