// Package tourney implements the structural model of a tournament.
//
// A Tourney is a graph of fixed-arity matches held in an arena. Every slot
// of a match carries an Outcome that says where the slot's resolved
// occupant goes next:
//   - Advance routes it into a slot of another match
//   - Place records it at a terminal placement index
//   - Discard eliminates it
//
// Matches are added without checking. Validate (and EntryPoints, which
// runs it first) walks the whole graph once, in arena order then slot
// order, and reports the first malformed outcome as a StructureError.
//
// The package also defines Competitor and Registry, the externally owned
// entity registry that an execution instance borrows.
package tourney
