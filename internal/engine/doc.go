// Package engine runs a tournament built with package tourney.
//
// An Instance clones a validated structural model, borrows a competitor
// registry and, after Initialise seeds the entry points, advances the
// graph one layer per Step until nothing is left to resolve.
//
// ARCHITECTURE:
//
// Single-Threaded Stepping:
// Each Step is a bounded, synchronous pass over every match. There is no
// I/O, no goroutine and no internal timer; the caller decides when to stop
// (Run adds context cancellation and a tick quota on top of Step).
//
// Tick Flow:
//  1. Stages whose matches are all done are closed (never reopened)
//  2. Full, not-done matches behind an open gate are collected
//  3. Each is resolved by the caller's Resolver, in arena order
//  4. Place outcomes are written at once; Advance outcomes are queued
//  5. The match keeps the resolved order as its record and is marked done
//  6. Queued routes fill their target slots
//
// Deferring step 6 means a match can never be filled and resolved in the
// same tick, so each tick corresponds to one layer of the bracket.
//
// Errors:
// Structure errors surface from Initialise only. Step performs no
// validation; a Resolver that breaks its contract is a programming error
// and panics.
package engine
