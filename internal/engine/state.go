package engine

import (
	"fmt"
	"slices"
)

// MatchState is the lifecycle of a match within one run.
//
// Transitions only move forward: Pending -> Ready -> Done. A match is
// Ready when every slot is filled and its stage gate is open; Ready is
// recomputed each tick, Done is permanent.
type MatchState uint8

const (
	MatchPending MatchState = iota
	MatchReady
	MatchDone
)

func (s MatchState) String() string {
	switch s {
	case MatchPending:
		return "pending"
	case MatchReady:
		return "ready"
	case MatchDone:
		return "done"
	default:
		return fmt.Sprintf("MatchState(%d)", uint8(s))
	}
}

// StageState is the gate state of one stage tag.
// A closed stage never reopens.
type StageState uint8

const (
	StageOpen StageState = iota
	StageClosed
)

func (s StageState) String() string {
	switch s {
	case StageOpen:
		return "open"
	case StageClosed:
		return "closed"
	default:
		return fmt.Sprintf("StageState(%d)", uint8(s))
	}
}

// stageTable records the gate state of every stage seen at initialisation.
type stageTable map[uint32]StageState

func newStageTable(stages []uint32) stageTable {
	t := make(stageTable, len(stages))
	for _, s := range stages {
		t[s] = StageOpen
	}
	return t
}

// close moves stage s to closed. Unknown stages are ignored.
func (t stageTable) close(s uint32) {
	if _, ok := t[s]; ok {
		t[s] = StageClosed
	}
}

// gateOpen reports whether matches of the stage after pred may resolve:
// pred is unrecorded or closed.
func (t stageTable) gateOpen(pred uint32) bool {
	st, ok := t[pred]
	return !ok || st == StageClosed
}

// sorted returns the known stages in ascending order.
func (t stageTable) sorted() []uint32 {
	out := make([]uint32, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
