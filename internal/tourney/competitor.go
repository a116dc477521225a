package tourney

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tourney/internal/arena"
)

// Competitor is an entrant held in a Registry. Stats is free-form data
// that resolvers may update; the engine never touches it.
type Competitor struct {
	id    uint32
	Name  string
	Stats []float64
}

// NewCompetitor creates an unregistered competitor. The name is NFC
// normalised so that equal-looking names compare equal.
func NewCompetitor(name string, stats ...float64) *Competitor {
	return &Competitor{Name: norm.NFC.String(name), Stats: stats}
}

// ID implements arena.Entity.
func (c *Competitor) ID() uint32 { return c.id }

// SetID implements arena.Entity.
func (c *Competitor) SetID(id uint32) { c.id = id }

// Registry is the externally owned set of competitors.
type Registry = arena.Arena[*Competitor]

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return arena.New[*Competitor]()
}
