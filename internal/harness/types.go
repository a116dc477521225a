package harness

import "strconv"

// TraceEvent records one resolved match.
type TraceEvent struct {
	Tick    int64    `json:"tick"`
	Match   uint32   `json:"match"`
	Key     string   `json:"key,omitempty"` // definition key, if any
	Stage   *uint32  `json:"stage,omitempty"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// Label returns the definition key, or the match id when there is none.
func (e TraceEvent) Label() string {
	if e.Key != "" {
		return e.Key
	}
	return strconv.FormatUint(uint64(e.Match), 10)
}

// refers reports whether ref names this event's match by key or id.
func (e TraceEvent) refers(ref string) bool {
	return ref == e.Label() || ref == strconv.FormatUint(uint64(e.Match), 10)
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	RunID string `json:"run_id"`

	// Trace holds one event per resolved match in resolution order.
	Trace []TraceEvent `json:"trace"`

	// Placements holds competitor names; "" marks an empty placement.
	Placements []string `json:"placements"`

	// Ticks is the number of resolving ticks.
	Ticks int `json:"ticks"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Placements: []string{},
		Errors:     []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
