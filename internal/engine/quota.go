package engine

// tickQuota bounds the number of resolving ticks Run may perform.
//
// A well-formed graph stalls after at most one tick per match, so the
// quota only trips on resolvers or graphs that keep producing work, e.g.
// a caller refilling slots between ticks.
type tickQuota struct {
	limit   int
	current int
}

func newTickQuota(limit int) *tickQuota {
	return &tickQuota{limit: limit}
}

// check counts one tick and fails once the limit is passed.
// A limit of 0 or less disables the quota.
func (q *tickQuota) check(runID string) error {
	q.current++
	if q.limit > 0 && q.current > q.limit {
		return &TicksExceededError{RunID: runID, Ticks: q.current, Limit: q.limit}
	}
	return nil
}
