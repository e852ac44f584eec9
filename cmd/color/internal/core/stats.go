package core

import "sync/atomic"

// Stats counts exchanges handled by a ConnectionHandler. The zero value is ready to use
// and a nil *Stats discards updates.
type Stats struct {
	active    atomic.Int64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Active    int64  `json:"active"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
}

// Begin marks one exchange as in flight and returns the func that ends it.
func (s *Stats) Begin() (end func(err error)) {
	if s == nil {
		return func(error) {}
	}
	s.active.Add(1)
	return func(err error) {
		s.active.Add(-1)
		if err != nil {
			s.failed.Add(1)
		} else {
			s.completed.Add(1)
		}
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		Active:    s.active.Load(),
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
	}
}
