package xlayout

import "sync/atomic"

type routerStats struct {
	dispatched  atomic.Uint64
	written     atomic.Uint64
	writeErrors atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	Dispatched  uint64
	Written     uint64
	WriteErrors uint64
}

func (s *routerStats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Dispatched:  s.dispatched.Load(),
		Written:     s.written.Load(),
		WriteErrors: s.writeErrors.Load(),
	}
}

func (s *routerStats) reset() {
	s.dispatched.Store(0)
	s.written.Store(0)
	s.writeErrors.Store(0)
}
