package diag

import "sync/atomic"

type stats struct {
	emitted atomic.Uint64
	fatal   atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	Emitted uint64
	Fatal   uint64
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Emitted: s.emitted.Load(),
		Fatal:   s.fatal.Load(),
	}
}
