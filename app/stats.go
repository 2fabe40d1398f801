package app

import (
	"time"

	"github.com/backusd/cubeworld/subsystem"
)

// Stats summarizes a session.
type Stats struct {
	// Frames that reached the network step.
	Frames uint64

	// Deltas relayed to the network peer.
	StateChanges    uint64
	PositionUpdates uint64

	// Values from the last sampled frame.
	Last subsystem.Sample

	Started time.Time
	Stopped time.Time

	fpsSum uint64
}

func (s *Stats) record(sample subsystem.Sample) {
	s.Frames++
	s.fpsSum += uint64(sample.FPS)
	s.Last = sample
}

// Get the mean of the per-frame FPS readings.
func (s Stats) AverageFPS() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.fpsSum) / float64(s.Frames)
}

// Get the session duration.
func (s Stats) RunTime() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	if s.Stopped.IsZero() {
		return time.Since(s.Started)
	}
	return s.Stopped.Sub(s.Started)
}

// Get the statistics for the session so far.
func (a *Application) Stats() Stats {
	return a.stats
}
