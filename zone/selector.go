package zone

import "github.com/backusd/cubeworld/subsystem"

// Selector holds the active zone. The client starts in the Black Forest.
type Selector struct {
	current subsystem.ZoneState
}

func NewSelector() *Selector {
	return &Selector{current: subsystem.BlackForest}
}

func (s *Selector) Current() subsystem.ZoneState {
	return s.current
}

// Switch the active zone.
func (s *Selector) Set(state subsystem.ZoneState) {
	s.current = state
}

func (s *Selector) Shutdown() {
	s.current = subsystem.NoZone
}
