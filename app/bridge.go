package app

// Forward the deltas reported by the zone for this frame to the network
// peer. Both queries are one-shot and independent of each other.
func (a *Application) relayDeltas() {
	if state, ok := a.zone.PollStateChange(); ok {
		a.network.SendStateChange(state)
		a.stats.StateChanges++
		a.logger.Debugf("relayed state change %s", state)
	}

	if pos, ok := a.zone.PollPositionUpdate(); ok {
		a.network.SendPositionUpdate(pos)
		a.stats.PositionUpdates++
	}
}
