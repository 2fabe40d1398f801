package app

import "github.com/backusd/cubeworld/subsystem"

// Frame runs one iteration of the orchestration sequence. A false result
// tells the caller to stop its run loop; it is returned when input sampling
// fails, the user requests an exit, the UI fails to update or the active zone
// reports a failure. The cause is logged but not returned.
func (a *Application) Frame() bool {
	if a.closed {
		return false
	}

	// Update the system stats.
	a.timer.Frame()
	a.fps.Frame()
	a.cpu.Frame()

	if err := a.input.Frame(); err != nil {
		a.logger.Warningf("input frame failed: %v", err)
		return false
	}

	if a.input.CancelRequested() {
		a.logger.Notice("exit requested")
		return false
	}

	// Inbound network traffic is processed before rendering so peer updates
	// are visible this frame.
	a.network.Frame()

	a.sample = subsystem.Sample{
		Elapsed: a.timer.Time(),
		FPS:     a.fps.FPS(),
		CPU:     a.cpu.Percent(),
		Latency: a.network.Latency(),
	}
	a.stats.record(a.sample)

	if err := a.ui.Frame(a.renderer, a.input, a.sample.FPS, a.sample.CPU, a.sample.Latency); err != nil {
		a.logger.Warningf("ui frame failed: %v", err)
		return false
	}

	switch zs := a.state.Current(); zs {
	case subsystem.BlackForest:
		result := true
		if err := a.zone.Frame(a.renderer, a.input, a.sample.Elapsed, a.ui); err != nil {
			a.logger.Warningf("%s frame failed: %v", zs, err)
			result = false
		}

		a.relayDeltas()
		return result
	case subsystem.NoZone:
		return true
	default:
		return true
	}
}
