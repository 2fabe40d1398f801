package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/backusd/cubeworld/app"
	"github.com/backusd/cubeworld/config"
	"github.com/backusd/cubeworld/input"
	"github.com/backusd/cubeworld/metrics"
	"github.com/backusd/cubeworld/network"
	"github.com/backusd/cubeworld/renderer"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/telemetry"
	"github.com/backusd/cubeworld/ui"
	"github.com/backusd/cubeworld/window"
	"github.com/backusd/cubeworld/zone"
	"github.com/urfave/cli"
)

const telemetryShutdownTimeout = 5 * time.Second

// Open the client window, connect to the server and run the frame loop until
// the user exits.
func Run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	setupLogging(ctx, cfg.LogLevel)
	if err != nil {
		logger.Error(err)
		return err
	}

	shutdownTelemetry, err := telemetry.Setup(context.Background(), cfg.OTelEndpoint, "cubeworld")
	if err != nil {
		logger.Error(err)
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warningf("telemetry shutdown: %v", err)
		}
	}()

	win, err := window.New(window.Options{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FullScreen: cfg.FullScreen,
	})
	if err != nil {
		logger.Error(err)
		return err
	}
	defer win.Close()

	w, h := win.Size()
	opts := app.Options{
		Display: subsystem.DisplayOptions{
			Width:       w,
			Height:      h,
			VSync:       cfg.VSync,
			FullScreen:  cfg.FullScreen,
			ScreenDepth: cfg.ScreenDepth,
			ScreenNear:  cfg.ScreenNear,
		},
		Address: cfg.Address,
		Port:    cfg.Port,
	}

	logger.Noticef("connecting to %s", cfg.Endpoint())
	application, err := app.New(context.Background(), win, opts, defaultBackends(cfg))
	if err != nil {
		logger.Error(err)
		return err
	}
	// Graphics resources are released before the window is destroyed.
	defer application.Close()
	win.OnResize(application.Resize)
	win.OnClose(func() { logger.Info("window close requested; exiting") })

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for application.Frame() {
		select {
		case sig := <-interrupt:
			logger.Noticef("received %s; exiting", sig)
			displaySessionStats(application.Stats())
			return nil
		default:
		}
	}

	displaySessionStats(application.Stats())
	return nil
}

func defaultBackends(cfg config.Config) app.Backends {
	netOpts := network.DefaultOptions()
	netOpts.Path = cfg.Path
	netOpts.DialTimeout = cfg.DialTimeout

	return app.Backends{
		Input:        func() (subsystem.Input, error) { return input.New(), nil },
		Renderer:     func() (subsystem.Renderer, error) { return renderer.NewOpenGL(), nil },
		Timer:        func() (subsystem.Clock, error) { return metrics.NewClock(), nil },
		FrameCounter: func() (subsystem.FrameCounter, error) { return metrics.NewFPSCounter(), nil },
		CPUCounter:   func() (subsystem.CPUCounter, error) { return metrics.NewCPUCounter(), nil },
		UI:           func() (subsystem.UI, error) { return ui.New(), nil },
		State:        func() (subsystem.StateSelector, error) { return zone.NewSelector(), nil },
		Zone:         func() (subsystem.Zone, error) { return zone.NewBlackForest(), nil },
		Network: func(z subsystem.RemoteAvatars, chat subsystem.ChatSink) (subsystem.Network, error) {
			return network.New(z, chat, netOpts), nil
		},
	}
}
