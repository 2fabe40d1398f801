package app

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Subsystem names used in errors, logs and trace spans.
const (
	InputSubsystem        = "input"
	RendererSubsystem     = "renderer"
	TimerSubsystem        = "timer"
	FrameCounterSubsystem = "fps counter"
	CPUCounterSubsystem   = "cpu counter"
	UISubsystem           = "user interface"
	StateSubsystem        = "zone state"
	ZoneSubsystem         = "zone"
	NetworkSubsystem      = "network"
)

var tracer = otel.Tracer("github.com/backusd/cubeworld/app")

// Options supplies the fixed startup parameters.
type Options struct {
	Display subsystem.DisplayOptions

	// The network peer endpoint.
	Address string
	Port    int
}

// Backends holds one factory per subsystem. The network factory receives the
// already constructed zone and UI so it can forward inbound traffic to them
// directly; it must not retain them beyond the application's lifetime.
type Backends struct {
	Input        func() (subsystem.Input, error)
	Renderer     func() (subsystem.Renderer, error)
	Timer        func() (subsystem.Clock, error)
	FrameCounter func() (subsystem.FrameCounter, error)
	CPUCounter   func() (subsystem.CPUCounter, error)
	UI           func() (subsystem.UI, error)
	State        func() (subsystem.StateSelector, error)
	Zone         func() (subsystem.Zone, error)
	Network      func(zone subsystem.RemoteAvatars, ui subsystem.ChatSink) (subsystem.Network, error)
}

type ownedSubsystem struct {
	name string
	sys  subsystem.Subsystem
}

// Application owns every subsystem and drives them once per frame.
type Application struct {
	logger log.Logger
	opts   Options

	input    subsystem.Input
	renderer subsystem.Renderer
	timer    subsystem.Clock
	fps      subsystem.FrameCounter
	cpu      subsystem.CPUCounter
	ui       subsystem.UI
	state    subsystem.StateSelector
	zone     subsystem.Zone
	network  subsystem.Network

	// Initialized subsystems in construction order.
	owned []ownedSubsystem

	sample subsystem.Sample
	stats  Stats
	closed bool
}

// Create the application, constructing and initializing every subsystem in
// dependency order. If any step fails, the subsystems constructed so far are
// shut down in reverse order and the error is returned.
func New(ctx context.Context, host subsystem.Host, opts Options, backends Backends) (*Application, error) {
	ctx, span := tracer.Start(ctx, "app.startup")
	defer span.End()

	a := &Application{
		logger: log.New("app"),
		opts:   opts,
	}

	start := time.Now()
	if err := a.build(ctx, host, backends); err != nil {
		a.logger.Errorf("startup failed: %v", err)
		a.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	a.stats.Started = time.Now()
	a.logger.Noticef("started %d subsystems in %s", len(a.owned), time.Since(start))
	return a, nil
}

func (a *Application) build(ctx context.Context, host subsystem.Host, b Backends) error {
	d := a.opts.Display

	err := a.step(ctx, InputSubsystem, func() error {
		in, err := allocate(InputSubsystem, b.Input)
		if err != nil {
			return err
		}
		if err = in.Init(host, d.Width, d.Height); err != nil {
			return initError(InputSubsystem, err)
		}
		a.input = in
		a.adopt(InputSubsystem, in)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, RendererSubsystem, func() error {
		r, err := allocate(RendererSubsystem, b.Renderer)
		if err != nil {
			return err
		}
		if err = r.Init(host, d); err != nil {
			return initError(RendererSubsystem, err)
		}
		a.renderer = r
		a.adopt(RendererSubsystem, r)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, TimerSubsystem, func() error {
		t, err := allocate(TimerSubsystem, b.Timer)
		if err != nil {
			return err
		}
		if err = t.Init(); err != nil {
			return initError(TimerSubsystem, err)
		}
		a.timer = t
		a.adopt(TimerSubsystem, t)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, FrameCounterSubsystem, func() error {
		f, err := allocate(FrameCounterSubsystem, b.FrameCounter)
		if err != nil {
			return err
		}
		if err = f.Init(); err != nil {
			return initError(FrameCounterSubsystem, err)
		}
		a.fps = f
		a.adopt(FrameCounterSubsystem, f)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, CPUCounterSubsystem, func() error {
		c, err := allocate(CPUCounterSubsystem, b.CPUCounter)
		if err != nil {
			return err
		}
		if err = c.Init(); err != nil {
			return initError(CPUCounterSubsystem, err)
		}
		a.cpu = c
		a.adopt(CPUCounterSubsystem, c)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, UISubsystem, func() error {
		ui, err := allocate(UISubsystem, b.UI)
		if err != nil {
			return err
		}
		if err = ui.Init(a.renderer, host, d.Width, d.Height); err != nil {
			return initError(UISubsystem, err)
		}
		a.ui = ui
		a.adopt(UISubsystem, ui)
		return nil
	})
	if err != nil {
		return err
	}

	// The state selector has no initialization phase.
	err = a.step(ctx, StateSubsystem, func() error {
		s, err := allocate(StateSubsystem, b.State)
		if err != nil {
			return err
		}
		a.state = s
		a.adopt(StateSubsystem, s)
		return nil
	})
	if err != nil {
		return err
	}

	err = a.step(ctx, ZoneSubsystem, func() error {
		z, err := allocate(ZoneSubsystem, b.Zone)
		if err != nil {
			return err
		}
		if err = z.Init(a.renderer, host, d.Width, d.Height, d.ScreenDepth, d.ScreenNear); err != nil {
			return initError(ZoneSubsystem, err)
		}
		a.zone = z
		a.adopt(ZoneSubsystem, z)
		return nil
	})
	if err != nil {
		return err
	}

	return a.step(ctx, NetworkSubsystem, func() error {
		var factory func() (subsystem.Network, error)
		if b.Network != nil {
			factory = func() (subsystem.Network, error) {
				return b.Network(a.zone, a.ui)
			}
		}
		n, err := allocate(NetworkSubsystem, factory)
		if err != nil {
			return err
		}
		if err = n.Init(a.opts.Address, a.opts.Port); err != nil {
			return initError(NetworkSubsystem, err)
		}
		a.network = n
		a.adopt(NetworkSubsystem, n)
		return nil
	})
}

// Run a construction step inside its own trace span.
func (a *Application) step(ctx context.Context, name string, fn func() error) error {
	_, span := tracer.Start(ctx, "app.startup."+name,
		trace.WithAttributes(attribute.String("subsystem", name)))
	defer span.End()

	if err := fn(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	a.logger.Debugf("initialized %s subsystem", name)
	return nil
}

func (a *Application) adopt(name string, sys subsystem.Subsystem) {
	a.owned = append(a.owned, ownedSubsystem{name: name, sys: sys})
}

// Shutdown every owned subsystem in reverse construction order. Close is
// safe to call more than once; panics raised by a backend's Shutdown are
// logged and do not stop the remaining subsystems from being released.
func (a *Application) Close() {
	if a == nil {
		return
	}

	for i := len(a.owned) - 1; i >= 0; i-- {
		a.release(a.owned[i])
		a.owned[i].sys = nil
	}
	a.owned = nil

	if !a.closed && !a.stats.Started.IsZero() {
		a.stats.Stopped = time.Now()
	}
	a.closed = true
}

func (a *Application) release(o ownedSubsystem) {
	if o.sys == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorf("shutdown of %s subsystem panicked: %v", o.name, r)
		}
	}()

	o.sys.Shutdown()
	a.logger.Debugf("released %s subsystem", o.name)
}

// Forward a host window resize to every size dependent subsystem.
func (a *Application) Resize(w, h int) {
	if a.closed {
		return
	}

	a.logger.Debugf("client area resized to %dx%d", w, h)
	if a.renderer != nil {
		a.renderer.Resize(w, h)
	}
	if a.input != nil {
		a.input.Resize(w, h)
	}
	if a.ui != nil {
		a.ui.Resize(w, h)
	}
	if a.zone != nil {
		a.zone.Resize(w, h)
	}
}

// Get the values sampled during the last frame.
func (a *Application) Sample() subsystem.Sample {
	return a.sample
}

func allocate[T subsystem.Subsystem](name string, factory func() (T, error)) (T, error) {
	var zero T
	if factory == nil {
		return zero, &AllocationError{Subsystem: name, Err: ErrNilFactory}
	}

	inst, err := factory()
	if err != nil {
		return zero, &AllocationError{Subsystem: name, Err: fmt.Errorf("factory: %w", err)}
	}
	if isNil(inst) {
		return zero, &AllocationError{Subsystem: name, Err: ErrNilInstance}
	}

	return inst, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
