package app

import (
	"errors"
	"fmt"

	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
)

var errMockInit = errors.New("mock init failure")

// recorder collects calls across all mock subsystems in invocation order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

// Return the recorded shutdown calls in order.
func (r *recorder) shutdowns() []string {
	var out []string
	for _, c := range r.calls {
		if len(c) > 9 && c[:9] == "shutdown:" {
			out = append(out, c[9:])
		}
	}
	return out
}

type mockHost struct{}

func (mockHost) Size() (int, int) { return 800, 600 }

type base struct {
	rec     *recorder
	name    string
	initErr error
}

func (b *base) init() error {
	b.rec.add("init:%s", b.name)
	return b.initErr
}

func (b *base) Shutdown() {
	b.rec.add("shutdown:%s", b.name)
}

type mockInput struct {
	base
	frameErr error
	cancel   bool
}

func (m *mockInput) Init(_ subsystem.Host, _, _ int) error { return m.init() }
func (m *mockInput) Frame() error {
	m.rec.add("input.frame")
	return m.frameErr
}
func (m *mockInput) CancelRequested() bool             { return m.cancel }
func (m *mockInput) Pressed(_ subsystem.Action) bool   { return false }
func (m *mockInput) Triggered(_ subsystem.Action) bool { return false }
func (m *mockInput) Cursor() types.Vec2                { return types.Vec2{} }
func (m *mockInput) Resize(w, h int)                   { m.rec.add("input.resize:%dx%d", w, h) }

type mockRenderer struct {
	base
	resized [2]int
}

func (m *mockRenderer) Init(_ subsystem.Host, _ subsystem.DisplayOptions) error { return m.init() }
func (m *mockRenderer) BeginScene(_, _, _, _ float32)                           {}
func (m *mockRenderer) EndScene()                                               {}
func (m *mockRenderer) Resize(w, h int) {
	m.rec.add("renderer.resize:%dx%d", w, h)
	m.resized = [2]int{w, h}
}

type mockMetric struct {
	base
	value int
}

func (m *mockMetric) Init() error   { return m.init() }
func (m *mockMetric) Frame()        { m.rec.add("%s.frame", m.name) }
func (m *mockMetric) Time() float32 { return float32(m.value) }
func (m *mockMetric) FPS() int      { return m.value }
func (m *mockMetric) Percent() int  { return m.value }

type mockUI struct {
	base
	frameErr error
	chat     []string
}

func (m *mockUI) Init(_ subsystem.Renderer, _ subsystem.Host, _, _ int) error { return m.init() }
func (m *mockUI) Frame(_ subsystem.Renderer, _ subsystem.Controls, fps, cpu int, latency float32) error {
	m.rec.add("ui.frame:%d:%d:%.0f", fps, cpu, latency)
	return m.frameErr
}
func (m *mockUI) Draw(_ subsystem.Renderer)  {}
func (m *mockUI) AddChatMessage(text string) { m.chat = append(m.chat, text) }
func (m *mockUI) Resize(w, h int)            { m.rec.add("ui.resize:%dx%d", w, h) }

type mockState struct {
	base
	current subsystem.ZoneState
}

func (m *mockState) Current() subsystem.ZoneState { return m.current }

type mockZone struct {
	base
	frameErr error

	state    *subsystem.StateChange
	position *subsystem.PositionUpdate
	elapsed  float32
}

func (m *mockZone) Init(_ subsystem.Renderer, _ subsystem.Host, _, _ int, _, _ float32) error {
	return m.init()
}
func (m *mockZone) Frame(_ subsystem.Renderer, _ subsystem.Controls, elapsed float32, _ subsystem.UI) error {
	m.rec.add("zone.frame")
	m.elapsed = elapsed
	return m.frameErr
}
func (m *mockZone) PollStateChange() (subsystem.StateChange, bool) {
	m.rec.add("zone.pollState")
	if m.state == nil {
		return 0, false
	}
	s := *m.state
	m.state = nil
	return s, true
}
func (m *mockZone) PollPositionUpdate() (subsystem.PositionUpdate, bool) {
	m.rec.add("zone.pollPosition")
	if m.position == nil {
		return subsystem.PositionUpdate{}, false
	}
	p := *m.position
	m.position = nil
	return p, true
}
func (m *mockZone) AddAvatar(_ uint32, _ subsystem.PositionUpdate)   {}
func (m *mockZone) MoveAvatar(_ uint32, _ subsystem.PositionUpdate)  {}
func (m *mockZone) SetAvatarState(_ uint32, _ subsystem.StateChange) {}
func (m *mockZone) RemoveAvatar(_ uint32)                            {}
func (m *mockZone) Resize(w, h int)                                  { m.rec.add("zone.resize:%dx%d", w, h) }

type mockNetwork struct {
	base
	zone subsystem.RemoteAvatars
	ui   subsystem.ChatSink

	address string
	port    int
	latency float32

	sentStates    []subsystem.StateChange
	sentPositions []subsystem.PositionUpdate
}

func (m *mockNetwork) Init(address string, port int) error {
	m.address, m.port = address, port
	return m.init()
}
func (m *mockNetwork) Frame() { m.rec.add("network.frame") }
func (m *mockNetwork) SendStateChange(s subsystem.StateChange) {
	m.rec.add("network.sendState:%c", byte(s))
	m.sentStates = append(m.sentStates, s)
}
func (m *mockNetwork) SendPositionUpdate(p subsystem.PositionUpdate) {
	m.rec.add("network.sendPosition")
	m.sentPositions = append(m.sentPositions, p)
}
func (m *mockNetwork) Latency() float32 { return m.latency }

// mockSet bundles one mock per subsystem plus the factories returning them.
type mockSet struct {
	rec *recorder

	input    *mockInput
	renderer *mockRenderer
	timer    *mockMetric
	fps      *mockMetric
	cpu      *mockMetric
	ui       *mockUI
	state    *mockState
	zone     *mockZone
	network  *mockNetwork
}

func newMockSet() *mockSet {
	rec := &recorder{}
	mk := func(name string) base { return base{rec: rec, name: name} }

	return &mockSet{
		rec:      rec,
		input:    &mockInput{base: mk(InputSubsystem)},
		renderer: &mockRenderer{base: mk(RendererSubsystem)},
		timer:    &mockMetric{base: mk(TimerSubsystem), value: 16},
		fps:      &mockMetric{base: mk(FrameCounterSubsystem), value: 60},
		cpu:      &mockMetric{base: mk(CPUCounterSubsystem), value: 12},
		ui:       &mockUI{base: mk(UISubsystem)},
		state:    &mockState{base: mk(StateSubsystem), current: subsystem.BlackForest},
		zone:     &mockZone{base: mk(ZoneSubsystem)},
		network:  &mockNetwork{base: mk(NetworkSubsystem), latency: 42},
	}
}

func (ms *mockSet) backends() Backends {
	return Backends{
		Input:        func() (subsystem.Input, error) { ms.rec.add("alloc:%s", InputSubsystem); return ms.input, nil },
		Renderer:     func() (subsystem.Renderer, error) { ms.rec.add("alloc:%s", RendererSubsystem); return ms.renderer, nil },
		Timer:        func() (subsystem.Clock, error) { ms.rec.add("alloc:%s", TimerSubsystem); return ms.timer, nil },
		FrameCounter: func() (subsystem.FrameCounter, error) { ms.rec.add("alloc:%s", FrameCounterSubsystem); return ms.fps, nil },
		CPUCounter:   func() (subsystem.CPUCounter, error) { ms.rec.add("alloc:%s", CPUCounterSubsystem); return ms.cpu, nil },
		UI:           func() (subsystem.UI, error) { ms.rec.add("alloc:%s", UISubsystem); return ms.ui, nil },
		State:        func() (subsystem.StateSelector, error) { ms.rec.add("alloc:%s", StateSubsystem); return ms.state, nil },
		Zone:         func() (subsystem.Zone, error) { ms.rec.add("alloc:%s", ZoneSubsystem); return ms.zone, nil },
		Network: func(zone subsystem.RemoteAvatars, ui subsystem.ChatSink) (subsystem.Network, error) {
			ms.rec.add("alloc:%s", NetworkSubsystem)
			ms.network.zone, ms.network.ui = zone, ui
			return ms.network, nil
		},
	}
}

// Set the init error of the named subsystem.
func (ms *mockSet) failInit(name string) {
	for _, b := range []*base{
		&ms.input.base, &ms.renderer.base, &ms.timer.base, &ms.fps.base, &ms.cpu.base,
		&ms.ui.base, &ms.state.base, &ms.zone.base, &ms.network.base,
	} {
		if b.name == name {
			b.initErr = errMockInit
		}
	}
}

func testOptions() Options {
	return Options{
		Display: subsystem.DisplayOptions{
			Width:       800,
			Height:      600,
			VSync:       true,
			ScreenDepth: 1000,
			ScreenNear:  0.1,
		},
		Address: "127.0.0.1",
		Port:    7000,
	}
}
