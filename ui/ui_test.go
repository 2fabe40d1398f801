package ui

import (
	"fmt"
	"testing"

	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
)

type recordingPainter struct {
	overlays    int
	size        [2]int
	bars        []float32
	texts       []string
	textY       []float32
	seriesCalls int
	graphY      float32
}

func (p *recordingPainter) beginOverlay(w, h int) {
	p.overlays++
	p.size = [2]int{w, h}
}
func (p *recordingPainter) bar(_, _, _, _, fill float32, _ types.Vec3) {
	p.bars = append(p.bars, fill)
}
func (p *recordingPainter) text(_, y float32, s string, _ types.Vec3) {
	p.texts = append(p.texts, s)
	p.textY = append(p.textY, y)
}
func (p *recordingPainter) series(_ *stackedSeries, y, _ float32) {
	p.seriesCalls++
	p.graphY = y
}
func (p *recordingPainter) endOverlay() {}

type controls struct {
	triggered map[subsystem.Action]bool
}

func (c controls) Pressed(a subsystem.Action) bool   { return c.triggered[a] }
func (c controls) Triggered(a subsystem.Action) bool { return c.triggered[a] }
func (c controls) Cursor() types.Vec2                { return types.Vec2{} }

func newTestUI(t *testing.T) (*UI, *recordingPainter) {
	p := &recordingPainter{}
	u := newUI(p)
	if err := u.Init(nil, nil, 800, 600); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	return u, p
}

func TestInitRejectsEmptyOverlay(t *testing.T) {
	if err := newUI(&recordingPainter{}).Init(nil, nil, 0, 600); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize; got %v", err)
	}
}

func TestFrameUpdatesHistoryAndBars(t *testing.T) {
	u, p := newTestUI(t)

	u.Frame(nil, controls{}, 60, 50, 250)
	if got := u.history.series[0][historyLength-1]; got != 60 {
		t.Fatalf("expected latest fps sample 60; got %f", got)
	}
	if got := u.history.series[1][historyLength-1]; got != 50 {
		t.Fatalf("expected latest cpu sample 50; got %f", got)
	}

	u.Draw(nil)
	if p.overlays != 1 || p.seriesCalls != 1 {
		t.Fatalf("expected one overlay with a graph; got %d overlays and %d graphs", p.overlays, p.seriesCalls)
	}
	if len(p.bars) != 2 || p.bars[0] != 0.5 || p.bars[1] != 0.5 {
		t.Fatalf("expected cpu and latency bars half full; got %v", p.bars)
	}
}

func TestToggleHidesOverlay(t *testing.T) {
	u, p := newTestUI(t)
	toggle := controls{triggered: map[subsystem.Action]bool{subsystem.ToggleUI: true}}

	u.Frame(nil, toggle, 60, 0, 0)
	u.Draw(nil)
	if u.Visible() || p.overlays != 0 {
		t.Fatal("expected overlay to be hidden")
	}

	u.Frame(nil, toggle, 60, 0, 0)
	u.Draw(nil)
	if !u.Visible() || p.overlays != 1 {
		t.Fatal("expected overlay to be shown again")
	}
}

func TestChatLogIsBounded(t *testing.T) {
	u, _ := newTestUI(t)

	u.AddChatMessage("   ")
	for i := 0; i < maxChatLines+3; i++ {
		u.AddChatMessage(fmt.Sprintf("line %d", i))
	}

	msgs := u.Messages()
	if len(msgs) != maxChatLines {
		t.Fatalf("expected %d chat lines; got %d", maxChatLines, len(msgs))
	}
	if msgs[0] != "line 3" || msgs[maxChatLines-1] != fmt.Sprintf("line %d", maxChatLines+2) {
		t.Fatalf("expected oldest lines to be dropped; got %v", msgs)
	}
}

func TestDrawRendersChatText(t *testing.T) {
	u, p := newTestUI(t)
	u.Frame(nil, controls{}, 60, 0, 0)
	u.AddChatMessage("hello")
	u.AddChatMessage("  world  ")

	u.Draw(nil)
	if len(p.texts) != 2 || p.texts[0] != "hello" || p.texts[1] != "world" {
		t.Fatalf("expected both chat lines to be drawn as text; got %v", p.texts)
	}
	if p.textY[1]-p.textY[0] != chatLineHeight {
		t.Fatalf("expected chat lines %f pixels apart; got %v", chatLineHeight, p.textY)
	}
	if len(p.bars) != 2 {
		t.Fatalf("expected only the cpu and latency bars; got %d bars", len(p.bars))
	}
}

func TestResizeMovesOverlay(t *testing.T) {
	type spec struct {
		w, h    int
		expSize [2]int
	}
	specs := []spec{
		{1024, 768, [2]int{1024, 768}},
		{0, 0, [2]int{800, 600}},
	}

	for index, s := range specs {
		u, p := newTestUI(t)
		u.Frame(nil, controls{}, 60, 0, 0)
		u.Resize(s.w, s.h)
		u.Draw(nil)

		if p.size != s.expSize {
			t.Fatalf("[spec %d] expected overlay size %v; got %v", index, s.expSize, p.size)
		}
		if exp := float32(s.expSize[1]) - graphHeight; p.graphY != exp {
			t.Fatalf("[spec %d] expected graph at y=%f; got %f", index, exp, p.graphY)
		}
	}
}

func TestStackedSeriesScale(t *testing.T) {
	s := makeStackedSeries(3, fpsColor, cpuColor)
	if s.Scale(40) != 1.0 {
		t.Fatal("expected unit scale for an empty series")
	}

	s.Append(0, 10)
	s.Append(1, 10)
	if got := s.Scale(40); got != 2 {
		t.Fatalf("expected scale 2; got %f", got)
	}

	s.Clear()
	if s.Len() != 3 || s.Scale(40) != 1.0 {
		t.Fatal("expected Clear to reset samples but keep the history length")
	}
}
